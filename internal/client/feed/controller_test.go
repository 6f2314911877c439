package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/resumeroast/internal/client/models"
)

func testPosts(ids ...string) []models.Post {
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		posts = append(posts, models.Post{PostID: id, FileName: id + ".pdf"})
	}
	return posts
}

func newTestController(ids ...string) (*Controller, *MemoryLocation) {
	loc := NewMemoryLocation("/feed")
	c := NewController(loc, WithDebounce(0))
	c.SetPosts(testPosts(ids...))
	return c, loc
}

func TestOpenWritesQueryAndFragment(t *testing.T) {
	c, loc := newTestController("a", "b", "c")

	c.Open(1)

	cur := loc.Current()
	require.Equal(t, "b", cur.Query.Get("post"))
	require.Equal(t, "post-b", cur.Fragment)
}

func TestCloseClearsLocation(t *testing.T) {
	c, loc := newTestController("a", "b")

	c.Open(0)
	c.Close()

	cur := loc.Current()
	require.Empty(t, cur.Query.Get("post"))
	require.Empty(t, cur.Fragment)

	_, open := c.ActiveIndex()
	require.False(t, open)
}

func TestLocationRoundTrip(t *testing.T) {
	// For every index: opening writes a URL that a fresh controller over the
	// same location resolves back to the same index.
	ids := []string{"a", "b", "c", "d"}
	for i := range ids {
		c, loc := newTestController(ids...)
		c.Open(i)

		fresh := NewController(loc, WithDebounce(0))
		fresh.SetPosts(testPosts(ids...))

		got, open := fresh.ActiveIndex()
		require.True(t, open)
		require.Equal(t, i, got)
	}
}

func TestExternalNavigationOpensPost(t *testing.T) {
	c, loc := newTestController("a", "b", "c")

	u, err := ParseURL("/feed?post=c")
	require.NoError(t, err)
	loc.Set(u)
	c.OnLocationChange()

	got, open := c.ActiveIndex()
	require.True(t, open)
	require.Equal(t, 2, got)
}

func TestQueryWinsOverFragment(t *testing.T) {
	c, loc := newTestController("a", "b", "c")

	u, err := ParseURL("/feed?post=b#post-c")
	require.NoError(t, err)
	loc.Set(u)
	c.OnLocationChange()

	got, _ := c.ActiveIndex()
	require.Equal(t, 1, got)
}

func TestFragmentOnlyTarget(t *testing.T) {
	c, loc := newTestController("a", "b")

	u, err := ParseURL("/feed#post-b")
	require.NoError(t, err)
	loc.Set(u)
	c.OnLocationChange()

	got, _ := c.ActiveIndex()
	require.Equal(t, 1, got)
}

func TestUnresolvedTargetStaysPendingUntilPostsArrive(t *testing.T) {
	loc := NewMemoryLocation("/feed")
	u, err := ParseURL("/feed?post=x")
	require.NoError(t, err)
	loc.Set(u)

	c := NewController(loc, WithDebounce(0))
	c.OnLocationChange()

	// Closed, but the target must survive in the location.
	_, open := c.ActiveIndex()
	require.False(t, open)
	require.Equal(t, "x", loc.Current().Query.Get("post"))
	require.Empty(t, loc.Replaced)

	c.SetPosts(testPosts("a", "x", "b"))

	got, open := c.ActiveIndex()
	require.True(t, open)
	require.Equal(t, 1, got)
}

func TestSetPostsClosesWhenActiveGone(t *testing.T) {
	c, _ := newTestController("a", "b", "c")
	c.Open(1)

	c.SetPosts(testPosts("a", "c"))

	_, open := c.ActiveIndex()
	require.False(t, open)
}

func TestSetPostsKeepsActiveByID(t *testing.T) {
	c, _ := newTestController("a", "b", "c")
	c.Open(2)

	// Same post, new position.
	c.SetPosts(testPosts("c", "a", "b"))

	got, open := c.ActiveIndex()
	require.True(t, open)
	require.Equal(t, 0, got)
}

func TestStepClampsAtBounds(t *testing.T) {
	c, _ := newTestController("a", "b", "c")
	c.Open(0)

	c.Step(-1)
	got, _ := c.ActiveIndex()
	require.Equal(t, 0, got)

	c.Step(1)
	c.Step(1)
	c.Step(1)
	got, _ = c.ActiveIndex()
	require.Equal(t, 2, got)
}

func TestRemovePost(t *testing.T) {
	tests := []struct {
		name       string
		ids        []string
		openIdx    int
		remove     string
		wantOpen   bool
		wantIdx    int
		wantActive string
	}{
		{name: "active first", ids: []string{"a", "b", "c"}, openIdx: 0, remove: "a", wantOpen: true, wantIdx: 0, wantActive: "b"},
		{name: "active last clamps", ids: []string{"a", "b", "c"}, openIdx: 2, remove: "c", wantOpen: true, wantIdx: 1, wantActive: "b"},
		{name: "before active decrements", ids: []string{"a", "b", "c"}, openIdx: 2, remove: "a", wantOpen: true, wantIdx: 1, wantActive: "c"},
		{name: "after active untouched", ids: []string{"a", "b", "c"}, openIdx: 0, remove: "c", wantOpen: true, wantIdx: 0, wantActive: "a"},
		{name: "last post closes", ids: []string{"a"}, openIdx: 0, remove: "a", wantOpen: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(tt.ids...)
			c.Open(tt.openIdx)

			c.RemovePost(tt.remove)

			got, open := c.ActiveIndex()
			require.Equal(t, tt.wantOpen, open)
			if tt.wantOpen {
				require.Equal(t, tt.wantIdx, got)
				require.Equal(t, tt.wantActive, c.ActivePost().PostID)
			}
		})
	}
}

func TestRemovePostWhileClosed(t *testing.T) {
	c, _ := newTestController("a", "b")

	c.RemovePost("a")

	require.Len(t, c.Posts(), 1)
	_, open := c.ActiveIndex()
	require.False(t, open)
}

func TestHandleKey(t *testing.T) {
	t.Run("escape closes", func(t *testing.T) {
		c, _ := newTestController("a", "b")
		c.Open(0)
		c.HandleKey(KeyEscape, false)
		_, open := c.ActiveIndex()
		require.False(t, open)
	})

	t.Run("arrows step within bounds", func(t *testing.T) {
		c, _ := newTestController("a", "b", "c")
		c.Open(1)
		c.HandleKey(KeyArrowRight, false)
		got, _ := c.ActiveIndex()
		require.Equal(t, 2, got)

		c.HandleKey(KeyArrowRight, false)
		got, _ = c.ActiveIndex()
		require.Equal(t, 2, got)

		c.HandleKey(KeyArrowLeft, false)
		got, _ = c.ActiveIndex()
		require.Equal(t, 1, got)
	})

	t.Run("suppressed while editing", func(t *testing.T) {
		c, _ := newTestController("a", "b")
		c.Open(0)
		c.HandleKey(KeyEscape, true)
		_, open := c.ActiveIndex()
		require.True(t, open)
	})

	t.Run("ignored when closed", func(t *testing.T) {
		c, loc := newTestController("a", "b")
		before := len(loc.Replaced)
		c.HandleKey(KeyArrowRight, false)
		_, open := c.ActiveIndex()
		require.False(t, open)
		require.Len(t, loc.Replaced, before)
	})
}

func TestDebounceCoalescesWrites(t *testing.T) {
	loc := NewMemoryLocation("/feed")
	c := NewController(loc, WithDebounce(time.Hour))
	c.SetPosts(testPosts("a", "b", "c"))

	c.Open(0)
	c.Step(1)
	c.Step(1)
	require.Empty(t, loc.Replaced)

	c.FlushSync()

	require.Len(t, loc.Replaced, 1)
	require.Equal(t, "c", loc.Replaced[0].Query.Get("post"))
}

func TestSyncSkipsRedundantWrites(t *testing.T) {
	c, loc := newTestController("a", "b")

	c.Open(1)
	writes := len(loc.Replaced)

	c.Open(1)
	c.FlushSync()
	require.Len(t, loc.Replaced, writes)
}

func TestShareURL(t *testing.T) {
	c, _ := newTestController("a", "b")

	require.Empty(t, c.ShareURL("https://example.com"))

	c.Open(1)
	require.Equal(t, "https://example.com/feed?post=b", c.ShareURL("https://example.com"))
}

func TestParseURLRoundTrip(t *testing.T) {
	u, err := ParseURL("/feed?post=abc#post-abc")
	require.NoError(t, err)
	require.Equal(t, "/feed", u.Path)
	require.Equal(t, "abc", u.Query.Get("post"))
	require.Equal(t, "post-abc", u.Fragment)
	require.Equal(t, "/feed?post=abc#post-abc", u.String())
}
