// Package feed maintains the review view's navigation state: which post is
// open full-screen, stepping between posts, and keeping that state mirrored
// in the location (query parameter and hash) in both directions.
package feed

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/resumeroast/internal/client/models"
)

const (
	postParam      = "post"
	fragmentPrefix = "post-"

	// DefaultDebounce coalesces rapid state changes (arrow-key bursts) into
	// one location write.
	DefaultDebounce = 150 * time.Millisecond
)

// Key is a keyboard event the review view reacts to while open.
type Key int

const (
	KeyEscape Key = iota
	KeyArrowLeft
	KeyArrowRight
)

// Controller holds the ordered post list and the active-index pointer.
// State is Closed (no active index) or Open(i) with 0 <= i < len(posts).
//
// Methods are safe for the debounce timer goroutine; everything else is
// expected to run on the single UI goroutine.
type Controller struct {
	loc      Location
	debounce time.Duration

	mu            sync.Mutex
	posts         []models.Post
	active        int // -1 when Closed
	pendingTarget string
	lastWritten   string
	timer         *time.Timer
}

type Option func(*Controller)

// WithDebounce overrides the location-sync debounce window. Zero makes writes
// synchronous, which tests rely on.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

func NewController(loc Location, opts ...Option) *Controller {
	c := &Controller{loc: loc, debounce: DefaultDebounce, active: -1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetPosts replaces the post list and re-derives the open state: a location
// target (or an earlier unresolved one) that now matches a post opens it; an
// active post that disappeared from the list closes the view.
func (c *Controller) SetPosts(posts []models.Post) {
	c.mu.Lock()
	activeID := c.activeIDLocked()
	c.posts = append([]models.Post(nil), posts...)

	if activeID != "" {
		if i := c.indexOfLocked(activeID); i >= 0 {
			c.active = i
		} else {
			c.active = -1
		}
	}
	c.mu.Unlock()

	c.resolveFromLocation()
}

// Posts returns the current ordered list.
func (c *Controller) Posts() []models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Post(nil), c.posts...)
}

func (c *Controller) activeIDLocked() string {
	if c.active < 0 || c.active >= len(c.posts) {
		return ""
	}
	return c.posts[c.active].PostID
}

func (c *Controller) indexOfLocked(postID string) int {
	for i := range c.posts {
		if c.posts[i].PostID == postID {
			return i
		}
	}
	return -1
}

// ActiveIndex returns the open index, or ok=false when Closed.
func (c *Controller) ActiveIndex() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active < 0 {
		return 0, false
	}
	return c.active, true
}

// ActivePost returns the post shown full-screen, nil when Closed.
func (c *Controller) ActivePost() *models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active < 0 || c.active >= len(c.posts) {
		return nil
	}
	p := c.posts[c.active]
	return &p
}

func (c *Controller) HasPrev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active > 0
}

func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active >= 0 && c.active < len(c.posts)-1
}

// Open activates the post at index i. Out-of-range indexes are ignored.
func (c *Controller) Open(i int) {
	c.mu.Lock()
	if i < 0 || i >= len(c.posts) {
		c.mu.Unlock()
		return
	}
	c.active = i
	c.pendingTarget = ""
	c.mu.Unlock()

	c.scheduleSync()
}

// OpenID activates the post with the given id if it is loaded.
func (c *Controller) OpenID(postID string) {
	c.mu.Lock()
	i := c.indexOfLocked(postID)
	c.mu.Unlock()
	if i >= 0 {
		c.Open(i)
	}
}

// Close returns to the grid view.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.active < 0 {
		c.mu.Unlock()
		return
	}
	c.active = -1
	c.mu.Unlock()

	c.scheduleSync()
}

// Step moves the active index by delta, clamped to the list bounds. A no-op
// when Closed.
func (c *Controller) Step(delta int) {
	c.mu.Lock()
	if c.active < 0 || len(c.posts) == 0 {
		c.mu.Unlock()
		return
	}
	next := c.active + delta
	if next < 0 {
		next = 0
	}
	if next > len(c.posts)-1 {
		next = len(c.posts) - 1
	}
	changed := next != c.active
	c.active = next
	c.mu.Unlock()

	if changed {
		c.scheduleSync()
	}
}

// RemovePost drops a post from the list (local deletion). Removing the active
// post keeps the view open on the post that slid into its place, clamped to
// the new bounds; the view closes only when the list empties.
func (c *Controller) RemovePost(postID string) {
	c.mu.Lock()
	i := c.indexOfLocked(postID)
	if i < 0 {
		c.mu.Unlock()
		return
	}

	c.posts = append(c.posts[:i], c.posts[i+1:]...)

	switch {
	case c.active < 0:
	case len(c.posts) == 0:
		c.active = -1
	case c.active > i:
		c.active--
	case c.active == i && c.active > len(c.posts)-1:
		c.active = len(c.posts) - 1
	}
	c.mu.Unlock()

	c.scheduleSync()
}

// HandleKey applies the review view's keyboard contract: Escape closes,
// arrows step when a neighbor exists. All keys are suppressed while an
// editable field has focus, and everything is a no-op when Closed.
func (c *Controller) HandleKey(k Key, editableFocused bool) {
	if editableFocused {
		return
	}
	if _, open := c.ActiveIndex(); !open {
		return
	}

	switch k {
	case KeyEscape:
		c.Close()
	case KeyArrowLeft:
		if c.HasPrev() {
			c.Step(-1)
		}
	case KeyArrowRight:
		if c.HasNext() {
			c.Step(1)
		}
	}
}

// OnLocationChange re-derives state from the location; wired to the host's
// back/forward and hash-change events.
func (c *Controller) OnLocationChange() {
	c.resolveFromLocation()
}

// targetID extracts the requested post id from a URL; the query parameter
// wins over the hash fragment.
func targetID(u URL) string {
	if id := u.Query.Get(postParam); id != "" {
		return id
	}
	if len(u.Fragment) > len(fragmentPrefix) && u.Fragment[:len(fragmentPrefix)] == fragmentPrefix {
		return u.Fragment[len(fragmentPrefix):]
	}
	return ""
}

func (c *Controller) resolveFromLocation() {
	target := targetID(c.loc.Current())

	c.mu.Lock()
	if target == "" {
		c.pendingTarget = ""
		if c.active < 0 {
			c.mu.Unlock()
			return
		}
		c.active = -1
		c.mu.Unlock()
		c.scheduleSync()
		return
	}

	if i := c.indexOfLocked(target); i >= 0 {
		c.pendingTarget = ""
		if c.active == i {
			c.mu.Unlock()
			return
		}
		c.active = i
		c.mu.Unlock()
		c.scheduleSync()
		return
	}

	// Target not loaded (yet): treat as Closed but keep the location intact
	// so a later SetPosts can still resolve it.
	c.pendingTarget = target
	c.active = -1
	c.mu.Unlock()
}

// desiredURL computes what the location should say for the current state.
func (c *Controller) desiredURL(cur URL) URL {
	next := cur.clone()

	c.mu.Lock()
	id := c.activeIDLocked()
	c.mu.Unlock()

	if id == "" {
		next.Query.Del(postParam)
		next.Fragment = ""
	} else {
		next.Query.Set(postParam, id)
		next.Fragment = fragmentPrefix + id
	}
	return next
}

func (c *Controller) scheduleSync() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	pending := c.pendingTarget != ""
	d := c.debounce
	c.mu.Unlock()

	// While a location target is unresolved we must not strip it: the posts
	// that make it resolvable may still be loading.
	if pending {
		return
	}

	if d <= 0 {
		c.syncNow()
		return
	}

	c.mu.Lock()
	c.timer = time.AfterFunc(d, c.syncNow)
	c.mu.Unlock()
}

// syncNow writes the derived URL, skipping the write when it matches either
// the current location or the last URL this controller wrote. The skip keeps
// redundant history entries out and avoids fighting external navigation.
func (c *Controller) syncNow() {
	cur := c.loc.Current()
	next := c.desiredURL(cur)

	nextStr := next.String()
	if nextStr == cur.String() {
		return
	}

	c.mu.Lock()
	last := c.lastWritten
	c.mu.Unlock()
	if nextStr == last {
		return
	}

	c.loc.Replace(next)

	c.mu.Lock()
	c.lastWritten = nextStr
	c.mu.Unlock()
}

// FlushSync runs any pending debounced location write immediately.
func (c *Controller) FlushSync() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	pending := c.pendingTarget != ""
	c.mu.Unlock()
	if !pending {
		c.syncNow()
	}
}

// ShareURL builds the shareable address of the active post, or "" when Closed.
func (c *Controller) ShareURL(origin string) string {
	c.mu.Lock()
	id := c.activeIDLocked()
	c.mu.Unlock()
	if id == "" {
		return ""
	}
	return origin + "/feed?" + postParam + "=" + id
}
