package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/resumeroast/internal/client/feed"
)

// webOrigin is the public site the share command builds links for.
const webOrigin = "https://resumeroast.app"

// Feed fetches the public feed, hands it to the navigation controller and
// lists it. An open post that survived the reload stays open.
func (a *App) Feed(ctx context.Context) error {
	posts, err := a.posts.Feed(ctx)
	if err != nil {
		a.notifier.Error("Could not load the feed.")
		return err
	}

	a.nav.SetPosts(posts)
	a.renderFeed()
	a.renderActive(ctx)
	return nil
}

// Refresh is Feed without the full listing, for when the user just wants
// fresh ratings.
func (a *App) Refresh(ctx context.Context) error {
	posts, err := a.posts.Feed(ctx)
	if err != nil {
		a.notifier.Error("Could not load the feed.")
		return err
	}

	a.nav.SetPosts(posts)
	fmt.Fprintf(a.out, "%d posts.\n", len(posts))
	a.renderActive(ctx)
	return nil
}

// OpenPost opens the N-th post of the last listed feed (1-based).
func (a *App) OpenPost(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.nav.Posts()) {
		fmt.Fprintln(a.out, "Usage: open <number from the feed listing>")
		return nil
	}

	a.nav.Open(n - 1)
	a.renderActive(ctx)
	return nil
}

func (a *App) Next(ctx context.Context) error {
	a.nav.Step(1)
	a.renderActive(ctx)
	return nil
}

func (a *App) Prev(ctx context.Context) error {
	a.nav.Step(-1)
	a.renderActive(ctx)
	return nil
}

func (a *App) ClosePost(ctx context.Context) error {
	a.nav.Close()
	fmt.Fprintln(a.out, "Post closed.")
	return nil
}

// Share prints the canonical link of the open post.
func (a *App) Share(ctx context.Context) error {
	link := a.nav.ShareURL(webOrigin)
	if link == "" {
		fmt.Fprintln(a.out, "No post is open.")
		return nil
	}
	fmt.Fprintln(a.out, link)
	return nil
}

// DeletePost deletes the open post. The feed updates immediately and is
// restored if the backend refuses.
func (a *App) DeletePost(ctx context.Context) error {
	post := a.nav.ActivePost()
	if post == nil {
		fmt.Fprintln(a.out, "No post is open.")
		return nil
	}
	if !a.posts.CanDelete(post) {
		a.notifier.Error("You can only delete your own posts.")
		return nil
	}
	if !a.confirm("Delete this post and all its comments?") {
		return nil
	}
	return a.posts.Delete(ctx, a.nav, post.PostID)
}

// PressKey feeds a keyboard event through the review view's key contract:
// esc closes, arrows step when a neighbor exists, everything is ignored when
// no post is open.
func (a *App) PressKey(ctx context.Context, name string) error {
	var key feed.Key
	switch name {
	case "esc":
		key = feed.KeyEscape
	case "left":
		key = feed.KeyArrowLeft
	case "right":
		key = feed.KeyArrowRight
	default:
		return nil
	}

	a.nav.HandleKey(key, false)
	a.renderActive(ctx)
	return nil
}

// Goto simulates an externally-driven navigation: it overwrites the address
// bar and lets the controller react, exactly as a pasted link would.
func (a *App) Goto(ctx context.Context, rawURL string) error {
	u, err := a.parseGoto(rawURL)
	if err != nil {
		fmt.Fprintln(a.out, "Not a valid URL:", rawURL)
		return nil
	}
	a.location.Set(u)
	a.nav.OnLocationChange()
	a.renderActive(ctx)
	return nil
}
