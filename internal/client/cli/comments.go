package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/resumeroast/internal/client/comments"
)

// threadNode resolves the N-th line of the last 'comments' listing (1-based).
func (a *App) threadNode(arg string) (*comments.Node, error) {
	nodes := a.thread.Threads()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(nodes) {
		return nil, fmt.Errorf("no comment %q in the listing", arg)
	}
	return &nodes[n-1], nil
}

// Comments lists the open post's thread, replies indented under their parent.
func (a *App) Comments(ctx context.Context) error {
	if a.nav.ActivePost() == nil {
		fmt.Fprintln(a.out, "Open a post first.")
		return nil
	}
	if err := a.thread.Load(ctx); err != nil {
		return err
	}

	nodes := a.thread.Threads()
	if len(nodes) == 0 {
		fmt.Fprintln(a.out, "No comments yet.")
		return nil
	}
	for i, node := range nodes {
		indent := strings.Repeat("    ", node.Depth)
		pending := ""
		if node.Comment.Optimistic {
			pending = " (sending)"
		}
		fmt.Fprintf(a.out, "%3d. %s%s%s: %s\n", i+1, indent, node.Comment.OwnerName(), pending, node.Comment.Body)
	}
	return nil
}

// Comment posts a root comment on the open post.
func (a *App) Comment(ctx context.Context) error {
	if a.nav.ActivePost() == nil {
		fmt.Fprintln(a.out, "Open a post first.")
		return nil
	}

	a.thread.ClearReply()
	return a.submitComment(ctx)
}

// Reply posts a reply to the N-th comment of the last listing.
func (a *App) Reply(ctx context.Context, arg string) error {
	if a.nav.ActivePost() == nil {
		fmt.Fprintln(a.out, "Open a post first.")
		return nil
	}

	node, err := a.threadNode(arg)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	if err := a.thread.SetReply(node.Comment.ID); err != nil {
		fmt.Fprintln(a.out, "That comment cannot be replied to yet.")
		return nil
	}

	fmt.Fprintf(a.out, "Replying to %s.\n", node.Comment.OwnerName())
	return a.submitComment(ctx)
}

func (a *App) submitComment(ctx context.Context) error {
	body, err := getMultiline(a.reader, "Write your comment", a.out)
	if err != nil {
		return err
	}

	err = a.thread.Submit(ctx, body)
	if errors.Is(err, comments.ErrEmptyBody) {
		fmt.Fprintln(a.out, "Nothing to post.")
		return nil
	}
	return err
}

// DeleteComment deletes the N-th comment of the last listing, owner only.
func (a *App) DeleteComment(ctx context.Context, arg string) error {
	node, err := a.threadNode(arg)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}

	if !a.confirm("Delete this comment?") {
		return nil
	}

	err = a.thread.Delete(ctx, node.Comment.ID)
	if errors.Is(err, comments.ErrNotOwner) {
		a.notifier.Error("You can only delete your own comments.")
		return nil
	}
	return err
}
