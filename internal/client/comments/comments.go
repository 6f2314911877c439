// Package comments manages one post's comment thread: loading, grouping the
// flat list into a two-level tree, reply targeting, and optimistic posting
// and deletion.
package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/resumeroast/internal/client/api"
	"github.com/dmitrijs2005/resumeroast/internal/client/models"
	"github.com/dmitrijs2005/resumeroast/internal/client/notify"
	"github.com/dmitrijs2005/resumeroast/internal/client/optimistic"
	"github.com/dmitrijs2005/resumeroast/internal/logging"
)

var (
	ErrSignInRequired = errors.New("sign in to manage comments")
	ErrEmptyBody      = errors.New("comment body is empty")
	ErrNotFound       = errors.New("comment not found")
	ErrNotOwner       = errors.New("only the comment owner can delete it")
)

// Session is the slice of the session store the controller needs.
type Session interface {
	Token() string
	User() *models.UserProfile
}

// Node is one rendered comment with its visual depth. Depth is clamped to 1:
// replies to replies stay under their parent but do not indent further.
type Node struct {
	Comment models.Comment
	Depth   int
}

// Controller holds the thread state for a single post.
type Controller struct {
	client   api.Client
	session  Session
	notifier notify.Notifier
	log      logging.Logger

	postID     string
	comments   []models.Comment
	replyTo    *models.Comment
	submitting optimistic.Flag

	now func() time.Time // created_at fallback seam
}

func NewController(client api.Client, session Session, notifier notify.Notifier, log logging.Logger) *Controller {
	return &Controller{
		client:   client,
		session:  session,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// SetPost points the controller at a new post, dropping thread state and the
// reply target.
func (c *Controller) SetPost(postID string) {
	if c.postID == postID {
		return
	}
	c.postID = postID
	c.comments = nil
	c.replyTo = nil
}

// Load fetches the flat comment list. Comments without a timestamp get the
// load time so sorting and display never deal with a zero value.
func (c *Controller) Load(ctx context.Context) error {
	if c.postID == "" {
		return nil
	}

	list, err := c.client.ListComments(ctx, c.postID)
	if err != nil {
		c.notifier.Error("Could not load comments.")
		return fmt.Errorf("loading comments: %w", err)
	}

	fallback := c.now()
	for i := range list {
		if list[i].CreatedAt == nil {
			t := fallback
			list[i].CreatedAt = &t
		}
	}

	c.comments = list
	return nil
}

// Count returns the total number of comments, optimistic ones included.
func (c *Controller) Count() int { return len(c.comments) }

// Comments returns the flat list in display order.
func (c *Controller) Comments() []models.Comment {
	return append([]models.Comment(nil), c.comments...)
}

// byID finds a comment in the current list.
func (c *Controller) byID(id string) *models.Comment {
	for i := range c.comments {
		if c.comments[i].ID == id {
			return &c.comments[i]
		}
	}
	return nil
}

// Threads groups the flat list into root comments and their replies, walking
// depth-first in list order. Reply chains deeper than one level render at
// depth 1 under their own parent.
func (c *Controller) Threads() []Node {
	byParent := make(map[string][]models.Comment)
	for _, comment := range c.comments {
		byParent[comment.ParentCommentID] = append(byParent[comment.ParentCommentID], comment)
	}

	var nodes []Node
	var walk func(comment models.Comment, depth int)
	walk = func(comment models.Comment, depth int) {
		nodes = append(nodes, Node{Comment: comment, Depth: depth})
		next := depth + 1
		if next > 1 {
			next = 1
		}
		for _, reply := range byParent[comment.ID] {
			walk(reply, next)
		}
	}

	for _, root := range byParent[""] {
		walk(root, 0)
	}
	return nodes
}

// SetReply targets a comment for the next submission. Optimistic comments
// cannot be replied to: they have no server id yet.
func (c *Controller) SetReply(commentID string) error {
	comment := c.byID(commentID)
	if comment == nil {
		return ErrNotFound
	}
	if comment.Optimistic {
		return ErrNotFound
	}
	c.replyTo = comment
	return nil
}

// ReplyTo returns the current reply target, nil for a root comment.
func (c *Controller) ReplyTo() *models.Comment { return c.replyTo }

// ClearReply resets the target to a root comment.
func (c *Controller) ClearReply() { c.replyTo = nil }

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool { return c.submitting.Busy() }

// Submit posts a comment. The trimmed body must be non-empty (checked before
// any request). A synthetic comment is prepended immediately; on success the
// whole thread is reloaded so server-assigned ids and timestamps replace it,
// on failure it is removed again. A submit while one is pending is a no-op
// returning optimistic.ErrBusy.
func (c *Controller) Submit(ctx context.Context, body string) error {
	if c.session.Token() == "" {
		c.notifier.Error("Sign in to add comments.")
		return ErrSignInRequired
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return ErrEmptyBody
	}

	user := c.session.User()
	username := user.DisplayName()
	if username == "" {
		username = "you"
	}

	var parentID *string
	if c.replyTo != nil {
		id := c.replyTo.ID
		parentID = &id
	}

	request := models.NewComment{PostID: c.postID, Body: body, ParentCommentID: parentID}

	err := optimistic.Run(ctx, &c.submitting, optimistic.Mutation[string]{
		Apply: func() string {
			created := c.now()
			temp := models.Comment{
				ID:         "temp-" + uuid.NewString(),
				PostID:     c.postID,
				Body:       body,
				Owner:      models.UserPublic{Username: username},
				CreatedAt:  &created,
				Optimistic: true,
			}
			if parentID != nil {
				temp.ParentCommentID = *parentID
			}
			c.comments = append([]models.Comment{temp}, c.comments...)
			c.replyTo = nil
			return temp.ID
		},
		Call: func(ctx context.Context) error {
			return c.client.AddComment(ctx, c.session.Token(), request)
		},
		Revert: func(tempID string) {
			c.removeLocal(tempID)
		},
		Reconcile: func(ctx context.Context) error {
			c.notifier.Success("Comment added.")
			return c.Load(ctx)
		},
	})
	if err != nil && !errors.Is(err, optimistic.ErrBusy) && !errors.Is(err, context.Canceled) {
		c.notifier.Error("Could not add comment.")
	}
	return err
}

func (c *Controller) removeLocal(id string) {
	kept := c.comments[:0]
	for _, comment := range c.comments {
		if comment.ID != id {
			kept = append(kept, comment)
		}
	}
	c.comments = kept
}

// CanDelete is the client-side gate mirrored by the delete buttons: the
// acting user's name must equal the comment owner's. Authorization proper is
// the server's call.
func (c *Controller) CanDelete(comment *models.Comment) bool {
	if c.session.Token() == "" {
		return false
	}
	name := c.session.User().DisplayName()
	return name != "" && comment.OwnerName() != "" && comment.OwnerName() == name
}

// Delete removes a comment. The removal is applied locally first; a rejected
// delete is authoritative, so the comment is restored and the error surfaced.
func (c *Controller) Delete(ctx context.Context, commentID string) error {
	if c.session.Token() == "" {
		c.notifier.Error("Sign in to delete comments.")
		return ErrSignInRequired
	}

	target := c.byID(commentID)
	if target == nil {
		return ErrNotFound
	}
	if !c.CanDelete(target) {
		return ErrNotOwner
	}

	index := 0
	for i := range c.comments {
		if c.comments[i].ID == commentID {
			index = i
			break
		}
	}

	var inflight optimistic.Flag
	removed := *target
	err := optimistic.Run(ctx, &inflight, optimistic.Mutation[models.Comment]{
		Apply: func() models.Comment {
			c.removeLocal(commentID)
			return removed
		},
		Call: func(ctx context.Context) error {
			return c.client.DeleteComment(ctx, c.session.Token(), commentID)
		},
		Revert: func(comment models.Comment) {
			rest := append([]models.Comment{comment}, c.comments[index:]...)
			c.comments = append(c.comments[:index:index], rest...)
		},
		Reconcile: func(ctx context.Context) error {
			c.notifier.Success("Comment deleted.")
			return nil
		},
	})
	if err != nil {
		c.notifier.Error("Could not delete comment.")
	}
	return err
}
