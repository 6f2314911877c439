// Package voting runs the rating queue: one "up next" resume at a time,
// consumed front to back, with optimistic removal on vote and restoration on
// failure.
package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resumeroast/internal/client/api"
	"github.com/dmitrijs2005/resumeroast/internal/client/models"
	"github.com/dmitrijs2005/resumeroast/internal/client/notify"
	"github.com/dmitrijs2005/resumeroast/internal/client/optimistic"
	"github.com/dmitrijs2005/resumeroast/internal/logging"
)

// ErrSignInRequired asks the host to redirect to sign-in. Returned whenever a
// vote is attempted without a session.
var ErrSignInRequired = errors.New("sign in to rate resumes")

// ErrInvalidScore rejects scores outside 1..5 before any request is made.
var ErrInvalidScore = errors.New("score must be between 1 and 5")

// ScoreLabels maps a score to the label shown on the star controls.
var ScoreLabels = map[int]string{
	1: "Pass",
	2: "Needs work",
	3: "Solid",
	4: "Strong",
	5: "Hire",
}

// TokenSource yields the current bearer token; the session store satisfies it.
type TokenSource interface {
	Token() string
}

// Controller owns the FIFO queue of unseen posts for the signed-in user.
type Controller struct {
	client   api.Client
	session  TokenSource
	notifier notify.Notifier
	log      logging.Logger

	queue    []models.Post
	loaded   bool
	inflight optimistic.Flag
}

func NewController(client api.Client, session TokenSource, notifier notify.Notifier, log logging.Logger) *Controller {
	return &Controller{client: client, session: session, notifier: notifier, log: log}
}

// Load fetches the queue. Without a session it resets to the unauthenticated
// preview state instead of calling the server.
func (c *Controller) Load(ctx context.Context) error {
	token := c.session.Token()
	if token == "" {
		c.queue = nil
		c.loaded = false
		return nil
	}

	queue, err := c.client.Queue(ctx, token)
	if err != nil {
		c.notifier.Error("Could not load votes.")
		return fmt.Errorf("loading queue: %w", err)
	}

	c.queue = queue
	c.loaded = true
	return nil
}

// Current returns the head of the queue, nil when the queue is empty or not
// loaded.
func (c *Controller) Current() *models.Post {
	if len(c.queue) == 0 {
		return nil
	}
	p := c.queue[0]
	return &p
}

// Len returns the number of votes left.
func (c *Controller) Len() int { return len(c.queue) }

// Loaded reports whether an authenticated fetch has happened; distinguishes
// "all caught up" from the signed-out preview.
func (c *Controller) Loaded() bool { return c.loaded }

// PreviewOnly reports whether the controller is in the signed-out preview
// state, where star controls redirect to sign-in instead of voting.
func (c *Controller) PreviewOnly() bool { return c.session.Token() == "" }

// PreviewPost is the static example resume shown to signed-out visitors.
func PreviewPost() models.Post {
	return models.Post{
		Owner: models.UserPublic{
			Username:     "jake",
			Headline:     "Product Demo",
			Organization: "ResumeRoast",
		},
		Caption:  "Sign in to start voting on real resumes.",
		FileName: "Jake_Ryan_Resume.pdf",
		URL:      "/resume-preview.pdf",
		FileType: "pdf",
	}
}

// Rate submits a score for the head of the queue. The head is removed
// optimistically; on failure it is pushed back to the front and an error
// notice is raised. With no session the caller gets ErrSignInRequired to act
// on (redirect), and nothing is submitted.
func (c *Controller) Rate(ctx context.Context, score int) error {
	token := c.session.Token()
	if token == "" {
		c.notifier.Error("Sign in to rate resumes.")
		return ErrSignInRequired
	}
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}
	if len(c.queue) == 0 {
		return nil
	}

	var head models.Post
	err := optimistic.Run(ctx, &c.inflight, optimistic.Mutation[models.Post]{
		Apply: func() models.Post {
			head = c.queue[0]
			c.queue = c.queue[1:]
			return head
		},
		Call: func(ctx context.Context) error {
			return c.client.Rate(ctx, token, head.PostID, score)
		},
		Revert: func(popped models.Post) {
			c.queue = append([]models.Post{popped}, c.queue...)
		},
	})
	if err != nil && !errors.Is(err, optimistic.ErrBusy) {
		c.log.Warn(ctx, "rating failed, queue restored", "post_id", head.PostID, "err", err)
		c.notifier.Error("Could not submit rating.")
	}
	return err
}
