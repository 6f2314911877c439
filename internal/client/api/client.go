// Package api is the gateway client for the ResumeRoast REST backend. It
// exposes one typed method per endpoint and maps HTTP failures onto the
// package's sentinel errors so callers never look at raw responses.
package api

import (
	"context"
	"io"

	"github.com/dmitrijs2005/resumeroast/internal/client/models"
)

// Client is the remote surface the rest of the application depends on.
//
// Contract:
//   - Read endpoints that answer 204 return an empty slice, not an error.
//   - Any other non-2xx response is a *StatusError.
//   - Transport failures wrap ErrUnavailable.
//   - token is the raw bearer token; methods taking one require a session.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	CurrentUser(ctx context.Context, token string) (*models.UserProfile, error)

	ListPosts(ctx context.Context) ([]models.Post, error)
	Leaderboard(ctx context.Context) ([]models.Post, error)
	MyPosts(ctx context.Context, token string) ([]models.Post, error)
	Queue(ctx context.Context, token string) ([]models.Post, error)
	Upload(ctx context.Context, token, fileName string, file io.Reader, caption string) (*models.Post, error)
	DeletePost(ctx context.Context, token, postID string) error
	Rate(ctx context.Context, token, postID string, score int) error

	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	AddComment(ctx context.Context, token string, comment models.NewComment) error
	DeleteComment(ctx context.Context, token, commentID string) error
}
