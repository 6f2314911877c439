// Package apitest provides a configurable fake api.Client for controller and
// service tests. Unset hooks return zero values.
package apitest

import (
	"context"
	"io"

	"github.com/dmitrijs2005/resumeroast/internal/client/api"
	"github.com/dmitrijs2005/resumeroast/internal/client/models"
)

// Fake implements api.Client via optional function hooks.
type Fake struct {
	LoginFunc         func(ctx context.Context, username, password string) (string, error)
	RegisterFunc      func(ctx context.Context, req models.RegisterRequest) error
	CurrentUserFunc   func(ctx context.Context, token string) (*models.UserProfile, error)
	ListPostsFunc     func(ctx context.Context) ([]models.Post, error)
	LeaderboardFunc   func(ctx context.Context) ([]models.Post, error)
	MyPostsFunc       func(ctx context.Context, token string) ([]models.Post, error)
	QueueFunc         func(ctx context.Context, token string) ([]models.Post, error)
	UploadFunc        func(ctx context.Context, token, fileName string, file io.Reader, caption string) (*models.Post, error)
	DeletePostFunc    func(ctx context.Context, token, postID string) error
	RateFunc          func(ctx context.Context, token, postID string, score int) error
	ListCommentsFunc  func(ctx context.Context, postID string) ([]models.Comment, error)
	AddCommentFunc    func(ctx context.Context, token string, comment models.NewComment) error
	DeleteCommentFunc func(ctx context.Context, token, commentID string) error
}

var _ api.Client = (*Fake)(nil)

func (f *Fake) Login(ctx context.Context, username, password string) (string, error) {
	if f.LoginFunc == nil {
		return "", nil
	}
	return f.LoginFunc(ctx, username, password)
}

func (f *Fake) Register(ctx context.Context, req models.RegisterRequest) error {
	if f.RegisterFunc == nil {
		return nil
	}
	return f.RegisterFunc(ctx, req)
}

func (f *Fake) CurrentUser(ctx context.Context, token string) (*models.UserProfile, error) {
	if f.CurrentUserFunc == nil {
		return nil, nil
	}
	return f.CurrentUserFunc(ctx, token)
}

func (f *Fake) ListPosts(ctx context.Context) ([]models.Post, error) {
	if f.ListPostsFunc == nil {
		return nil, nil
	}
	return f.ListPostsFunc(ctx)
}

func (f *Fake) Leaderboard(ctx context.Context) ([]models.Post, error) {
	if f.LeaderboardFunc == nil {
		return nil, nil
	}
	return f.LeaderboardFunc(ctx)
}

func (f *Fake) MyPosts(ctx context.Context, token string) ([]models.Post, error) {
	if f.MyPostsFunc == nil {
		return nil, nil
	}
	return f.MyPostsFunc(ctx, token)
}

func (f *Fake) Queue(ctx context.Context, token string) ([]models.Post, error) {
	if f.QueueFunc == nil {
		return nil, nil
	}
	return f.QueueFunc(ctx, token)
}

func (f *Fake) Upload(ctx context.Context, token, fileName string, file io.Reader, caption string) (*models.Post, error) {
	if f.UploadFunc == nil {
		return nil, nil
	}
	return f.UploadFunc(ctx, token, fileName, file, caption)
}

func (f *Fake) DeletePost(ctx context.Context, token, postID string) error {
	if f.DeletePostFunc == nil {
		return nil
	}
	return f.DeletePostFunc(ctx, token, postID)
}

func (f *Fake) Rate(ctx context.Context, token, postID string, score int) error {
	if f.RateFunc == nil {
		return nil
	}
	return f.RateFunc(ctx, token, postID, score)
}

func (f *Fake) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if f.ListCommentsFunc == nil {
		return nil, nil
	}
	return f.ListCommentsFunc(ctx, postID)
}

func (f *Fake) AddComment(ctx context.Context, token string, comment models.NewComment) error {
	if f.AddCommentFunc == nil {
		return nil
	}
	return f.AddCommentFunc(ctx, token, comment)
}

func (f *Fake) DeleteComment(ctx context.Context, token, commentID string) error {
	if f.DeleteCommentFunc == nil {
		return nil
	}
	return f.DeleteCommentFunc(ctx, token, commentID)
}
