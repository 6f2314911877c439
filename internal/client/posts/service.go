// Package posts loads and orders post collections and performs the post
// mutations (upload, owner delete).
package posts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dmitrijs2005/resumeroast/internal/client/api"
	"github.com/dmitrijs2005/resumeroast/internal/client/feed"
	"github.com/dmitrijs2005/resumeroast/internal/client/models"
	"github.com/dmitrijs2005/resumeroast/internal/client/notify"
	"github.com/dmitrijs2005/resumeroast/internal/client/optimistic"
	"github.com/dmitrijs2005/resumeroast/internal/logging"
)

var (
	ErrSignInRequired = errors.New("sign in required")
	ErrFileRequired   = errors.New("a resume file is required")
	ErrNotOwner       = errors.New("only the post owner can delete it")
)

// Session is the slice of the session store the service needs.
type Session interface {
	Token() string
	User() *models.UserProfile
}

type Service struct {
	client   api.Client
	session  Session
	notifier notify.Notifier
	log      logging.Logger
}

func NewService(client api.Client, session Session, notifier notify.Notifier, log logging.Logger) *Service {
	return &Service{client: client, session: session, notifier: notifier, log: log}
}

func createdTime(p *models.Post) time.Time {
	if p.CreatedAt == nil {
		return time.Time{}
	}
	return *p.CreatedAt
}

// SortByNewest orders posts by creation time descending; posts without a
// timestamp sink to the end.
func SortByNewest(posts []models.Post) []models.Post {
	sorted := append([]models.Post(nil), posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return createdTime(&sorted[i]).After(createdTime(&sorted[j]))
	})
	return sorted
}

// Rank orders posts by average rating descending, vote count breaking ties;
// missing values count as zero.
func Rank(posts []models.Post) []models.Post {
	ranked := append([]models.Post(nil), posts...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating() != ranked[j].Rating() {
			return ranked[i].Rating() > ranked[j].Rating()
		}
		return ranked[i].Votes() > ranked[j].Votes()
	})
	return ranked
}

// Feed returns all posts, newest first.
func (s *Service) Feed(ctx context.Context) ([]models.Post, error) {
	list, err := s.client.ListPosts(ctx)
	if err != nil {
		s.notifier.Error("Could not load the community.")
		return nil, fmt.Errorf("loading feed: %w", err)
	}
	return SortByNewest(list), nil
}

// Leaderboard returns posts ranked by rating then votes.
func (s *Service) Leaderboard(ctx context.Context) ([]models.Post, error) {
	list, err := s.client.Leaderboard(ctx)
	if err != nil {
		s.notifier.Error("Could not load leaderboard.")
		return nil, fmt.Errorf("loading leaderboard: %w", err)
	}
	return Rank(list), nil
}

// RankMap maps post id to 1-based leaderboard rank. A failed load yields an
// empty map: profile rank badges just disappear.
func (s *Service) RankMap(ctx context.Context) map[string]int {
	list, err := s.client.Leaderboard(ctx)
	if err != nil {
		s.log.Warn(ctx, "leaderboard unavailable for rank map", "err", err)
		return map[string]int{}
	}

	ranks := make(map[string]int, len(list))
	for i, post := range Rank(list) {
		if post.PostID != "" {
			ranks[post.PostID] = i + 1
		}
	}
	return ranks
}

// Mine returns the caller's own posts.
func (s *Service) Mine(ctx context.Context) ([]models.Post, error) {
	token := s.session.Token()
	if token == "" {
		return nil, ErrSignInRequired
	}

	list, err := s.client.MyPosts(ctx, token)
	if err != nil {
		s.notifier.Error("Could not load your posts.")
		return nil, fmt.Errorf("loading own posts: %w", err)
	}
	return list, nil
}

// Upload submits a resume file with an optional caption. The file is the one
// required field; the check happens before any request.
func (s *Service) Upload(ctx context.Context, fileName string, file io.Reader, caption string) error {
	token := s.session.Token()
	if token == "" {
		s.notifier.Error("Sign in to upload a resume.")
		return ErrSignInRequired
	}
	if file == nil || fileName == "" {
		return ErrFileRequired
	}

	if _, err := s.client.Upload(ctx, token, fileName, file, caption); err != nil {
		s.notifier.Error("Upload failed.")
		return fmt.Errorf("uploading %s: %w", fileName, err)
	}

	s.notifier.Success("Resume posted.")
	return nil
}

// CanDelete is the client-side owner gate; the server enforces the real one.
func (s *Service) CanDelete(post *models.Post) bool {
	if s.session.Token() == "" {
		return false
	}
	name := s.session.User().DisplayName()
	return name != "" && post.Owner.Username != "" && post.Owner.Username == name
}

// Delete removes a post (and, server-side, its comments). The post leaves the
// navigation list immediately; if the server rejects the delete the previous
// list is restored, so a forbidden delete changes nothing.
func (s *Service) Delete(ctx context.Context, nav *feed.Controller, postID string) error {
	token := s.session.Token()
	if token == "" {
		s.notifier.Error("Sign in to delete posts.")
		return ErrSignInRequired
	}

	var inflight optimistic.Flag
	err := optimistic.Run(ctx, &inflight, optimistic.Mutation[[]models.Post]{
		Apply: func() []models.Post {
			snapshot := nav.Posts()
			nav.RemovePost(postID)
			return snapshot
		},
		Call: func(ctx context.Context) error {
			return s.client.DeletePost(ctx, token, postID)
		},
		Revert: func(snapshot []models.Post) {
			nav.SetPosts(snapshot)
		},
		Reconcile: func(ctx context.Context) error {
			s.notifier.Success("Post deleted.")
			nav.Close()
			return nil
		},
	})
	if err != nil {
		s.notifier.Error("Could not delete post.")
		return fmt.Errorf("deleting post %s: %w", postID, err)
	}
	return nil
}
