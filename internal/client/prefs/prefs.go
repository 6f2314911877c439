// Package prefs stores small per-user UI preferences, currently just which
// announcements have been dismissed. One flag per announcement id, persisted
// across runs.
package prefs

import (
	"context"

	"github.com/dmitrijs2005/resumeroast/internal/client/repositories/metadata"
)

const dismissedPrefix = "announcement_dismissed:"

type Service struct {
	repo metadata.Repository
}

func NewService(repo metadata.Repository) *Service {
	return &Service{repo: repo}
}

// IsDismissed reports whether the announcement with the given id was
// dismissed earlier. Lookup failures count as not dismissed: showing a banner
// twice beats never showing it.
func (s *Service) IsDismissed(ctx context.Context, announcementID string) bool {
	value, err := s.repo.Get(ctx, dismissedPrefix+announcementID)
	if err != nil {
		return false
	}
	return string(value) == "1"
}

// Dismiss records the dismissal of one announcement.
func (s *Service) Dismiss(ctx context.Context, announcementID string) error {
	return s.repo.Set(ctx, dismissedPrefix+announcementID, []byte("1"))
}
