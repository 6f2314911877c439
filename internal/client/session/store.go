// Package session owns the authenticated session shared by every part of the
// client: the bearer token, the cached user profile, change notifications,
// and the remote validation probe.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/resumeroast/internal/client/api"
	"github.com/dmitrijs2005/resumeroast/internal/client/models"
	"github.com/dmitrijs2005/resumeroast/internal/logging"
)

// Store is the process-wide session service. Consumers read current state
// through Token/User and subscribe with OnChange instead of sharing variables.
type Store struct {
	client api.Client
	store  Persistence
	log    logging.Logger

	mu      sync.Mutex
	token   string
	user    *models.UserProfile
	subs    map[int]func()
	nextSub int
}

// NewStore builds a Store and loads any persisted session.
func NewStore(ctx context.Context, client api.Client, persistence Persistence, log logging.Logger) (*Store, error) {
	s := &Store{
		client: client,
		store:  persistence,
		log:    log,
		subs:   make(map[int]func()),
	}

	token, user, err := persistence.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.token = token
	s.user = user
	return s, nil
}

// Token returns the current bearer token, empty when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the cached user profile, nil when signed out.
func (s *Store) User() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetSession persists token and user together. If either is missing the whole
// session is cleared; token and user are never stored independently. The
// change is broadcast in every case.
func (s *Store) SetSession(ctx context.Context, token string, user *models.UserProfile) error {
	if token == "" || user == nil {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	if err := s.store.Save(ctx, token, user); err != nil {
		s.mu.Unlock()
		return err
	}
	s.token = token
	s.user = user
	s.mu.Unlock()

	s.notify()
	return nil
}

// Clear wipes the session and broadcasts, even when there was nothing to wipe.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Clear(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.notify()
	return nil
}

// OnChange registers handler for any session mutation, including ones made by
// other components. The returned function unsubscribes.
func (s *Store) OnChange(handler func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = handler
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	handlers := make([]func(), 0, len(s.subs))
	for _, h := range s.subs {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}

// deauthenticates reports whether a /users/me response status genuinely
// invalidates the session. 204 is on the list because this backend answers
// 204 for a token it no longer recognizes; see the notes in DESIGN.md.
func deauthenticates(code int) bool {
	switch code {
	case 204, 401, 403, 404:
		return true
	}
	return false
}

// Validate performs the remote "who am I" probe.
//
//   - No token: returns nil without a network call.
//   - Deauthenticating status (204/401/403/404): clears the session, returns nil.
//   - Any other failure, including transport errors: treated as transient,
//     the session is preserved and the cached user is returned.
//   - OK: re-persists the same token with the fresh user and returns it.
//
// Only the listed statuses may log the user out; a flaky server must not.
func (s *Store) Validate(ctx context.Context) *models.UserProfile {
	token := s.Token()
	if token == "" {
		return nil
	}

	user, err := s.client.CurrentUser(ctx, token)
	if err != nil {
		if deauthenticates(api.StatusCode(err)) {
			s.log.Info(ctx, "session rejected by server, signing out", "err", err)
			_ = s.Clear(ctx)
			return nil
		}
		s.log.Warn(ctx, "session validation unavailable, keeping cached user", "err", err)
		return s.User()
	}

	if err := s.SetSession(ctx, token, user); err != nil {
		s.log.Error(ctx, "persisting refreshed session", "err", err)
	}
	return user
}

// TokenExpiry reads the exp claim from the access token without verifying the
// signature. Display only; the server remains the authority.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
