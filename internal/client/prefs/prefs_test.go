package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// memRepo is a metadata.Repository over a map, with an optional injected error.
type memRepo struct {
	data map[string][]byte
	err  error
}

func newMemRepo() *memRepo { return &memRepo{data: make(map[string][]byte)} }

func (m *memRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data[key], nil
}

func (m *memRepo) Set(ctx context.Context, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memRepo) Clear(ctx context.Context) error {
	m.data = make(map[string][]byte)
	return nil
}

func (m *memRepo) List(ctx context.Context) (map[string][]byte, error) {
	return m.data, nil
}

func TestDismissRoundTrip(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo)
	ctx := context.Background()

	require.False(t, s.IsDismissed(ctx, "welcome"))
	require.NoError(t, s.Dismiss(ctx, "welcome"))
	require.True(t, s.IsDismissed(ctx, "welcome"))

	// Other announcements stay visible.
	require.False(t, s.IsDismissed(ctx, "launch-party"))
}

func TestLookupFailureCountsAsNotDismissed(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo)
	ctx := context.Background()

	require.NoError(t, s.Dismiss(ctx, "welcome"))
	repo.err = errors.New("db locked")

	require.False(t, s.IsDismissed(ctx, "welcome"))
}
