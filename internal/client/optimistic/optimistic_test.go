package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSuccess(t *testing.T) {
	var steps []string
	flag := &Flag{}

	err := Run(context.Background(), flag, Mutation[int]{
		Apply: func() int {
			steps = append(steps, "apply")
			return 42
		},
		Call: func(ctx context.Context) error {
			steps = append(steps, "call")
			require.True(t, flag.Busy())
			return nil
		},
		Revert: func(token int) {
			steps = append(steps, "revert")
		},
		Reconcile: func(ctx context.Context) error {
			steps = append(steps, "reconcile")
			return nil
		},
	})

	require.NoError(t, err)
	require.Equal(t, []string{"apply", "call", "reconcile"}, steps)
	require.False(t, flag.Busy())
}

func TestRunFailureReverts(t *testing.T) {
	boom := errors.New("boom")
	var reverted int
	flag := &Flag{}

	err := Run(context.Background(), flag, Mutation[int]{
		Apply: func() int { return 7 },
		Call:  func(ctx context.Context) error { return boom },
		Revert: func(token int) {
			reverted = token
		},
		Reconcile: func(ctx context.Context) error {
			t.Fatal("reconcile must not run after a failed call")
			return nil
		},
	})

	require.ErrorIs(t, err, boom)
	require.Equal(t, 7, reverted)
	require.False(t, flag.Busy())
}

func TestRunBusySkipsApply(t *testing.T) {
	flag := &Flag{busy: true}
	applied := false

	err := Run(context.Background(), flag, Mutation[struct{}]{
		Apply: func() struct{} {
			applied = true
			return struct{}{}
		},
		Call:   func(ctx context.Context) error { return nil },
		Revert: func(struct{}) {},
	})

	require.ErrorIs(t, err, ErrBusy)
	require.False(t, applied)
}

func TestRunReconcileErrorSurfaces(t *testing.T) {
	boom := errors.New("reload failed")
	flag := &Flag{}

	err := Run(context.Background(), flag, Mutation[struct{}]{
		Apply: func() struct{} { return struct{}{} },
		Call:  func(ctx context.Context) error { return nil },
		Revert: func(struct{}) {
			t.Fatal("revert must not run after a successful call")
		},
		Reconcile: func(ctx context.Context) error { return boom },
	})

	require.ErrorIs(t, err, boom)
}
