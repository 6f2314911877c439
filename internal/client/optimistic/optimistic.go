// Package optimistic implements the one mutation pattern the client applies
// everywhere state changes ahead of the server: apply the local transition,
// issue the remote call, and on failure revert exactly what was applied.
package optimistic

import (
	"context"
	"errors"
)

// ErrBusy is returned when a mutation is requested while a previous one for
// the same action is still in flight. The local transition is never applied
// in that case.
var ErrBusy = errors.New("mutation already in flight")

// Flag is a per-action in-flight marker. Controllers own one flag per logical
// action (e.g. "submit comment") and drive it from the single UI goroutine.
type Flag struct {
	busy bool
}

// Busy reports whether a mutation is currently in flight.
func (f *Flag) Busy() bool { return f.busy }

// Mutation describes one optimistic state transition.
//
//   - Apply performs the local change and returns a token holding whatever
//     Revert needs to undo it (the removed item, the inserted id, ...).
//   - Call issues the remote request.
//   - Revert undoes the local change; it runs only when Call fails.
//   - Reconcile runs after a successful Call for cases where the server owns
//     the authoritative result (e.g. reloading comments to pick up real ids).
//     It may be nil.
type Mutation[T any] struct {
	Apply     func() T
	Call      func(ctx context.Context) error
	Revert    func(T)
	Reconcile func(ctx context.Context) error
}

// Run executes m under the in-flight flag. The returned error is ErrBusy,
// the Call error (after reverting), or the Reconcile error.
func Run[T any](ctx context.Context, flag *Flag, m Mutation[T]) error {
	if flag.busy {
		return ErrBusy
	}
	flag.busy = true
	defer func() { flag.busy = false }()

	token := m.Apply()

	if err := m.Call(ctx); err != nil {
		m.Revert(token)
		return err
	}

	if m.Reconcile != nil {
		return m.Reconcile(ctx)
	}
	return nil
}
