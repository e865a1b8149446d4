package mutation

import (
	"context"
	"errors"
	"fmt"
)

// Step is one optimistic mutation. Apply and Reconcile run against local
// state; Call talks to the server. Apply, Reconcile and Reload may be nil.
type Step[T any] struct {
	Key       string
	Apply     func()
	Call      func(ctx context.Context) (T, error)
	Reconcile func(T)
	Reload    func(ctx context.Context) error
}

// Run executes s under tracker. On success the server payload is passed to
// Reconcile. On failure the collection is reloaded from the server and the
// call's error is returned, joined with the reload error if that failed too.
// A failed key stays Failed only when the reload also failed.
func Run[T any](ctx context.Context, tracker *Tracker, s Step[T]) (T, error) {
	var zero T
	if s.Call == nil {
		return zero, fmt.Errorf("mutation %s: no call", s.Key)
	}
	if err := tracker.Begin(s.Key); err != nil {
		return zero, err
	}
	if s.Apply != nil {
		s.Apply()
	}

	out, err := s.Call(ctx)
	if err == nil {
		if s.Reconcile != nil {
			s.Reconcile(out)
		}
		tracker.Done(s.Key, nil)
		return out, nil
	}

	tracker.Done(s.Key, err)
	if s.Reload != nil {
		if rerr := s.Reload(ctx); rerr != nil {
			return zero, errors.Join(err, fmt.Errorf("reload after failed %s: %w", s.Key, rerr))
		}
		tracker.Reset(s.Key)
	}
	return zero, err
}
