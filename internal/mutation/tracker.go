// Package mutation implements optimistic updates: apply a local guess, call
// the server, then either reconcile with the server's answer or reload.
package mutation

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInFlight is returned when a mutation for the same key is already
// running. Triggers are rejected, not queued.
var ErrInFlight = errors.New("mutation already in flight")

type State int

const (
	Idle State = iota
	Saving
	Failed
)

func (s State) String() string {
	switch s {
	case Saving:
		return "saving"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Tracker holds per-entity mutation state. Keys are free-form, e.g.
// "recipe:12" or "item:7". The zero value is ready to use.
type Tracker struct {
	mu     sync.Mutex
	states map[string]State
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) init() {
	if t.states == nil {
		t.states = map[string]State{}
	}
}

// Begin marks key as saving.
func (t *Tracker) Begin(key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.init()
	if t.states[key] == Saving {
		return fmt.Errorf("%s: %w", key, ErrInFlight)
	}
	t.states[key] = Saving
	return nil
}

// Done ends the mutation for key. A nil err returns it to Idle.
func (t *Tracker) Done(key string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.init()
	if err == nil {
		delete(t.states, key)
		return
	}
	t.states[key] = Failed
}

// Reset clears a Failed key once the caller has reloaded.
func (t *Tracker) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.init()
	if t.states[key] == Failed {
		delete(t.states, key)
	}
}

func (t *Tracker) State(key string) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.states[key]
}
