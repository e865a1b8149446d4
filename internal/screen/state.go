// Package screen holds the per-screen view state of the client: what was
// fetched, whether it is loading, and which entities have a save in flight.
//
// Containers are safe for concurrent use. Network calls are made without
// holding the container lock.
package screen

import (
	"io"
	"log/slog"
	"sync"
)

type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return "idle"
	}
}

// base is the load state shared by every container.
type base struct {
	mu     sync.Mutex
	status Status
	err    error
	log    *slog.Logger
}

func newBase(log *slog.Logger) base {
	return base{log: orDiscard(log)}
}

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return log
}

func (b *base) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Err is the error of the last failed load.
func (b *base) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *base) loading() {
	b.mu.Lock()
	b.status = Loading
	b.mu.Unlock()
}

// settle records the load outcome. Callers hold b.mu.
func (b *base) settle(err error) {
	if err != nil {
		b.status = Failed
		b.err = err
		return
	}
	b.status = Ready
	b.err = nil
}
