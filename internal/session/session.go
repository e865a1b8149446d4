// Package session owns the bearer credential used by the API client.
//
// A Session is created once per process and injected into the request
// gateway. Only login and logout write to it; every outbound request reads
// it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// TokenKey is the fixed slot the credential is persisted under.
const TokenKey = "nutri_token"

var ErrNoCredential = errors.New("not logged in")

// Store persists a credential. Implementations need not be safe for
// concurrent use; Session serialises access.
type Store interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

type Session struct {
	mu    sync.Mutex
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

func (s *Session) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("credential is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, token); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Credential returns the stored token. ok is false when no one is logged in.
func (s *Session) Credential(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok, err := s.store.Load(ctx)
	if err != nil {
		return "", false, fmt.Errorf("load credential: %w", err)
	}
	if !ok || strings.TrimSpace(token) == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Clear removes the credential. Clearing an empty session is not an error.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Require is Credential for callers that cannot proceed anonymously.
func (s *Session) Require(ctx context.Context) (string, error) {
	token, ok, err := s.Credential(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoCredential
	}
	return token, nil
}
