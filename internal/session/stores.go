package session

import (
	"context"

	"github.com/saadjs/nutri-cli/internal/store"
)

type sqliteStore struct {
	kv *store.KV
}

// NewSQLiteStore keeps the credential in the state file so it survives
// restarts until an explicit logout.
func NewSQLiteStore(kv *store.KV) Store {
	return &sqliteStore{kv: kv}
}

func (s *sqliteStore) Load(ctx context.Context) (string, bool, error) {
	return s.kv.Get(ctx, TokenKey)
}

func (s *sqliteStore) Save(ctx context.Context, token string) error {
	return s.kv.Set(ctx, TokenKey, token)
}

func (s *sqliteStore) Delete(ctx context.Context) error {
	return s.kv.Delete(ctx, TokenKey)
}

type memoryStore struct {
	token string
	set   bool
}

// NewMemoryStore is a process-lifetime store used by tests and --ephemeral.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Load(context.Context) (string, bool, error) {
	return m.token, m.set, nil
}

func (m *memoryStore) Save(_ context.Context, token string) error {
	m.token, m.set = token, true
	return nil
}

func (m *memoryStore) Delete(context.Context) error {
	m.token, m.set = "", false
	return nil
}
