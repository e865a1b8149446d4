package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutri-cli/internal/db"
	"github.com/saadjs/nutri-cli/internal/session"
	"github.com/saadjs/nutri-cli/internal/store"
)

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := session.New(session.NewMemoryStore())

	_, ok, err := s.Credential(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Require(ctx)
	assert.True(t, errors.Is(err, session.ErrNoCredential))

	require.Error(t, s.Set(ctx, "   "))
	require.NoError(t, s.Set(ctx, "abc"))

	token, ok, err := s.Credential(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Credential(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nutri.db")

	first, err := db.OpenAndMigrate(path)
	require.NoError(t, err)
	require.NoError(t, session.New(session.NewSQLiteStore(store.NewKV(first))).Set(ctx, "persisted"))
	require.NoError(t, first.Close())

	second, err := db.OpenAndMigrate(path)
	require.NoError(t, err)
	defer second.Close()

	s := session.New(session.NewSQLiteStore(store.NewKV(second)))
	token, err := s.Require(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)

	require.NoError(t, s.Clear(ctx))
	_, ok, err := s.Credential(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInspectReadsClaimsWithoutKey(t *testing.T) {
	t.Parallel()
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ana@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	claims, err := session.Inspect(signed)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(exp))
	assert.False(t, claims.Expired(exp.Add(-time.Minute)))
	assert.True(t, claims.Expired(exp))

	_, err = session.Inspect("not-a-jwt")
	assert.Error(t, err)
}
