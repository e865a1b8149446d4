package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/nutri-cli/internal/db"
	"github.com/saadjs/nutri-cli/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqldb, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "nutri.db"))
	if err != nil {
		t.Fatalf("open state db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}

func TestKVSetGetDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewKV(newTestDB(t))

	if _, ok, err := kv.Get(ctx, "theme"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "Theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, "theme")
	if err != nil || !ok || v != "light" {
		t.Fatalf("expected light, got %q ok=%v err=%v", v, ok, err)
	}
	if v, ok, _ := kv.Get(ctx, "THEME"); !ok || v != "light" {
		t.Fatalf("expected keys to be case-insensitive, got %q ok=%v", v, ok)
	}
	if err := kv.Delete(ctx, "theme"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "theme"); ok {
		t.Fatalf("expected key to be deleted")
	}
	if err := kv.Set(ctx, "  ", "x"); err == nil {
		t.Fatalf("expected empty key to fail")
	}
}

func TestJournalRecentAndPrune(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	j := store.NewJournal(newTestDB(t))

	for i, path := range []string{"/users/me", "/recipes/", "/shopping/"} {
		if err := j.Record(ctx, store.JournalEntry{
			RequestID: "req",
			Method:    "GET",
			Path:      path,
			Status:    200,
			Duration:  time.Duration(i+1) * time.Millisecond,
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	items, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(items) != 2 || items[0].Path != "/recipes/" || items[1].Path != "/shopping/" {
		t.Fatalf("unexpected recent entries: %+v", items)
	}

	n, err := j.Prune(ctx, 1)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 pruned rows, got %d", n)
	}
}
