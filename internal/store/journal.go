package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type JournalEntry struct {
	ID        int64
	RequestID string
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	Error     string
	CreatedAt time.Time
}

// Journal keeps a local record of outbound API requests, newest last.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Record(ctx context.Context, e JournalEntry) error {
	var errText any
	if e.Error != "" {
		errText = e.Error
	}
	_, err := j.db.ExecContext(ctx, `
INSERT INTO request_journal(request_id, method, path, status, duration_ms, error)
VALUES(?, ?, ?, ?, ?, ?)
`, e.RequestID, e.Method, e.Path, e.Status, e.Duration.Milliseconds(), errText)
	if err != nil {
		return fmt.Errorf("record request: %w", err)
	}
	return nil
}

func (j *Journal) Recent(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
SELECT id, request_id, method, path, status, duration_ms, IFNULL(error, ''), created_at
FROM request_journal
ORDER BY id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	items := make([]JournalEntry, 0)
	for rows.Next() {
		var e JournalEntry
		var ms int64
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Method, &e.Path, &e.Status, &ms, &e.Error, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		e.Duration = time.Duration(ms) * time.Millisecond
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	// Oldest first reads better in a terminal.
	for i, k := 0, len(items)-1; i < k; i, k = i+1, k-1 {
		items[i], items[k] = items[k], items[i]
	}
	return items, nil
}

// Prune keeps only the newest keep entries.
func (j *Journal) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be >= 0")
	}
	res, err := j.db.ExecContext(ctx, `
DELETE FROM request_journal
WHERE id NOT IN (SELECT id FROM request_journal ORDER BY id DESC LIMIT ?)
`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune requests: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned requests: %w", err)
	}
	return n, nil
}
