// Package storage persists dashboard settings in a libsql database. Both a
// local file and a remote Turso URL work as DSNs; tests use the in-memory
// variant.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

const maxRetries = 2

// Open opens a libsql database and verifies the connection. A local path
// DSN looks like "file:partnerpulse.db"; a remote Turso DSN carries its
// auth token as a query parameter.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Minimal idle connections: Turso aggressively closes idle Hrana
	// streams, and stale connections surface as "stream not found".
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// KV is a keyed JSON-document store backing the plan tracker.
type KV struct {
	db *sql.DB
}

// NewKV creates the settings table if needed and returns the store.
func NewKV(ctx context.Context, db *sql.DB) (*KV, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}
	return &KV{db: db}, nil
}

// Load returns the payload stored under key, or nil when the key has never
// been written.
func (s *KV) Load(ctx context.Context, key string) ([]byte, error) {
	return withRetry(ctx, maxRetries, func() ([]byte, error) {
		var payload []byte
		err := s.db.QueryRowContext(ctx,
			`SELECT payload FROM settings WHERE key = ?`, key,
		).Scan(&payload)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load setting %q: %w", key, err)
		}
		return payload, nil
	})
}

// Save upserts the payload under key.
func (s *KV) Save(ctx context.Context, key string, payload []byte) error {
	_, err := withRetry(ctx, maxRetries, func() (struct{}, error) {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO settings (key, payload, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				payload = excluded.payload,
				updated_at = excluded.updated_at
		`, key, payload, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to save setting %q: %w", key, err)
		}
		return struct{}{}, nil
	})
	return err
}

// isStreamError reports whether an error is a Turso "stream not found"
// error, which a stale pooled connection produces.
func isStreamError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "stream not found")
}

// withRetry re-runs fn on stream errors, pausing briefly so the pool can
// hand out a fresh connection.
func withRetry[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !isStreamError(err) || attempt == maxRetries {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return result, err
}
