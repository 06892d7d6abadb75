// Package sessionstore caches serialized sessions on disk so command-line
// invocations can reuse a login instead of re-authenticating every run.
//
// Storage is SQLite with WAL mode. One row per (base URL, data view,
// username) triple; saving again replaces the previous entry.
package sessionstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store is a durable cache of serialized sessions.
type Store struct {
	db *sql.DB
}

// Key identifies one cached session.
type Key struct {
	BaseURL  string
	DataView string
	Username string
}

// Entry is one cached session with its save time.
type Entry struct {
	Key     Key
	Payload string
	SavedAt time.Time
}

// Open creates or opens the cache database at the given path.
//
// The database is configured with WAL mode, NORMAL synchronous mode and a
// 5-second busy timeout. SQLite supports a single writer, so the pool is
// limited to one connection. Safe to call multiple times on the same path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session cache: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to session cache: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put saves a serialized session, replacing any previous entry for the
// same key.
func (s *Store) Put(ctx context.Context, key Key, payload string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (base_url, data_view, username, payload, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(base_url, data_view, username)
		DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`, key.BaseURL, key.DataView, key.Username, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get looks up a cached session. The second return is false when no entry
// exists for the key.
func (s *Store) Get(ctx context.Context, key Key) (string, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM sessions
		WHERE base_url = ? AND data_view = ? AND username = ?
	`, key.BaseURL, key.DataView, key.Username).Scan(&payload)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}
	return payload, true, nil
}

// Delete removes a cached session. Removing a missing entry is not an
// error.
func (s *Store) Delete(ctx context.Context, key Key) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE base_url = ? AND data_view = ? AND username = ?
	`, key.BaseURL, key.DataView, key.Username); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// List returns every cached session, most recently saved first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT base_url, data_view, username, payload, saved_at
		FROM sessions
		ORDER BY saved_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var savedAt string
		if err := rows.Scan(&e.Key.BaseURL, &e.Key.DataView, &e.Key.Username,
			&e.Payload, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, savedAt); err == nil {
			e.SavedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return entries, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
