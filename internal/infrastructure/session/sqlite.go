package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raisket/marketplace/internal/domain"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS session_items (
    session    TEXT NOT NULL,
    key        TEXT NOT NULL,
    value      TEXT NOT NULL,
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (session, key)
);
`

// SQLiteStore keeps session items in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path and applies the schema
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent and
	// serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// GetItem returns the value stored under key for session
func (s *SQLiteStore) GetItem(ctx context.Context, session, key string) (string, error) {
	if err := checkSession(session); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_items WHERE session = ? AND key = ?`,
		session, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select session item: %w", err)
	}
	return value, nil
}

// SetItem stores value under key for session
func (s *SQLiteStore) SetItem(ctx context.Context, session, key, value string) error {
	if err := checkSession(session); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_items(session, key, value, updated_at) VALUES(?,?,?,?)
		 ON CONFLICT(session, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		session, key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert session item: %w", err)
	}
	return nil
}

// RemoveItem deletes key for session; absent keys are not an error
func (s *SQLiteStore) RemoveItem(ctx context.Context, session, key string) error {
	if err := checkSession(session); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_items WHERE session = ? AND key = ?`,
		session, key,
	); err != nil {
		return fmt.Errorf("delete session item: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
