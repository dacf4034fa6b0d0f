package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const createPreferencesTable = `
CREATE TABLE IF NOT EXISTS preferences (
	scope      TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      INTEGER NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (scope, key)
)`

// SQLiteStore persists preferences in a sqlite database.
type SQLiteStore struct {
	db    *sql.DB
	scope string
}

// OpenSQLite opens (creating if needed) the database at path.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening preferences db: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createPreferencesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating preferences table: %w", err)
	}
	return &SQLiteStore{db: db, scope: DefaultScope}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Scope returns a store sharing the database, partitioned under name.
func (s *SQLiteStore) Scope(name string) Store {
	return &SQLiteStore{db: s.db, scope: name}
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string) (bool, bool, error) {
	if err := checkKey(key); err != nil {
		return false, false, err
	}
	var v int
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE scope = ? AND key = ?`, s.scope, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("reading preference %s: %w", key, err)
	}
	return v != 0, true, nil
}

// Set implements Store.
func (s *SQLiteStore) Set(ctx context.Context, key string, value bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	v := 0
	if value {
		v = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (scope, key, value) VALUES (?, ?, ?)
		ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.scope, key, v)
	if err != nil {
		return fmt.Errorf("writing preference %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE scope = ? AND key = ?`, s.scope, key); err != nil {
		return fmt.Errorf("deleting preference %s: %w", key, err)
	}
	return nil
}
