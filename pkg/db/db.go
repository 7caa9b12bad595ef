// Package db is the persistence layer: a local SQLite store holding scraped
// items and their refiner/cooking recipes between the scrape and export
// phases.
package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "nmsdex.db"

// Store wraps the SQLite handle together with the id sequencer it owns.
type Store struct {
	*sql.DB
	path string
	seq  *Sequencer
}

// openDB opens a SQLite database at the given path.
func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection also
	// keeps :memory: databases on the same handle.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB, nil
}

// Open opens or creates the store at path and initializes the schema and id
// sequencer.
func Open(path string) (*Store, error) {
	sqlDB, err := openDB(path)
	if err != nil {
		return nil, err
	}

	s := &Store{DB: sqlDB, path: path}

	if err := s.ensureSchemaExists(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.seq, err = loadSequencer(s.DB)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to seed id sequencer: %w", err)
	}

	return s, nil
}

// OpenMemory opens a fresh in-memory store. Used by tests and dry runs.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// ensureSchemaExists checks for the items table and initializes the schema
// when it is missing.
func (s *Store) ensureSchemaExists() error {
	var tableName string
	err := s.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='items'").Scan(&tableName)

	if errors.Is(err, sql.ErrNoRows) {
		return s.InitSchema()
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InitSchema initializes the database schema.
func (s *Store) InitSchema() error {
	_, err := s.Exec(schema)
	return err
}

// Reset drops all persisted rows and restarts every id sequence.
func (s *Store) Reset() error {
	for _, table := range []string{
		"refiner_ingredients", "refiner_recipes",
		"cooking_ingredients", "cooking_recipes",
		"items",
	} {
		if _, err := s.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	s.seq = newSequencer()
	return nil
}
