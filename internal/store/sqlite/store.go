// Package sqlite implements the persistence layer on SQLite.
package sqlite

import (
	"database/sql"
	_ "embed"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/productivite/productivite-server/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store provides SQLite-backed persistence for the productivite server.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	indexer store.SearchIndexer

	mu       sync.RWMutex
	bulkMode bool
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
//
// The pragmas ride on the DSN so the driver applies them to every pooled
// connection; a plain db.Exec would only configure whichever connection
// happened to serve it. _txlock=immediate makes write transactions take
// the write lock at BEGIN, so concurrent writers queue on busy_timeout
// instead of failing the deferred read-to-write upgrade with SQLITE_BUSY.
func Open(path string, logger *slog.Logger) (*Store, error) {
	dsn := "file:" + path + "?_txlock=immediate" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	// Run schema migration.
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &Store{
		db:      db,
		logger:  logger,
		indexer: store.NewNoopSearchIndexer(),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer used for maintaining the search index.
func (s *Store) SetSearchIndexer(indexer store.SearchIndexer) {
	s.indexer = indexer
}

// SetBulkMode enables or disables bulk mode, which suppresses per-write
// index updates. Used by seeding; callers must resync the index afterwards.
func (s *Store) SetBulkMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bulkMode = enabled
}

// IsBulkMode returns whether the store is in bulk mode.
func (s *Store) IsBulkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bulkMode
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// parseNullableTime parses an optional time string into a zero-able time.
func parseNullableTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	return parseTime(s.String)
}

// nullString returns a sql.NullString from a string, treating "" as NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullTimeString returns a sql.NullString from a time, treating the zero
// time as NULL.
func nullTimeString(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(t), Valid: true}
}

// marshalList encodes a string-like slice as a JSON array for storage.
// Empty slices are stored as NULL.
func marshalList[T ~string](items []T) (sql.NullString, error) {
	if len(items) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal list: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// unmarshalList decodes a stored JSON array back into a slice.
func unmarshalList[T ~string](s sql.NullString) ([]T, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(s.String), &items); err != nil {
		return nil, fmt.Errorf("unmarshal list: %w", err)
	}
	return items, nil
}
