package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/lunchvote/internal/vote"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - UNIQUE index u_idx on (place, username, date)
// 2 - Index on date for per-day reads
const currentSchemaVersion = 2

// SQLiteStore is the default VoteStore.
// A single connection serializes every statement, so a concurrent reader
// sees either the pre- or post-insert state.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ VoteStore = (*SQLiteStore)(nil)

// OpenSQLite creates or opens a SQLite database at path.
// Use MemoryDSN for a per-process in-memory database.
//
// The database is configured with:
//   - WAL mode for file databases
//   - 5-second busy timeout for lock contention
//   - one open connection, never recycled, so ":memory:" data survives
//
// This function is idempotent - safe to call multiple times on one file.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, storageError("open", err)
	}

	// SQLite supports one writer; an in-memory database also lives only as
	// long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storageError("open", fmt.Errorf("connect: %w", err))
	}

	if err := applyPragmas(db, path); err != nil {
		db.Close()
		return nil, storageError("open", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, storageError("open", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the DSN the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// RecordVote inserts rec unless the triple already exists.
// Uses ON CONFLICT DO NOTHING against u_idx; the duplicate case is not an error.
func (s *SQLiteStore) RecordVote(ctx context.Context, rec vote.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote_results (place, date, username)
		VALUES (?, ?, ?)
		ON CONFLICT (place, username, date) DO NOTHING
	`,
		rec.Venue,
		rec.Date.String(),
		rec.Voter,
	)
	if err != nil {
		return storageError("record vote", err)
	}
	return nil
}

// RecordsForDate returns all records for date in insertion order.
func (s *SQLiteStore) RecordsForDate(ctx context.Context, date vote.Date) ([]vote.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT place, date, username
		FROM vote_results
		WHERE date = ?
		ORDER BY id ASC
	`, date.String())
	if err != nil {
		return nil, storageError("records for date", err)
	}
	return scanRecords("records for date", rows)
}

// AllRecords returns every record in insertion order.
func (s *SQLiteStore) AllRecords(ctx context.Context) ([]vote.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT place, date, username
		FROM vote_results
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, storageError("all records", err)
	}
	return scanRecords("all records", rows)
}

// applyPragmas sets required SQLite configuration.
// WAL does not apply to in-memory databases.
func applyPragmas(db *sql.DB, path string) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	if path != MemoryDSN {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS u_idx ON vote_results (place, username, date)`); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}
	if version < 2 {
		if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_vote_results_date ON vote_results (date)`); err != nil {
			return fmt.Errorf("migrate to v2: %w", err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *SQLiteStore) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
