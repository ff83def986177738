package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/lunchvote/internal/vote"
)

// Supported drivers for Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MemoryDSN opens a fresh in-memory SQLite database.
const MemoryDSN = ":memory:"

// VoteStore is the persistence core shared by intake, tally and presenter.
// Implementations must be safe for concurrent use.
type VoteStore interface {
	// RecordVote inserts rec if no record with the same venue, date and
	// voter exists. A duplicate is a no-op and returns nil.
	RecordVote(ctx context.Context, rec vote.Record) error

	// RecordsForDate returns every record for date. Never nil.
	RecordsForDate(ctx context.Context, date vote.Date) ([]vote.Record, error)

	// AllRecords returns every stored record. Never nil.
	AllRecords(ctx context.Context) ([]vote.Record, error)

	// Close releases the underlying connection.
	Close() error
}

// Open opens a store for the named driver.
// For DriverSQLite an empty dsn means MemoryDSN.
func Open(ctx context.Context, driver, dsn string) (VoteStore, error) {
	switch driver {
	case DriverSQLite, "":
		if dsn == "" {
			dsn = MemoryDSN
		}
		return OpenSQLite(dsn)
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q: must be %q or %q", driver, DriverSQLite, DriverPostgres)
	}
}

// scanRecords drains rows of (place, date, username) into records.
// Returns an empty slice instead of nil.
func scanRecords(op string, rows *sql.Rows) ([]vote.Record, error) {
	defer rows.Close()

	records := []vote.Record{}
	for rows.Next() {
		var (
			rec  vote.Record
			date string
		)
		if err := rows.Scan(&rec.Venue, &date, &rec.Voter); err != nil {
			return nil, storageError(op, fmt.Errorf("scan: %w", err))
		}
		d, err := vote.ParseDate(date)
		if err != nil {
			return nil, storageError(op, err)
		}
		rec.Date = d
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(op, fmt.Errorf("iterate: %w", err))
	}

	return records, nil
}
