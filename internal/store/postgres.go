package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"

	"github.com/roach88/lunchvote/internal/vote"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStore is a VoteStore backed by PostgreSQL.
// The UNIQUE index gives the same at-most-one-record guarantee across
// connections as the single SQLite connection does.
type PostgresStore struct {
	db *sql.DB
}

var _ VoteStore = (*PostgresStore)(nil)

// OpenPostgres connects to dsn and applies the embedded goose migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, storageError("open", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, storageError("open", fmt.Errorf("connect: %w", err))
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, storageError("open", err)
	}

	return &PostgresStore{db: db}, nil
}

// migrationsFS returns the embedded goose migrations rooted at their directory.
func migrationsFS() (fs.FS, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations fs: %w", err)
	}
	return fsys, nil
}

// migrate applies pending migrations with a provider scoped to db.
// A Postgres advisory lock serializes concurrent callers.
func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := migrationsFS()
	if err != nil {
		return err
	}
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return fmt.Errorf("session locker: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys,
		goose.WithSessionLocker(locker),
	)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordVote inserts rec unless the triple already exists.
func (s *PostgresStore) RecordVote(ctx context.Context, rec vote.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote_results (place, date, username)
		VALUES ($1, $2::date, $3)
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
func (s *PostgresStore) RecordsForDate(ctx context.Context, date vote.Date) ([]vote.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT place, to_char(date, 'YYYY-MM-DD'), username
		FROM vote_results
		WHERE date = $1::date
		ORDER BY id ASC
	`, date.String())
	if err != nil {
		return nil, storageError("records for date", err)
	}
	return scanRecords("records for date", rows)
}

// AllRecords returns every record in insertion order.
func (s *PostgresStore) AllRecords(ctx context.Context) ([]vote.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT place, to_char(date, 'YYYY-MM-DD'), username
		FROM vote_results
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, storageError("all records", err)
	}
	return scanRecords("all records", rows)
}
