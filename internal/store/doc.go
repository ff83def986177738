// Package store provides durable storage for lunch votes.
//
// The store is an append-only set of (venue, date, voter) facts:
//   - RecordVote inserts a fact if it is absent
//   - RecordsForDate reads the facts for one calendar day
//   - AllRecords dumps every fact (debug surface only)
//
// # Uniqueness
//
// A UNIQUE index over (place, username, date) plus INSERT ... ON CONFLICT
// DO NOTHING makes RecordVote idempotent. A duplicate is a successful no-op,
// never an error, and two concurrent identical calls leave exactly one row.
//
// # Backends
//
//   - SQLite (default): mattn/go-sqlite3, ":memory:" unless a file path is
//     given. One connection serializes every read and write.
//   - PostgreSQL: lib/pq, schema managed by goose migrations.
//
// # Errors
//
// Every failure of the underlying engine is returned as a *StorageError,
// which matches errors.Is(err, ErrStorage).
package store
