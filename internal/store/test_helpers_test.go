package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/lunchvote/internal/vote"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createMemoryStore creates a new in-memory store for testing.
func createMemoryStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(MemoryDSN)
	if err != nil {
		t.Fatalf("OpenSQLite(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var (
	day1 = vote.Date{Year: 2024, Month: time.March, Day: 4}
	day2 = vote.Date{Year: 2024, Month: time.March, Day: 5}
)
