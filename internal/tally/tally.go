package tally

import (
	"context"
	"sort"

	"github.com/roach88/lunchvote/internal/catalog"
	"github.com/roach88/lunchvote/internal/vote"
)

// RecordReader is the read side of a vote store.
type RecordReader interface {
	RecordsForDate(ctx context.Context, date vote.Date) ([]vote.Record, error)
}

// Row is one ranked venue.
type Row struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Compute returns the ranked tally for date.
// Storage errors are returned unchanged. The result is never nil.
func Compute(ctx context.Context, reader RecordReader, date vote.Date, cat *catalog.Catalog) ([]Row, error) {
	records, err := reader.RecordsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return Aggregate(records, date, cat), nil
}

// Aggregate groups records for date by venue and ranks the groups.
// Records for other dates are ignored.
func Aggregate(records []vote.Record, date vote.Date, cat *catalog.Catalog) []Row {
	counts := make(map[string]int)
	for _, r := range records {
		if r.Date != date {
			continue
		}
		counts[r.Venue]++
	}

	rows := make([]Row, 0, len(counts))
	for key, n := range counts {
		name, ok := cat.Lookup(key)
		if !ok {
			name = key
		}
		rows = append(rows, Row{Key: key, Name: name, Count: n})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rankBefore(cat, rows[i].Key, rows[j].Key)
	})

	return rows
}

// rankBefore orders equal counts: catalog keys by definition position,
// then unknown keys by key.
func rankBefore(cat *catalog.Catalog, a, b string) bool {
	ai, aok := cat.Index(a)
	bi, bok := cat.Index(b)
	switch {
	case aok && bok:
		return ai < bi
	case aok != bok:
		return aok
	default:
		return a < b
	}
}

// Total returns the sum of all row counts.
func Total(rows []Row) int {
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	return total
}
