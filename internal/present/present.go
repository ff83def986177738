// Package present assembles the data shown on the results page.
// It does no counting of its own; ranking lives in package tally.
package present

import (
	"context"

	"github.com/roach88/lunchvote/internal/catalog"
	"github.com/roach88/lunchvote/internal/tally"
	"github.com/roach88/lunchvote/internal/vote"
)

// Reader is the read side of a vote store.
type Reader interface {
	RecordsForDate(ctx context.Context, date vote.Date) ([]vote.Record, error)
	AllRecords(ctx context.Context) ([]vote.Record, error)
}

// Results is one day's ranked tally plus the raw records behind it.
type Results struct {
	Date    vote.Date     `json:"date"`
	Rows    []tally.Row   `json:"rows"`
	Total   int           `json:"total"`
	Records []vote.Record `json:"records"`
}

// Presenter reads results for the clock's current day.
type Presenter struct {
	catalog *catalog.Catalog
	reader  Reader
	clock   vote.Clock
}

// New creates a Presenter.
func New(cat *catalog.Catalog, reader Reader, clock vote.Clock) *Presenter {
	return &Presenter{catalog: cat, reader: reader, clock: clock}
}

// Today returns the results for the current day.
func (p *Presenter) Today(ctx context.Context) (Results, error) {
	return p.For(ctx, p.clock.Today())
}

// For returns the results for date.
// Rows and Records come from one read, so they always agree.
func (p *Presenter) For(ctx context.Context, date vote.Date) (Results, error) {
	records, err := p.reader.RecordsForDate(ctx, date)
	if err != nil {
		return Results{}, err
	}
	rows := tally.Aggregate(records, date, p.catalog)
	return Results{
		Date:    date,
		Rows:    rows,
		Total:   tally.Total(rows),
		Records: records,
	}, nil
}

// Dump returns every stored record, for the debug surface.
func (p *Presenter) Dump(ctx context.Context) ([]vote.Record, error) {
	return p.reader.AllRecords(ctx)
}
