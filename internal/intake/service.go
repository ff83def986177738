package intake

import (
	"context"
	"log/slog"

	"github.com/roach88/lunchvote/internal/catalog"
	"github.com/roach88/lunchvote/internal/vote"
)

// Recorder is the write side of a vote store.
type Recorder interface {
	RecordVote(ctx context.Context, rec vote.Record) error
}

// Receipt describes what a submission wrote.
type Receipt struct {
	ID     string    `json:"id"`
	Date   vote.Date `json:"date"`
	Voter  string    `json:"voter"`
	Venues []string  `json:"venues"`
}

// Service records validated submissions.
type Service struct {
	catalog *catalog.Catalog
	store   Recorder
	clock   vote.Clock
	ids     IDGenerator
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides the default UUIDv7 submission IDs.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service writing to store with dates from clock.
func NewService(cat *catalog.Catalog, store Recorder, clock vote.Clock, opts ...Option) *Service {
	s := &Service{
		catalog: cat,
		store:   store,
		clock:   clock,
		ids:     UUIDv7Generator{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records one vote per selected venue for today.
//
// The submission is validated again here because callers other than
// ParseForm (the CLI) build Submissions directly. Writes are not grouped in
// a transaction: on the first storage failure Submit stops and returns the
// error together with a Receipt listing the venues already recorded.
// Selecting no venue is valid and writes nothing.
func (s *Service) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	if sub.Voter == "" {
		return Receipt{}, invalid(ReasonMissingVoter, ErrMissingVoter, "")
	}
	venues, err := s.orderVenues(sub.Venues)
	if err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{
		ID:     s.ids.Generate(),
		Date:   s.clock.Today(),
		Voter:  vote.NormalizeVoter(sub.Voter),
		Venues: []string{},
	}

	for _, venue := range venues {
		rec := vote.NewRecord(venue, receipt.Date, receipt.Voter)
		if err := s.store.RecordVote(ctx, rec); err != nil {
			s.logger.Error("record vote failed",
				"submission", receipt.ID,
				"venue", venue,
				"recorded", len(receipt.Venues),
				"error", err,
			)
			return receipt, err
		}
		receipt.Venues = append(receipt.Venues, venue)
	}

	s.logger.Info("votes recorded",
		"submission", receipt.ID,
		"voter", receipt.Voter,
		"date", receipt.Date.String(),
		"venues", receipt.Venues,
	)
	return receipt, nil
}

// orderVenues checks every key against the catalog and returns them
// deduplicated in catalog order.
func (s *Service) orderVenues(keys []string) ([]string, error) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !s.catalog.Contains(k) {
			return nil, invalid(ReasonUnknownVenue, ErrUnknownVenue, k)
		}
		want[k] = true
	}

	ordered := make([]string, 0, len(want))
	for _, k := range s.catalog.Keys() {
		if want[k] {
			ordered = append(ordered, k)
		}
	}
	return ordered, nil
}
