package server

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/roach88/lunchvote/internal/catalog"
	"github.com/roach88/lunchvote/internal/intake"
	"github.com/roach88/lunchvote/internal/present"
)

// MaxBodyBytes bounds the size of a vote form.
const MaxBodyBytes = 64 << 10

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	catalog   *catalog.Catalog
	intake    *intake.Service
	presenter *present.Presenter
	logger    *slog.Logger
	debug     bool
	pages     *template.Template
}

// Option configures a Server.
type Option func(*Server)

// WithDebug enables the /debug/votes dump.
func WithDebug(enabled bool) Option {
	return func(s *Server) { s.debug = enabled }
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server.
func New(cat *catalog.Catalog, svc *intake.Service, p *present.Presenter, opts ...Option) *Server {
	s := &Server{
		catalog:   cat,
		intake:    svc,
		presenter: p,
		logger:    slog.Default(),
		pages:     pages,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the chi router for all routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Post("/vote", s.handleVote)
	r.Get("/results", s.handleResults)
	r.Get("/results.json", s.handleResultsJSON)
	r.Get("/error", s.handleError)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if s.debug {
		r.Get("/debug/votes", s.handleDebugVotes)
	}

	return r
}
