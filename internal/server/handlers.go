package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/roach88/lunchvote/internal/intake"
)

// errorMessages maps intake reason codes to the text shown on /error.
var errorMessages = map[string]string{
	intake.ReasonMissingVoter:    "Please enter your name before voting.",
	intake.ReasonInvalidEncoding: "Form input was invalid UTF-8.",
	intake.ReasonMalformedForm:   "Invalid form input.",
	intake.ReasonUnknownVenue:    "That venue is not on the list.",
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", map[string]any{
		"Venues": s.catalog.Entries(),
	})
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "form too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.redirectError(w, r, intake.ReasonMalformedForm)
		return
	}

	sub, err := intake.ParseForm(body, s.catalog)
	if err != nil {
		s.redirectError(w, r, intake.Reason(err))
		return
	}

	if _, err := s.intake.Submit(r.Context(), sub); err != nil {
		if reason := intake.Reason(err); reason != "" {
			s.redirectError(w, r, reason)
			return
		}
		s.storageFailure(w, r, err)
		return
	}

	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	res, err := s.presenter.Today(r.Context())
	if err != nil {
		s.storageFailure(w, r, err)
		return
	}
	s.render(w, http.StatusOK, "results.html", res)
}

func (s *Server) handleResultsJSON(w http.ResponseWriter, r *http.Request) {
	res, err := s.presenter.Today(r.Context())
	if err != nil {
		s.storageFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDebugVotes(w http.ResponseWriter, r *http.Request) {
	records, err := s.presenter.Dump(r.Context())
	if err != nil {
		s.storageFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

// handleError is the landing page of the 303 redirect after a rejected vote.
// The rejection itself was the redirect, so the page is served with 200.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request) {
	reason := r.URL.Query().Get("reason")
	msg, ok := errorMessages[reason]
	if !ok {
		reason = ""
		msg = "Something went wrong with your vote."
	}
	s.render(w, http.StatusOK, "error.html", map[string]string{
		"Reason":  reason,
		"Message": msg,
	})
}

func (s *Server) redirectError(w http.ResponseWriter, r *http.Request, reason string) {
	s.logger.Info("vote rejected",
		"request_id", chiMiddleware.GetReqID(r.Context()),
		"reason", reason,
	)
	http.Redirect(w, r, "/error?reason="+url.QueryEscape(reason), http.StatusSeeOther)
}

func (s *Server) storageFailure(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("storage failure",
		"request_id", chiMiddleware.GetReqID(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	http.Error(w, "storage unavailable: your request was not completed", http.StatusInternalServerError)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("failed to render template", "template", name, "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}
