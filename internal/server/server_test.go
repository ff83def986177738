package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lunchvote/internal/catalog"
	"github.com/roach88/lunchvote/internal/intake"
	"github.com/roach88/lunchvote/internal/present"
	"github.com/roach88/lunchvote/internal/store"
	"github.com/roach88/lunchvote/internal/tally"
	"github.com/roach88/lunchvote/internal/testutil"
	"github.com/roach88/lunchvote/internal/vote"
)

var today = vote.Date{Year: 2024, Month: time.October, Day: 1}

type fixture struct {
	handler http.Handler
	store   *store.SQLiteStore
	logs    *bytes.Buffer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	s, err := store.OpenSQLite(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cat := catalog.MustNew(
		catalog.Venue{Key: "markthalle", Name: "Markthalle"},
		catalog.Venue{Key: "burgerlich", Name: "Burgerlich"},
	)
	clock := testutil.NewFixedClock(today)
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))

	svc := intake.NewService(cat, s, clock, intake.WithLogger(logger))
	p := present.New(cat, s, clock)

	opts = append([]Option{WithLogger(logger)}, opts...)
	return &fixture{
		handler: New(cat, svc, p, opts...).Handler(),
		store:   s,
		logs:    logs,
	}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestIndex_RendersCatalogInOrder(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, `name="username"`)
	mk := strings.Index(html, `name="markthalle"`)
	bg := strings.Index(html, `name="burgerlich"`)
	require.NotEqual(t, -1, mk)
	require.NotEqual(t, -1, bg)
	assert.Less(t, mk, bg)
}

func TestVote_RedirectsToResults(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/vote", "username=alice&markthalle=on")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/results", rec.Header().Get("Location"))

	records, err := f.store.RecordsForDate(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, []vote.Record{{Venue: "markthalle", Date: today, Voter: "alice"}}, records)
}

func TestVote_ValidationRedirects(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"missing voter", "markthalle=on", intake.ReasonMissingVoter},
		{"invalid encoding", "username=%ff", intake.ReasonInvalidEncoding},
		{"unknown field", "username=alice&kebab=on", intake.ReasonMalformedForm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/vote", tt.body)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/error?reason="+tt.reason, rec.Header().Get("Location"))

			all, err := f.store.AllRecords(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestVote_DuplicateStillRedirectsToResults(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		rec := f.do(http.MethodPost, "/vote", "username=alice&markthalle=on")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/results", rec.Header().Get("Location"))
	}
}

func TestVote_ConcurrentDuplicateSubmissions(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = f.do(http.MethodPost, "/vote", "username=dave&markthalle=on").Code
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []int{http.StatusSeeOther, http.StatusSeeOther}, codes)
	records, err := f.store.RecordsForDate(context.Background(), today)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestVote_StorageFailureIsVisible(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Close())

	rec := f.do(http.MethodPost, "/vote", "username=alice&markthalle=on")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), "storage unavailable")
	assert.Contains(t, f.logs.String(), "storage failure")
}

func TestVote_BodyTooLarge(t *testing.T) {
	f := newFixture(t)

	body := "username=" + strings.Repeat("a", MaxBodyBytes+1)
	rec := f.do(http.MethodPost, "/vote", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestResults_HTML(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodPost, "/vote", "username=alice&burgerlich=on")
	f.do(http.MethodPost, "/vote", "username=bob&burgerlich=on")
	f.do(http.MethodPost, "/vote", "username=carol&markthalle=on")

	rec := f.do(http.MethodGet, "/results", "")
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, "Results for 2024-10-01")
	assert.Contains(t, html, "Burgerlich: 2")
	assert.Contains(t, html, "Markthalle: 1")
	assert.Less(t, strings.Index(html, "Burgerlich: 2"), strings.Index(html, "Markthalle: 1"))
	assert.Contains(t, html, "3 votes")
}

func TestResults_Empty(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/results", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No votes yet today.")
}

func TestResults_JSON(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodPost, "/vote", "username=alice&markthalle=on&burgerlich=on")
	f.do(http.MethodPost, "/vote", "username=bob&burgerlich=on")

	rec := f.do(http.MethodGet, "/results.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res present.Results
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, today, res.Date)
	assert.Equal(t, []tally.Row{
		{Key: "burgerlich", Name: "Burgerlich", Count: 2},
		{Key: "markthalle", Name: "Markthalle", Count: 1},
	}, res.Rows)
	assert.Equal(t, 3, res.Total)
}

func TestResults_StorageFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Close())

	assert.Equal(t, http.StatusInternalServerError, f.do(http.MethodGet, "/results", "").Code)
	assert.Equal(t, http.StatusInternalServerError, f.do(http.MethodGet, "/results.json", "").Code)
}

func TestErrorPage(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/error?reason="+intake.ReasonMissingVoter, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-reason="missing-voter"`)
	assert.Contains(t, rec.Body.String(), "Please enter your name")

	rec = f.do(http.MethodGet, "/error?reason=%3Cscript%3E", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestDebugVotes_OnlyWhenEnabled(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/debug/votes", "").Code)

	f = newFixture(t, WithDebug(true))
	f.do(http.MethodPost, "/vote", "username=alice&markthalle=on")

	rec := f.do(http.MethodGet, "/debug/votes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var records []vote.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Equal(t, []vote.Record{{Venue: "markthalle", Date: today, Voter: "alice"}}, records)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodGet, "/health", "")

	assert.Contains(t, f.logs.String(), "request completed")
	assert.Contains(t, f.logs.String(), "path=/health")
	assert.Contains(t, f.logs.String(), "status=200")
}

func TestVote_MethodNotAllowed(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusMethodNotAllowed, f.do(http.MethodGet, "/vote", "").Code)
}
