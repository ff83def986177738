package testutil

import (
	"sync"

	"github.com/roach88/lunchvote/internal/vote"
)

// FixedClock is a settable vote.Clock for tests.
//
// Unlike vote.SystemClock, FixedClock only changes when the test says so,
// which makes the day boundary explicit.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	day vote.Date
}

// NewFixedClock creates a clock stuck on day.
func NewFixedClock(day vote.Date) *FixedClock {
	return &FixedClock{day: day}
}

// Today returns the current fixed day.
func (c *FixedClock) Today() vote.Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.day
}

// Set moves the clock to day.
func (c *FixedClock) Set(day vote.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.day = day
}

// Advance moves the clock forward n days and returns the new day.
func (c *FixedClock) Advance(n int) vote.Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.day = c.day.AddDays(n)
	return c.day
}
