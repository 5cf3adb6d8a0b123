package testutil

import (
	"sync"
	"time"
)

// Clock is a manually controlled time source. Injecting one in place of
// time.Now makes age-derived catalog fields (reviews, newness bonuses,
// badges) deterministic.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock pinned to the given time, or to
// 2025-06-01 00:00:00 UTC when none is given.
func NewClock(now ...time.Time) *Clock {
	t := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if len(now) > 0 {
		t = now[0]
	}
	return &Clock{now: t}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set overrides the clock's current time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
