package testutil

import (
	"sync"
	"time"
)

// SteppedClock is a wall clock for tests. Every reading returns the start
// time plus one more step, so stored timestamps are distinct and repeat
// exactly across runs.
//
// Safe for concurrent use.
type SteppedClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	n     int
}

// NewSteppedClock creates a clock whose first reading is start.
func NewSteppedClock(start time.Time, step time.Duration) *SteppedClock {
	return &SteppedClock{start: start, step: step}
}

// Now returns the next reading.
func (c *SteppedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.n) * c.step)
	c.n++
	return t
}

// Readings returns how many times Now was called.
func (c *SteppedClock) Readings() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Reset rewinds the clock. The next reading is start again.
func (c *SteppedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}
