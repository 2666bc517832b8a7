package session

// Clock numbers the actions of one session.
//
// Trace entries are stamped with strictly increasing seq numbers, never
// wall-clock time, so replaying the same actions yields the same trace.
// A Clock belongs to a single session and is not safe for concurrent use.
type Clock struct {
	seq int64
}

// NewClock returns a clock whose first Next is 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next advances the clock and returns the new value.
func (c *Clock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the last value handed out, 0 before the first Next.
func (c *Clock) Current() int64 {
	return c.seq
}
