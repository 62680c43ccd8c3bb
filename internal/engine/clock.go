package engine

import "sync/atomic"

// Clock is the monotonic pass counter. Each Recalculate call stamps its
// Report with the next value, so passes are ordered by seq rather than by
// wall-clock time.
//
// Clock is safe for concurrent use, though an Engine normally has a single
// caller.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0. The first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock that resumes after start. Used when the last
// recorded pass seq is loaded from the store.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued value without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
