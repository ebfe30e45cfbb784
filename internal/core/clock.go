package core

import "time"

// Clock supplies wall time to cooldowns, spawn throttling and the play clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to.
// The zero value starts at the Unix epoch.
type ManualClock struct {
	T time.Time
}

// NewManualClock returns a clock frozen at t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{T: t}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}
