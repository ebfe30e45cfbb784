package state

import "time"

// Clock measures play time, excluding pauses and shop visits.
// The zero value is stopped at zero.
type Clock struct {
	start   time.Time
	elapsed time.Duration
	running bool
}

// Start begins a fresh measurement at now.
func (c *Clock) Start(now time.Time) {
	c.start = now
	c.elapsed = 0
	c.running = true
}

// Resume continues from the frozen elapsed time.
func (c *Clock) Resume(now time.Time) {
	c.start = now.Add(-c.elapsed)
	c.running = true
}

// Freeze stops the clock, keeping the elapsed time.
func (c *Clock) Freeze(now time.Time) {
	if c.running {
		c.elapsed = now.Sub(c.start)
	}
	c.running = false
}

// Running reports whether the clock is advancing.
func (c *Clock) Running() bool {
	return c.running
}

// Elapsed returns the measured play time at now.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	if c.running {
		return now.Sub(c.start)
	}
	return c.elapsed
}
