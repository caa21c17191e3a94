package service

import "time"

// FixedClock is a deterministic service.Clock for tests.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c *FixedClock) Now() time.Time {
	return c.Instant
}

// Advance moves the clock forward and returns the new instant.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.Instant = c.Instant.Add(d)

	return c.Instant
}
