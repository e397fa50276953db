// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import "time"

// Clock measures the time between frames.
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock returns a clock reading from now. A nil now uses time.Now.
// The first Tick measures from the moment NewClock was called.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, last: now()}
}

// Tick returns the time elapsed since the previous Tick and resets the
// reference point. Backward jumps of the time source yield zero.
func (c *Clock) Tick() time.Duration {
	t := c.now()
	dt := t.Sub(c.last)
	c.last = t
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset moves the reference point to the current time without reporting
// the elapsed interval.
func (c *Clock) Reset() { c.last = c.now() }
