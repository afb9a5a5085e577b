package tickfsm

import (
	"sync/atomic"
	"time"
)

// Clock is the engine's only view of time: a monotonically increasing offset
// from an arbitrary origin. Only differences between readings are used.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the process monotonic clock relative to its creation.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock creates a clock whose origin is the moment of the call.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock only moves when told to. It is meant for tests and simulations.
type ManualClock struct {
	now atomic.Int64
}

// NewManualClock creates a clock reading zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Duration {
	return time.Duration(c.now.Load())
}

// Advance moves the clock forward by d and returns the new reading.
// Negative values are ignored to keep the clock monotonic.
func (c *ManualClock) Advance(d time.Duration) time.Duration {
	if d < 0 {
		d = 0
	}

	return time.Duration(c.now.Add(int64(d)))
}

// Set moves the clock to t. Attempts to move it backwards are ignored.
func (c *ManualClock) Set(t time.Duration) {
	for {
		cur := c.now.Load()
		if int64(t) <= cur || c.now.CompareAndSwap(cur, int64(t)) {
			return
		}
	}
}
