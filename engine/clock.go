package engine

import (
	"sync"
	"time"
)

// Clock supplies the per-frame time step.
type Clock interface {
	// Delta returns the seconds elapsed since the previous call. The first call returns 0.
	Delta() float32
}

// SystemClock measures frame deltas with the monotonic wall clock.
type SystemClock struct {
	last time.Time
}

var _ Clock = &SystemClock{}

// NewSystemClock creates a clock whose first Delta is 0.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Delta() float32 {
	now := time.Now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	return float32(dt.Seconds())
}

// ManualClock returns a fixed step plus any time added with Advance.
// Intended for tests and deterministic replays.
type ManualClock struct {
	mu      sync.Mutex
	step    float32
	pending float32
}

var _ Clock = &ManualClock{}

// NewManualClock creates a clock returning step seconds per Delta call.
//
// Parameters:
//   - step: the fixed delta, may be 0
//
// Returns:
//   - *ManualClock: the clock
func NewManualClock(step float32) *ManualClock {
	return &ManualClock{step: step}
}

// Advance adds seconds to the next Delta only.
func (c *ManualClock) Advance(seconds float32) {
	c.mu.Lock()
	c.pending += seconds
	c.mu.Unlock()
}

func (c *ManualClock) Delta() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	dt := c.step + c.pending
	c.pending = 0
	return dt
}
