package core

import (
	"sync"
	"time"
)

// Clock is a monotonic millisecond time source.
type Clock interface {
	NowMillis() int64
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock whose zero is the moment of creation.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMillis returns milliseconds elapsed since the clock was created.
func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock is a controllable clock for tests and headless simulation.
type ManualClock struct {
	mu  sync.RWMutex
	now int64
}

// NewManualClock creates a manual clock starting at the given millisecond.
func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

// NowMillis returns the current manual time.
func (c *ManualClock) NowMillis() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to ms.
func (c *ManualClock) Set(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = ms
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d.Milliseconds()
}
