package utils

import (
	"sync"
	"time"
)

// Throttler lets at most one call through per interval; calls arriving
// inside the window are dropped.
type Throttler struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewThrottler returns a Throttler with the given interval.
func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{interval: interval, now: time.Now}
}

// Do runs fn if the interval has elapsed since the last accepted call and
// reports whether fn was run.
func (t *Throttler) Do(fn func()) bool {
	t.mu.Lock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return false
	}
	t.last = now
	t.mu.Unlock()

	fn()
	return true
}
