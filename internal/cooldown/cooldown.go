// Package cooldown implements the single global gate spacing AI calls.
package cooldown

import (
	"sync"
	"time"
)

// Gate tracks the time of the last successful call. A zero Gate permits the
// first call immediately. The gate re-arms only on success, so a failed call
// may be retried at once.
type Gate struct {
	minDelay time.Duration

	mu   sync.Mutex
	last time.Time
}

// New returns a gate enforcing minDelay between successful calls.
func New(minDelay time.Duration) *Gate {
	return &Gate{minDelay: minDelay}
}

// Check returns the remaining wait at now, or zero when a call is permitted.
func (g *Gate) Check(now time.Time) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.last.IsZero() {
		return 0
	}
	if elapsed := now.Sub(g.last); elapsed < g.minDelay {
		return g.minDelay - elapsed
	}
	return 0
}

// MarkSuccess records a successful call completed at now.
func (g *Gate) MarkSuccess(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if now.After(g.last) {
		g.last = now
	}
}

// MinDelay returns the configured spacing.
func (g *Gate) MinDelay() time.Duration {
	return g.minDelay
}
