package ratelimit

import (
	"sync"
	"time"
)

// bucket is the per-key window state.
type bucket struct {
	count       int
	windowStart time.Time
}

// FixedWindow is a fixed-window limiter over an in-memory bucket map.
type FixedWindow struct {
	cfg Config

	mu      sync.Mutex
	buckets map[string]*bucket

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewFixedWindow creates a fixed-window limiter.
func NewFixedWindow(cfg Config) *FixedWindow {
	return &FixedWindow{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow checks and counts one request for key.
//
// The check and the increment happen under one lock, so concurrent bursts
// from the same key cannot slip past the limit.
func (fw *FixedWindow) Allow(key string) Decision {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()

	b, ok := fw.buckets[key]
	if !ok || now.Sub(b.windowStart) >= fw.cfg.Window {
		// New key, or the previous window fully elapsed.
		b = &bucket{windowStart: now}
		fw.buckets[key] = b
	}

	reset := b.windowStart.Add(fw.cfg.Window)

	if b.count >= fw.cfg.MaxRequests {
		return Decision{
			Allowed:    false,
			Limit:      fw.cfg.MaxRequests,
			Remaining:  0,
			Reset:      reset,
			RetryAfter: reset.Sub(now),
		}
	}

	b.count++
	return Decision{
		Allowed:   true,
		Limit:     fw.cfg.MaxRequests,
		Remaining: fw.cfg.MaxRequests - b.count,
		Reset:     reset,
	}
}

// Prune removes buckets whose window has fully elapsed and returns how
// many were removed. Live buckets are never touched.
func (fw *FixedWindow) Prune() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()
	removed := 0
	for key, b := range fw.buckets {
		if now.Sub(b.windowStart) >= fw.cfg.Window {
			delete(fw.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (fw *FixedWindow) Len() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return len(fw.buckets)
}

// Reset drops all buckets. This is primarily for testing.
func (fw *FixedWindow) Reset() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.buckets = make(map[string]*bucket)
}
