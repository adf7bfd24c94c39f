package ratelimit

import "time"

// Config contains fixed-window limiter configuration.
type Config struct {
	// Window is the fixed window duration.
	Window time.Duration

	// MaxRequests is the number of requests allowed per key per window.
	MaxRequests int
}

// Decision is the result of a limit check.
type Decision struct {
	// Allowed indicates whether the request is permitted.
	Allowed bool

	// Limit is the configured per-window request limit.
	Limit int

	// Remaining is how many requests remain in the current window.
	Remaining int

	// Reset is when the current window expires.
	Reset time.Time

	// RetryAfter is how long until the window resets. Zero when allowed.
	RetryAfter time.Duration
}

// Limiter decides whether a request identified by key may proceed now.
// Implementations must make the check-and-count atomic per key.
type Limiter interface {
	Allow(key string) Decision
}
