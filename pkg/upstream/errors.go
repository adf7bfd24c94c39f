package upstream

import (
	"fmt"
	"time"
)

// TimeoutError reports that an upstream call exceeded its deadline.
type TimeoutError struct {
	// Timeout is the configured deadline for a single call.
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("upstream request timed out after %s", e.Timeout)
}

// AuthError reports that the upstream rejected the proxy's credentials
// (HTTP 401 or 403). The body is kept for server-side logging only and
// must never reach a client.
type AuthError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("upstream authentication failed (status %d): %s", e.StatusCode, e.Body)
}

// RateLimitError reports an upstream HTTP 429.
type RateLimitError struct {
	// RetryAfter is the upstream's suggested wait, if it sent one.
	RetryAfter time.Duration
	Body       string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("upstream rate limit exceeded (retry after %s)", e.RetryAfter)
	}
	return "upstream rate limit exceeded"
}

// APIError reports any other non-2xx upstream status.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Body)
}

// ParseError reports a malformed upstream response body.
type ParseError struct {
	RawResponse string
	Cause       error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("upstream response parse error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
