package types

// ChatResponse is the success body for the chat endpoint.
type ChatResponse struct {
	// Response is the upstream reply text (or the fallback apology).
	Response string `json:"response"`

	// Timestamp is the server-side time the response was constructed,
	// formatted as RFC 3339.
	Timestamp string `json:"timestamp"`
}

// HealthResponse is the body for the liveness endpoint.
type HealthResponse struct {
	// Status is always "OK".
	Status string `json:"status"`

	// Timestamp is the current server time, formatted as RFC 3339.
	Timestamp string `json:"timestamp"`

	// UptimeSeconds is the number of seconds since process start.
	// It is monotonically non-decreasing within a process lifetime.
	UptimeSeconds float64 `json:"uptime"`
}

// FallbackReply is returned to the client when the upstream responds
// successfully but with no reply text.
const FallbackReply = "Sorry, I couldn't process that. Please try again."
