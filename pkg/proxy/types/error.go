package types

import "net/http"

// ErrorResponse is the body returned for every failure path.
// All errors share the same single-field JSON shape: {"error": "<message>"}.
// The HTTP status code carries the failure category and is not serialized.
type ErrorResponse struct {
	// Message is the short, client-safe error message.
	Message string `json:"error"`

	// statusCode is the HTTP status for this error.
	statusCode int
}

// Client-facing error messages. These are the only failure details ever
// returned to a caller; full error context stays in the server logs.
const (
	MsgInvalidMessage  = "invalid message"
	MsgMessageTooLong  = "message too long"
	MsgGatewayTimeout  = "timeout, please retry"
	MsgUpstreamLimited = "too many requests, try later"
	MsgAuthError       = "API authentication error"
	MsgServerError     = "server error, please retry"
	MsgNotFound        = "endpoint does not exist"
	MsgInternalError   = "internal server error"
	MsgClientThrottled = "too many requests from this address, please retry later"
)

// NewErrorResponse creates an error response with an explicit status code.
func NewErrorResponse(message string, statusCode int) *ErrorResponse {
	return &ErrorResponse{Message: message, statusCode: statusCode}
}

// NewInvalidInputError creates a 400 response for request validation failures.
func NewInvalidInputError(message string) *ErrorResponse {
	return NewErrorResponse(message, http.StatusBadRequest)
}

// NewNotFoundError creates the 404 response for unmatched routes.
func NewNotFoundError() *ErrorResponse {
	return NewErrorResponse(MsgNotFound, http.StatusNotFound)
}

// NewThrottledError creates a 429 response. Used both when the upstream
// rate limits the proxy and when the proxy rate limits a client.
func NewThrottledError(message string) *ErrorResponse {
	return NewErrorResponse(message, http.StatusTooManyRequests)
}

// NewServerError creates the generic 500 response for upstream and
// internal failures.
func NewServerError(message string) *ErrorResponse {
	return NewErrorResponse(message, http.StatusInternalServerError)
}

// NewGatewayTimeoutError creates the 504 response for upstream timeouts.
func NewGatewayTimeoutError() *ErrorResponse {
	return NewErrorResponse(MsgGatewayTimeout, http.StatusGatewayTimeout)
}

// StatusCode returns the HTTP status for this error.
// Defaults to 500 if the response was constructed without one.
func (e *ErrorResponse) StatusCode() int {
	if e.statusCode == 0 {
		return http.StatusInternalServerError
	}
	return e.statusCode
}
