package proxy

import (
	"errors"

	"relay-hq/chatrelay/pkg/proxy/types"
	"relay-hq/chatrelay/pkg/upstream"
)

// HandleError converts an error from the chat pipeline into the
// client-facing error response.
//
// The mapping is evaluated in priority order:
//
//  1. validation failure            -> 400, field-specific message
//  2. upstream timeout              -> 504, "timeout, please retry"
//  3. upstream rate limit           -> 429, "too many requests, try later"
//  4. upstream auth failure         -> 500, "API authentication error"
//  5. anything else                 -> 500, "server error, please retry"
//
// Auth failures are deliberately reported as a generic server error so
// credential state never leaks to the client. Callers log the full error
// before translating it.
func HandleError(err error) *types.ErrorResponse {
	var valErr *types.ValidationError
	if errors.As(err, &valErr) {
		return types.NewInvalidInputError(valErr.Message)
	}

	var timeoutErr *upstream.TimeoutError
	if errors.As(err, &timeoutErr) {
		return types.NewGatewayTimeoutError()
	}

	var rateLimitErr *upstream.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return types.NewThrottledError(types.MsgUpstreamLimited)
	}

	var authErr *upstream.AuthError
	if errors.As(err, &authErr) {
		return types.NewServerError(types.MsgAuthError)
	}

	// Network errors, unexpected upstream statuses, malformed upstream
	// bodies, and everything unclassified.
	return types.NewServerError(types.MsgServerError)
}
