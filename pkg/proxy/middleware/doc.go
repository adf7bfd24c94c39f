// Package middleware provides the HTTP middleware pipeline for the chat
// proxy.
//
// The server composes the chain outermost-first as:
//
//	Recovery -> Logging -> Metrics -> RequestID -> SecurityHeaders -> CORS -> mux
//
// with RateLimitMiddleware wrapping only the chat route, so static and
// health traffic is never throttled. Each middleware is a plain
// func(http.Handler) http.Handler and carries no state beyond what it is
// constructed with.
package middleware
