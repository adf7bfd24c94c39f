package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"relay-hq/chatrelay/pkg/proxy"
	"relay-hq/chatrelay/pkg/proxy/types"
	"relay-hq/chatrelay/pkg/ratelimit"
)

// RateLimitObserver is notified when a request is rejected by the limiter.
// It lets the metrics layer count rejections without the middleware
// depending on it.
type RateLimitObserver interface {
	ObserveRateLimited()
}

// RateLimitMiddleware enforces the per-client fixed window. It wraps only
// the chat route; a denied request is answered immediately with 429 and
// the wrapped handler is never invoked.
//
// The client key is the request's network address (X-Forwarded-For first
// hop when trustProxy is set). X-RateLimit-* and Retry-After headers are
// set on rejections.
func RateLimitMiddleware(limiter ratelimit.Limiter, trustProxy bool, observer RateLimitObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := proxy.ClientKey(r, trustProxy)
			decision := limiter.Allow(key)

			if !decision.Allowed {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))
				if decision.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
				}

				slog.WarnContext(r.Context(), "rate limit exceeded",
					"client_key", key,
					"request_id", GetRequestID(r.Context()),
					"retry_after", decision.RetryAfter.String(),
				)

				if observer != nil {
					observer.ObserveRateLimited()
				}

				errResp := types.NewThrottledError(types.MsgClientThrottled)
				if err := proxy.WriteErrorResponse(w, errResp); err != nil {
					slog.ErrorContext(r.Context(), "failed to write error response", "error", err)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
