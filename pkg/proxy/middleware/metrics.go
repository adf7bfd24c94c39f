package middleware

import (
	"net/http"
	"time"
)

// RequestObserver receives the terminal status and latency of each
// inbound request.
type RequestObserver interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
}

// MetricsMiddleware records inbound request metrics. It wraps the whole
// route table so unmatched routes are counted too.
func MetricsMiddleware(observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			observer.ObserveRequest(r.Method, r.URL.Path, rw.statusCode, time.Since(startTime))
		})
	}
}
