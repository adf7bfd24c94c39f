// Package metrics exposes Prometheus metrics for the chat proxy: inbound
// request counts and latencies, upstream call outcomes, and rate-limit
// rejections. Metrics live on a private registry so tests and embedders
// never collide with the global one.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// namespace prefixes every metric name.
const namespace = "chatrelay"

// Collector owns the registry and the proxy's metric families.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
	rateLimitedTotal prometheus.Counter
}

// NewCollector creates a collector with its own registry, including the
// standard Go runtime and process collectors.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"method", "path", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),

		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream chat API calls by outcome",
			},
			[]string{"outcome"},
		),

		upstreamDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_duration_seconds",
				Help:      "Duration of upstream chat API calls in seconds",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),

		rateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.upstreamTotal,
		c.upstreamDuration,
		c.rateLimitedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveRequest records a completed inbound request.
func (c *Collector) ObserveRequest(method, path string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	c.requestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// ObserveUpstream records an upstream call outcome.
// Outcome is one of "success", "timeout", "throttled", "error".
func (c *Collector) ObserveUpstream(outcome string, duration time.Duration) {
	c.upstreamTotal.WithLabelValues(outcome).Inc()
	c.upstreamDuration.Observe(duration.Seconds())
}

// ObserveRateLimited records a request rejected by the rate limiter.
func (c *Collector) ObserveRateLimited() {
	c.rateLimitedTotal.Inc()
}

// Handler returns the HTTP handler for the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Registry exposes the underlying registry for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// statusLabel renders a status code as its label value ("200", "404"...).
func statusLabel(status int) string {
	return strconv.Itoa(status)
}
