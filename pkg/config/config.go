package config

import "time"

// Config is the root configuration for chatrelay. It is constructed once
// at startup and treated as immutable afterwards; components receive the
// sections they need explicitly.
type Config struct {
	// Server contains HTTP server configuration: listen address, timeouts,
	// and static asset serving.
	Server ServerConfig `yaml:"server"`

	// Upstream contains configuration for the Chatbase chat API the proxy
	// forwards messages to.
	Upstream UpstreamConfig `yaml:"upstream"`

	// RateLimit contains fixed-window rate limiting configuration for the
	// chat route.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" or ":port". Default: ":3000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response
	// writes. Must exceed the upstream timeout or chat responses get cut
	// off mid-flight. Default: 60s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout. Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown; in-flight requests are
	// drained for at most this long. Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size. Default: 1MB
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// StaticDir is the directory served for unmatched GET paths.
	// Empty disables static serving. Default: "./public"
	StaticDir string `yaml:"static_dir"`

	// TrustProxyHeaders controls whether X-Forwarded-For is honored when
	// deriving the client key for rate limiting. Leave false unless the
	// service sits behind a trusted reverse proxy.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`
}

// UpstreamConfig contains configuration for the Chatbase API.
type UpstreamConfig struct {
	// BaseURL is the upstream API base URL.
	// Default: "https://www.chatbase.co"
	BaseURL string `yaml:"base_url"`

	// BotID identifies the chatbot to converse with.
	// Required; typically set via CHATBASE_BOT_ID.
	BotID string `yaml:"bot_id"`

	// APIKey is the bearer credential for the upstream API.
	// Required; typically set via CHATBASE_API_KEY.
	APIKey string `yaml:"api_key"`

	// Timeout bounds a single upstream call. Exactly one attempt is made
	// per client request; there are no retries. Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// Temperature is the fixed sampling temperature sent upstream.
	// Default: 0
	Temperature float64 `yaml:"temperature"`

	// MaxBodySize caps inbound request bodies at the parsing layer,
	// independent of the message-level length check. Default: 10MB
	MaxBodySize int64 `yaml:"max_body_size"`
}

// RateLimitConfig contains fixed-window rate limiting configuration.
// The window is keyed by client network address and applies only to the
// chat route.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is applied. Default: true
	Enabled bool `yaml:"enabled"`

	// Window is the fixed window duration. The counter resets only when
	// the full window elapses. Default: 15m
	Window time.Duration `yaml:"window"`

	// MaxRequests is the number of requests allowed per key per window.
	// Default: 100
	MaxRequests int `yaml:"max_requests"`

	// PruneSchedule is a cron expression for sweeping expired buckets out
	// of the in-memory counter map. Empty disables pruning.
	// Default: "@every 30m"
	PruneSchedule string `yaml:"prune_schedule"`
}

// CORSConfig contains CORS configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted. Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins lists allowed origins. ["*"] allows all origins,
	// which is the default; narrow this for non-public deployments.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods lists allowed HTTP methods for CORS requests.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders lists allowed request headers.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the preflight cache lifetime in seconds. Default: 3600
	MaxAge int `yaml:"max_age"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json" or "text". Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path. Default: "/metrics"
	Path string `yaml:"path"`
}
