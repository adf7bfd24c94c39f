package config

import "time"

// Default values applied to unset configuration fields.
const (
	DefaultListenAddress   = ":3000"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20
	DefaultStaticDir       = "./public"

	DefaultUpstreamBaseURL = "https://www.chatbase.co"
	DefaultUpstreamTimeout = 30 * time.Second
	DefaultMaxBodySize     = 10 << 20

	DefaultRateLimitWindow   = 15 * time.Minute
	DefaultRateLimitRequests = 100
	DefaultPruneSchedule     = "@every 30m"

	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultMetricsPath = "/metrics"
)

// NewDefault returns a Config populated entirely with defaults.
// Credentials are left empty and must come from the file or environment.
func NewDefault() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields with default values.
// Booleans that default to true (rate limiting, CORS, metrics) are seeded
// in Load before the file is parsed, not here.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = DefaultStaticDir
	}

	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if cfg.Upstream.MaxBodySize == 0 {
		cfg.Upstream.MaxBodySize = DefaultMaxBodySize
	}

	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = DefaultRateLimitWindow
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = DefaultRateLimitRequests
	}
	if cfg.RateLimit.PruneSchedule == "" {
		cfg.RateLimit.PruneSchedule = DefaultPruneSchedule
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.CORS.MaxAge == 0 {
		cfg.CORS.MaxAge = 3600
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
