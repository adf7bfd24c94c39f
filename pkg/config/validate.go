package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for errors. Missing upstream
// credentials fail here, at startup, rather than per-request.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.ListenAddress == "" {
		errs = append(errs, "server.listen_address must not be empty")
	}
	if cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, "server.shutdown_timeout must not be negative")
	}

	if cfg.Upstream.BaseURL == "" {
		errs = append(errs, "upstream.base_url must not be empty")
	} else if u, err := url.Parse(cfg.Upstream.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("upstream.base_url %q is not a valid URL", cfg.Upstream.BaseURL))
	}
	if cfg.Upstream.BotID == "" {
		errs = append(errs, "upstream.bot_id is required (set CHATBASE_BOT_ID)")
	}
	if cfg.Upstream.APIKey == "" {
		errs = append(errs, "upstream.api_key is required (set CHATBASE_API_KEY)")
	}
	if cfg.Upstream.Timeout <= 0 {
		errs = append(errs, "upstream.timeout must be positive")
	}
	if cfg.Upstream.Temperature < 0 || cfg.Upstream.Temperature > 2 {
		errs = append(errs, "upstream.temperature must be between 0 and 2")
	}
	if cfg.Upstream.MaxBodySize <= 0 {
		errs = append(errs, "upstream.max_body_size must be positive")
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Window <= 0 {
			errs = append(errs, "rate_limit.window must be positive")
		}
		if cfg.RateLimit.MaxRequests <= 0 {
			errs = append(errs, "rate_limit.max_requests must be positive")
		}
		if cfg.RateLimit.PruneSchedule != "" {
			if _, err := cron.ParseStandard(cfg.RateLimit.PruneSchedule); err != nil {
				errs = append(errs, fmt.Sprintf("rate_limit.prune_schedule %q is not a valid cron expression", cfg.RateLimit.PruneSchedule))
			}
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("telemetry.logging.level %q is not one of debug, info, warn, error", cfg.Telemetry.Logging.Level))
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("telemetry.logging.format %q is not one of json, text", cfg.Telemetry.Logging.Format))
	}
	if cfg.Telemetry.Metrics.Enabled && !strings.HasPrefix(cfg.Telemetry.Metrics.Path, "/") {
		errs = append(errs, "telemetry.metrics.path must start with /")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
