package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load builds the process configuration.
//
// The loading sequence is:
//
//  1. Seed defaults (including default-true toggles)
//  2. Parse the YAML file at path, if it exists
//  3. Apply environment variable overrides
//  4. Validate the final configuration
//
// A missing file is not an error: the service can run entirely from
// environment variables. Environment always wins over the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// Toggles that default to on. yaml leaves absent fields untouched, so
	// seeding before parsing gives "default true, file can disable".
	cfg.RateLimit.Enabled = true
	cfg.CORS.Enabled = true
	cfg.Telemetry.Metrics.Enabled = true

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
			}
		case os.IsNotExist(err):
			// Environment-only configuration.
		default:
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
//
// The legacy names PORT, CHATBASE_BOT_ID, and CHATBASE_API_KEY are honored
// first; CHATRELAY_-prefixed variables cover the rest and take precedence.
func applyEnvOverrides(cfg *Config) {
	// Legacy names.
	if val := os.Getenv("PORT"); val != "" {
		cfg.Server.ListenAddress = ":" + val
	}
	if val := os.Getenv("CHATBASE_BOT_ID"); val != "" {
		cfg.Upstream.BotID = val
	}
	if val := os.Getenv("CHATBASE_API_KEY"); val != "" {
		cfg.Upstream.APIKey = val
	}

	// Server overrides.
	if val := os.Getenv("CHATRELAY_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("CHATRELAY_SERVER_STATIC_DIR"); val != "" {
		cfg.Server.StaticDir = val
	}
	if val := os.Getenv("CHATRELAY_SERVER_TRUST_PROXY_HEADERS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.TrustProxyHeaders = b
		}
	}
	if val := os.Getenv("CHATRELAY_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	// Upstream overrides.
	if val := os.Getenv("CHATRELAY_UPSTREAM_BASE_URL"); val != "" {
		cfg.Upstream.BaseURL = val
	}
	if val := os.Getenv("CHATRELAY_UPSTREAM_BOT_ID"); val != "" {
		cfg.Upstream.BotID = val
	}
	if val := os.Getenv("CHATRELAY_UPSTREAM_API_KEY"); val != "" {
		cfg.Upstream.APIKey = val
	}
	if val := os.Getenv("CHATRELAY_UPSTREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.Timeout = d
		}
	}

	// Rate limit overrides.
	if val := os.Getenv("CHATRELAY_RATE_LIMIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.RateLimit.Enabled = b
		}
	}
	if val := os.Getenv("CHATRELAY_RATE_LIMIT_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RateLimit.Window = d
		}
	}
	if val := os.Getenv("CHATRELAY_RATE_LIMIT_MAX_REQUESTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.RateLimit.MaxRequests = i
		}
	}

	// Telemetry overrides.
	if val := os.Getenv("CHATRELAY_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CHATRELAY_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("CHATRELAY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
