// Package logging builds the process-wide structured logger from
// configuration. All packages log through log/slog; this is the single
// place the handler, level, and format are decided.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"relay-hq/chatrelay/pkg/config"
)

// New creates a slog.Logger from logging configuration.
// writer defaults to os.Stdout when nil.
func New(cfg config.LoggingConfig, writer io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if writer == nil {
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(writer, opts)
	case "json", "":
		handler = slog.NewJSONHandler(writer, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}

	return slog.New(handler), nil
}

// SetDefault builds a logger from configuration and installs it as the
// process default.
func SetDefault(cfg config.LoggingConfig) error {
	logger, err := New(cfg, nil)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// parseLevel parses a log level string into slog.Level.
func parseLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", levelStr)
	}
}
