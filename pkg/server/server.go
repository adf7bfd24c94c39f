// Package server composes the chat proxy's routes, middleware chain, and
// HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"relay-hq/chatrelay/pkg/config"
	"relay-hq/chatrelay/pkg/proxy/handlers"
	"relay-hq/chatrelay/pkg/proxy/middleware"
	"relay-hq/chatrelay/pkg/ratelimit"
	"relay-hq/chatrelay/pkg/telemetry/metrics"
)

// Route paths.
const (
	ChatPath   = "/api/chat"
	HealthPath = "/api/health"
)

// Server is the chat proxy HTTP server.
type Server struct {
	cfg      *config.Config
	upstream handlers.Upstream
	limiter  ratelimit.Limiter
	metrics  *metrics.Collector

	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a server.
// limiter may be nil when rate limiting is disabled, metrics may be nil
// when the metrics endpoint is disabled.
func New(cfg *config.Config, up handlers.Upstream, limiter ratelimit.Limiter, collector *metrics.Collector) *Server {
	return &Server{
		cfg:      cfg,
		upstream: up,
		limiter:  limiter,
		metrics:  collector,
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled, a
// shutdown signal arrives, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:           s.cfg.Server.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		IdleTimeout:    s.cfg.Server.IdleTimeout,
		MaxHeaderBytes: s.cfg.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting chat proxy server",
			"address", s.cfg.Server.ListenAddress,
			"rate_limit_enabled", s.cfg.RateLimit.Enabled,
			"metrics_enabled", s.cfg.Telemetry.Metrics.Enabled,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown drains in-flight requests and stops the server, bounded by the
// configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.cfg.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("chat proxy server stopped")
	})

	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler builds the route table and middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	var upstreamObserver handlers.UpstreamObserver
	if s.metrics != nil {
		upstreamObserver = s.metrics
	}

	chatHandler := handlers.NewChatHandler(
		s.upstream,
		s.cfg.Upstream.Timeout,
		s.cfg.Upstream.MaxBodySize,
		upstreamObserver,
	)

	// The rate limiter wraps only the chat route; health, metrics, and
	// static traffic is never throttled.
	var chat http.Handler = chatHandler
	if s.cfg.RateLimit.Enabled && s.limiter != nil {
		var limitObserver middleware.RateLimitObserver
		if s.metrics != nil {
			limitObserver = s.metrics
		}
		chat = middleware.RateLimitMiddleware(s.limiter, s.cfg.Server.TrustProxyHeaders, limitObserver)(chat)
	}

	mux.Handle(ChatPath, chat)
	mux.Handle(HealthPath, handlers.NewHealthHandler())
	if s.metrics != nil && s.cfg.Telemetry.Metrics.Enabled {
		mux.Handle(s.cfg.Telemetry.Metrics.Path, s.metrics.Handler())
	}
	mux.Handle("/", handlers.NewCatchAllHandler(s.cfg.Server.StaticDir))

	var handler http.Handler = mux
	handler = middleware.CORSMiddleware(s.cfg.CORS)(handler)
	handler = middleware.SecurityHeadersMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	if s.metrics != nil {
		handler = middleware.MetricsMiddleware(s.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}
