package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Pruner sweeps expired buckets out of a FixedWindow on a cron schedule,
// keeping the in-memory key map from growing without bound.
type Pruner struct {
	limiter  *FixedWindow
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewPruner creates a pruner for the given limiter.
// An empty schedule disables pruning; Start becomes a no-op.
func NewPruner(limiter *FixedWindow, schedule string) *Pruner {
	return &Pruner{
		limiter:  limiter,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "ratelimit.pruner"),
	}
}

// Start begins scheduled pruning. The schedule uses standard cron syntax
// or descriptors like "@every 30m". The pruner stops itself when ctx is
// cancelled.
func (p *Pruner) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schedule == "" {
		p.logger.Info("prune schedule not configured, skipping pruner")
		return nil
	}

	if _, err := cron.ParseStandard(p.schedule); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", p.schedule, err)
	}

	if _, err := p.cron.AddFunc(p.schedule, p.runPrune); err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	p.cron.Start()
	p.running = true

	p.logger.Info("rate limit pruner started", "schedule", p.schedule)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// runPrune executes one sweep.
func (p *Pruner) runPrune() {
	removed := p.limiter.Prune()
	if removed > 0 {
		p.logger.Info("pruned expired rate limit buckets",
			"removed", removed,
			"remaining_keys", p.limiter.Len(),
		)
	} else {
		p.logger.Debug("rate limit prune completed, nothing expired")
	}
}

// Stop stops the pruner and waits for a running sweep to finish.
func (p *Pruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		ctx := p.cron.Stop()
		<-ctx.Done()
		p.running = false
		p.logger.Info("rate limit pruner stopped")
	}
}

// IsRunning returns true if the pruner is running.
func (p *Pruner) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
