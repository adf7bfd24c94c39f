package handlers

import (
	"context"
	"time"

	"relay-hq/chatrelay/pkg/upstream"
)

// Upstream is the chat API the proxy forwards messages to.
// *upstream.Client satisfies it; tests substitute a stub.
type Upstream interface {
	Send(ctx context.Context, message string) (*upstream.Reply, error)
}

// UpstreamObserver receives the outcome of each upstream call.
// It lets the metrics layer observe calls without the handler depending
// on it.
type UpstreamObserver interface {
	ObserveUpstream(outcome string, duration time.Duration)
}
