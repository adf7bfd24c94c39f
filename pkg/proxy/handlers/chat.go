package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"relay-hq/chatrelay/pkg/proxy"
	"relay-hq/chatrelay/pkg/proxy/middleware"
	"relay-hq/chatrelay/pkg/proxy/types"
)

// ChatHandler handles chat requests: validate the message, forward it
// upstream once, and shape the reply or translate the failure.
type ChatHandler struct {
	upstream        Upstream
	upstreamTimeout time.Duration
	maxBodySize     int64
	observer        UpstreamObserver
}

// NewChatHandler creates a chat handler.
// observer may be nil when metrics are disabled.
func NewChatHandler(up Upstream, upstreamTimeout time.Duration, maxBodySize int64, observer UpstreamObserver) *ChatHandler {
	return &ChatHandler{
		upstream:        up,
		upstreamTimeout: upstreamTimeout,
		maxBodySize:     maxBodySize,
		observer:        observer,
	}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	// Only POST is routed; anything else on this path does not exist.
	if r.Method != http.MethodPost {
		h.writeError(ctx, w, types.NewNotFoundError())
		return
	}

	req, err := proxy.ParseChatRequest(r, h.maxBodySize)
	if err != nil {
		slog.WarnContext(ctx, "invalid chat request",
			"request_id", requestID,
			"error", err,
		)

		h.writeError(ctx, w, proxy.HandleError(err))
		return
	}

	// The client-supplied timestamp is accepted but never echoed or
	// validated; only the message is forwarded.
	message := *req.Message

	callCtx, cancel := context.WithTimeout(ctx, h.upstreamTimeout)
	defer cancel()

	startTime := time.Now()
	reply, err := h.upstream.Send(callCtx, message)
	latency := time.Since(startTime)

	if err != nil {
		slog.ErrorContext(ctx, "upstream request failed",
			"request_id", requestID,
			"error", err,
			"upstream_latency_ms", latency.Milliseconds(),
		)

		errResp := proxy.HandleError(err)
		h.observe(outcomeFor(errResp), latency)
		h.writeError(ctx, w, errResp)
		return
	}

	text := reply.Text
	if text == "" {
		text = types.FallbackReply
	}

	slog.InfoContext(ctx, "chat request completed",
		"request_id", requestID,
		"message_len", len(message),
		"reply_len", len(reply.Text),
		"upstream_latency_ms", latency.Milliseconds(),
	)
	h.observe("success", latency)

	resp := &types.ChatResponse{
		Response:  text,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if err := proxy.WriteJSONResponse(w, http.StatusOK, resp); err != nil {
		slog.ErrorContext(ctx, "failed to write response",
			"request_id", requestID,
			"error", err,
		)
	}
}

// writeError writes an error response, logging a failure to do so.
func (h *ChatHandler) writeError(ctx context.Context, w http.ResponseWriter, errResp *types.ErrorResponse) {
	if err := proxy.WriteErrorResponse(w, errResp); err != nil {
		slog.ErrorContext(ctx, "failed to write error response", "error", err)
	}
}

// observe reports an upstream call outcome when an observer is wired.
func (h *ChatHandler) observe(outcome string, duration time.Duration) {
	if h.observer != nil {
		h.observer.ObserveUpstream(outcome, duration)
	}
}

// outcomeFor labels an upstream failure for metrics by its client-facing
// status code.
func outcomeFor(errResp *types.ErrorResponse) string {
	switch errResp.StatusCode() {
	case http.StatusGatewayTimeout:
		return "timeout"
	case http.StatusTooManyRequests:
		return "throttled"
	default:
		return "error"
	}
}
