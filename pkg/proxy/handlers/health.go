package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"relay-hq/chatrelay/pkg/proxy"
	"relay-hq/chatrelay/pkg/proxy/types"
)

// HealthHandler handles liveness checks. It always answers 200 with the
// current time and seconds since process start; there is no failure path.
type HealthHandler struct {
	startTime time.Time
}

// NewHealthHandler creates a health handler anchored at the current time.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startTime: time.Now()}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		if err := proxy.WriteErrorResponse(w, types.NewNotFoundError()); err != nil {
			slog.ErrorContext(r.Context(), "failed to write error response", "error", err)
		}
		return
	}

	resp := &types.HealthResponse{
		Status:        "OK",
		Timestamp:     time.Now().Format(time.RFC3339),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if err := proxy.WriteJSONResponse(w, http.StatusOK, resp); err != nil {
		slog.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}
