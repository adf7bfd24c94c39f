package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"relay-hq/chatrelay/pkg/proxy"
	"relay-hq/chatrelay/pkg/proxy/types"
)

// CatchAllHandler serves static assets for unmatched GET paths and
// answers everything else with the JSON 404 shape.
type CatchAllHandler struct {
	staticDir string
}

// NewCatchAllHandler creates a catch-all handler.
// staticDir may be empty to disable static serving entirely.
func NewCatchAllHandler(staticDir string) *CatchAllHandler {
	return &CatchAllHandler{staticDir: staticDir}
}

// ServeHTTP implements http.Handler.
func (h *CatchAllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.staticDir != "" && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		if path, ok := h.resolve(r.URL.Path); ok {
			http.ServeFile(w, r, path)
			return
		}
	}

	if err := proxy.WriteErrorResponse(w, types.NewNotFoundError()); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", "error", err)
	}
}

// resolve maps a URL path to an existing regular file under the static
// directory. Paths escaping the directory resolve to nothing.
func (h *CatchAllHandler) resolve(urlPath string) (string, bool) {
	cleaned := filepath.Clean("/" + urlPath)
	if cleaned == "/" {
		cleaned = "/index.html"
	}

	path := filepath.Join(h.staticDir, cleaned)

	// Clean above anchors at "/", so path cannot escape staticDir; the
	// prefix check guards against a staticDir that is itself relative.
	if !strings.HasPrefix(path, filepath.Clean(h.staticDir)+string(os.PathSeparator)) {
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
