package proxy

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"relay-hq/chatrelay/pkg/proxy/types"
)

// ParseChatRequest parses and validates an HTTP request body into a
// ChatRequest.
//
// The body is capped at maxBodySize before JSON decoding; the 1000
// character message check is separate and applies to the decoded field.
// Any decode failure (malformed JSON, non-string message, missing field)
// comes back as a *types.ValidationError carrying the client-safe message.
func ParseChatRequest(r *http.Request, maxBodySize int64) (*types.ChatRequest, error) {
	limited := io.LimitReader(r.Body, maxBodySize+1)

	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, &types.ValidationError{Field: "body", Message: types.MsgInvalidMessage}
	}
	if int64(len(body)) > maxBodySize {
		return nil, &types.ValidationError{Field: "body", Message: types.MsgInvalidMessage}
	}

	var req types.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		// Covers both malformed JSON and a non-string message field.
		return nil, &types.ValidationError{Field: "message", Message: types.MsgInvalidMessage}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}

// ClientKey derives the rate-limit key for a request: the client network
// address without the port.
//
// When trustProxy is set, the first hop in X-Forwarded-For wins. It is off
// by default so an untrusted client cannot rotate its own bucket by
// forging the header.
func ClientKey(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first := fwd
			if i := strings.IndexByte(fwd, ','); i >= 0 {
				first = fwd[:i]
			}
			if addr := strings.TrimSpace(first); addr != "" {
				return addr
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
