package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"relay-hq/chatrelay/pkg/proxy/types"
	"relay-hq/chatrelay/pkg/upstream"
)

// stubUpstream returns a canned reply or error and records what it saw.
type stubUpstream struct {
	reply       *upstream.Reply
	err         error
	gotMessage  string
	hadDeadline bool
	callCount   int
}

func (s *stubUpstream) Send(ctx context.Context, message string) (*upstream.Reply, error) {
	s.callCount++
	s.gotMessage = message
	_, s.hadDeadline = ctx.Deadline()
	if s.err != nil {
		return nil, s.err
	}
	return s.reply, nil
}

func newChatHandler(up Upstream) *ChatHandler {
	return NewChatHandler(up, 30*time.Second, 1<<20, nil)
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\nbody: %s", err, w.Body.String())
	}
	return body
}

func TestChatHandler_Success(t *testing.T) {
	up := &stubUpstream{reply: &upstream.Reply{Text: "Hello! How can I help?"}}
	handler := newChatHandler(up)

	w := postChat(t, handler, `{"message": "hi"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["response"] != "Hello! How can I help?" {
		t.Errorf("response = %q, want the upstream reply", body["response"])
	}
	if _, err := time.Parse(time.RFC3339, body["timestamp"]); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", body["timestamp"], err)
	}
	if up.gotMessage != "hi" {
		t.Errorf("upstream saw message %q, want %q", up.gotMessage, "hi")
	}
	if !up.hadDeadline {
		t.Error("upstream call had no deadline")
	}
}

func TestChatHandler_EmptyReplyFallback(t *testing.T) {
	up := &stubUpstream{reply: &upstream.Reply{Text: ""}}
	handler := newChatHandler(up)

	w := postChat(t, handler, `{"message": "hi"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["response"] != types.FallbackReply {
		t.Errorf("response = %q, want the fallback apology", body["response"])
	}
}

func TestChatHandler_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing message", `{}`, types.MsgInvalidMessage},
		{"non-string message", `{"message": [1, 2]}`, types.MsgInvalidMessage},
		{"malformed JSON", `{"message": `, types.MsgInvalidMessage},
		{"message too long", `{"message": "` + strings.Repeat("x", types.MaxMessageLength+1) + `"}`, types.MsgMessageTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &stubUpstream{reply: &upstream.Reply{Text: "unused"}}
			handler := newChatHandler(up)

			w := postChat(t, handler, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			body := decodeBody(t, w)
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
			}
			if up.callCount != 0 {
				t.Error("upstream was called for an invalid request")
			}
		})
	}
}

func TestChatHandler_EmptyMessageIsForwarded(t *testing.T) {
	up := &stubUpstream{reply: &upstream.Reply{Text: "ok"}}
	handler := newChatHandler(up)

	w := postChat(t, handler, `{"message": ""}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if up.callCount != 1 {
		t.Error("upstream was not called for an empty message")
	}
	if up.gotMessage != "" {
		t.Errorf("upstream saw %q, want empty message", up.gotMessage)
	}
}

func TestChatHandler_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "timeout",
			err:        &upstream.TimeoutError{Timeout: 30 * time.Second},
			wantStatus: http.StatusGatewayTimeout,
			wantMsg:    types.MsgGatewayTimeout,
		},
		{
			name:       "rate limited",
			err:        &upstream.RateLimitError{RetryAfter: time.Minute},
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    types.MsgUpstreamLimited,
		},
		{
			name:       "auth failure hides detail",
			err:        &upstream.AuthError{StatusCode: 401, Body: "invalid api key for bot-123"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    types.MsgAuthError,
		},
		{
			name:       "unexpected status",
			err:        &upstream.APIError{StatusCode: 502, Body: "bad gateway"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    types.MsgServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newChatHandler(&stubUpstream{err: tt.err})

			w := postChat(t, handler, `{"message": "hi"}`)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := decodeBody(t, w)
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
			}
			// Upstream detail must never reach the client.
			if strings.Contains(w.Body.String(), "bot-123") || strings.Contains(w.Body.String(), "bad gateway") {
				t.Errorf("upstream detail leaked into response: %s", w.Body.String())
			}
		})
	}
}

func TestChatHandler_MethodNotRouted(t *testing.T) {
	up := &stubUpstream{reply: &upstream.Reply{Text: "unused"}}
	handler := newChatHandler(up)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		r := httptest.NewRequest(method, "/api/chat", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", method, w.Code)
		}
		body := decodeBody(t, w)
		if body["error"] != types.MsgNotFound {
			t.Errorf("%s error = %q, want %q", method, body["error"], types.MsgNotFound)
		}
	}
	if up.callCount != 0 {
		t.Error("upstream was called for a non-POST request")
	}
}
