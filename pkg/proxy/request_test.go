package proxy

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"relay-hq/chatrelay/pkg/proxy/types"
)

func newChatPost(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
}

func TestParseChatRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
		wantErr string
	}{
		{
			name:    "valid request",
			body:    `{"message": "hello"}`,
			wantMsg: "hello",
		},
		{
			name:    "empty message is accepted",
			body:    `{"message": ""}`,
			wantMsg: "",
		},
		{
			name:    "extra fields ignored",
			body:    `{"message": "hi", "timestamp": "2024-01-01T00:00:00Z", "unknown": 42}`,
			wantMsg: "hi",
		},
		{
			name:    "missing message",
			body:    `{}`,
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "non-string message",
			body:    `{"message": 42}`,
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "null message",
			body:    `{"message": null}`,
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "malformed JSON",
			body:    `{"message": "hel`,
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "empty body",
			body:    "",
			wantErr: types.MsgInvalidMessage,
		},
		{
			name:    "message too long",
			body:    `{"message": "` + strings.Repeat("a", types.MaxMessageLength+1) + `"}`,
			wantErr: types.MsgMessageTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseChatRequest(newChatPost(tt.body), 1<<20)

			if tt.wantErr != "" {
				var valErr *types.ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("ParseChatRequest() error = %v, want *types.ValidationError", err)
				}
				if valErr.Message != tt.wantErr {
					t.Errorf("error message = %q, want %q", valErr.Message, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseChatRequest() error: %v", err)
			}
			if req.Message == nil || *req.Message != tt.wantMsg {
				t.Errorf("Message = %v, want %q", req.Message, tt.wantMsg)
			}
		})
	}
}

func TestParseChatRequest_BodyTooLarge(t *testing.T) {
	body := `{"message": "` + strings.Repeat("a", 100) + `"}`
	_, err := ParseChatRequest(newChatPost(body), 16)

	var valErr *types.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("ParseChatRequest() error = %v, want *types.ValidationError", err)
	}
	if valErr.Message != types.MsgInvalidMessage {
		t.Errorf("error message = %q, want %q", valErr.Message, types.MsgInvalidMessage)
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trustProxy bool
		want       string
	}{
		{
			name:       "remote address without forwarding",
			remoteAddr: "192.0.2.1:54321",
			want:       "192.0.2.1",
		},
		{
			name:       "forwarded header ignored when proxies are not trusted",
			remoteAddr: "192.0.2.1:54321",
			forwarded:  "203.0.113.9",
			trustProxy: false,
			want:       "192.0.2.1",
		},
		{
			name:       "forwarded header wins when proxies are trusted",
			remoteAddr: "10.0.0.1:443",
			forwarded:  "203.0.113.9",
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "first hop of a forwarded chain",
			remoteAddr: "10.0.0.1:443",
			forwarded:  "203.0.113.9, 10.0.0.2, 10.0.0.1",
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "empty forwarded header falls back to remote address",
			remoteAddr: "192.0.2.1:54321",
			forwarded:  "",
			trustProxy: true,
			want:       "192.0.2.1",
		},
		{
			name:       "remote address without port is used verbatim",
			remoteAddr: "192.0.2.1",
			want:       "192.0.2.1",
		},
		{
			name:       "ipv6 remote address",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := ClientKey(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
