package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"relay-hq/chatrelay/pkg/config"
)

func testConfig(baseURL string) config.UpstreamConfig {
	return config.UpstreamConfig{
		BaseURL:     baseURL,
		BotID:       "bot-123",
		APIKey:      "secret-key",
		Timeout:     2 * time.Second,
		Temperature: 0,
	}
}

func TestClient_Send_Success(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		ChatbotID   string  `json:"chatbotId"`
		Stream      bool    `json:"stream"`
		Temperature float64 `json:"temperature"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "Hi there!"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	reply, err := client.Send(context.Background(), "hello bot")
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if reply.Text != "Hi there!" {
		t.Errorf("reply.Text = %q, want %q", reply.Text, "Hi there!")
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret-key")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if len(gotBody.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "user" {
		t.Errorf("message role = %q, want user", gotBody.Messages[0].Role)
	}
	if gotBody.Messages[0].Content != "hello bot" {
		t.Errorf("message content = %q, want %q", gotBody.Messages[0].Content, "hello bot")
	}
	if gotBody.ChatbotID != "bot-123" {
		t.Errorf("chatbotId = %q, want bot-123", gotBody.ChatbotID)
	}
	if gotBody.Stream {
		t.Error("stream = true, want false")
	}
}

func TestClient_Send_EmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	reply, err := client.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	// An empty text is not an error at this layer; the handler decides
	// what to show the user.
	if reply.Text != "" {
		t.Errorf("reply.Text = %q, want empty", reply.Text)
	}
}

func TestClient_Send_AuthError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad credentials", status)
		}))

		client := NewClient(testConfig(srv.URL))
		_, err := client.Send(context.Background(), "hello")
		srv.Close()

		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("status %d: Send() error = %v, want *AuthError", status, err)
		}
		if authErr.StatusCode != status {
			t.Errorf("AuthError.StatusCode = %d, want %d", authErr.StatusCode, status)
		}
	}
}

func TestClient_Send_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Send(context.Background(), "hello")

	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("Send() error = %v, want *RateLimitError", err)
	}
	if rateErr.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", rateErr.RetryAfter)
	}
}

func TestClient_Send_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Send(context.Background(), "hello")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Send() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("APIError.StatusCode = %d, want %d", apiErr.StatusCode, http.StatusBadGateway)
	}
}

func TestClient_Send_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Send(context.Background(), "hello")

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Send() error = %v, want *ParseError", err)
	}
}

func TestClient_Send_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	client := NewClient(cfg)

	_, err := client.Send(context.Background(), "hello")

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Send() error = %v, want *TimeoutError", err)
	}
	if timeoutErr.Timeout != cfg.Timeout {
		t.Errorf("TimeoutError.Timeout = %v, want %v", timeoutErr.Timeout, cfg.Timeout)
	}
}

func TestClient_Send_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Send(ctx, "hello")

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Send() error = %v, want *TimeoutError", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"empty", "", 0},
		{"seconds", "120", 120 * time.Second},
		{"garbage", "soon", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRetryAfter(tt.header); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}
