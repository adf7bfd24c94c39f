// Package upstream implements the HTTP client for the Chatbase chat API,
// the single external collaborator of the proxy.
//
// Exactly one attempt is made per call: no retries, no backoff. A call is
// bounded by the configured timeout, after which it fails with a
// *TimeoutError. Other failure classes get their own error types so the
// proxy boundary can translate them without string matching.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"relay-hq/chatrelay/pkg/config"
)

// chatPath is the message endpoint, relative to the base URL.
const chatPath = "/api/v1/chat"

// maxErrorBodyBytes caps how much of an upstream error body is retained
// for logging.
const maxErrorBodyBytes = 4 << 10

// Client is the Chatbase API client.
type Client struct {
	cfg    config.UpstreamConfig
	client *http.Client
}

// NewClient creates a client from upstream configuration.
// Credentials are assumed validated at startup.
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
			Timeout: cfg.Timeout,
		},
	}
}

// Send forwards a single user message upstream and returns the reply.
//
// The message is wrapped as one user-role entry with the configured bot
// identifier and static parameters (non-streaming, fixed temperature),
// authenticated with the bearer credential. The call respects both ctx
// and the client's own timeout, whichever expires first.
func (c *Client) Send(ctx context.Context, message string) (*Reply, error) {
	payload := chatRequest{
		Messages:    []chatMessage{{Role: "user", Content: message}},
		ChatbotID:   c.cfg.BotID,
		Stream:      false,
		Temperature: c.cfg.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal upstream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	slog.DebugContext(ctx, "sending upstream request",
		"url", c.cfg.BaseURL+chatPath,
		"message_len", len(message),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &TimeoutError{Timeout: c.cfg.Timeout}
		}
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("failed to read upstream response: %w", err)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ParseError{
			RawResponse: string(raw),
			Cause:       fmt.Errorf("failed to unmarshal upstream response: %w", err),
		}
	}

	return &Reply{Text: parsed.Text}, nil
}

// statusError maps a non-2xx upstream response to a typed error.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	case http.StatusTooManyRequests:
		return &RateLimitError{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Body:       string(body),
		}
	default:
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
}

// isTimeout reports whether a transport error represents a deadline hit,
// either from the request context or the client's own timeout.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// parseRetryAfter parses a Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}
