// Package transport provides the HTTP client used for translation
// requests: a shared connection pool with bounded automatic retry on
// transient server errors and exponential backoff.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultRetries = 3
	DefaultBackoff = 500 * time.Millisecond
	DefaultTimeout = 15 * time.Second
)

// retryableStatus reports whether an HTTP status is a transient server
// error worth retrying.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// StatusError is returned when the server answers with a non-2xx status
// after all retries are exhausted.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Code, truncate(e.Body, 200))
}

// Config controls retry and connection behavior.
type Config struct {
	// Retries is the number of re-attempts after the first try (default 3).
	Retries int
	// Backoff is the base delay for exponential backoff (default 500ms).
	Backoff time.Duration
	// Timeout bounds a single attempt (default 15s).
	Timeout time.Duration
	// Proxy is an optional HTTP/HTTPS proxy URL. When empty, the
	// standard proxy environment variables apply.
	Proxy string
	// OnLog emits debug messages for retry attempts.
	OnLog func(format string, args ...any)
}

// Client is a retrying HTTP client. It is safe for concurrent use by
// multiple workers: the underlying connection pool is shared.
type Client struct {
	http    *http.Client
	retries int
	backoff time.Duration
	onLog   func(format string, args ...any)
}

// New builds a Client from cfg, filling in defaults for zero fields.
func New(cfg Config) *Client {
	retries := cfg.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy != "" {
		if parsed, err := url.Parse(cfg.Proxy); err == nil {
			tr.Proxy = http.ProxyURL(parsed)
		}
	} else {
		tr.Proxy = http.ProxyFromEnvironment
	}

	return &Client{
		http: &http.Client{
			Transport: tr,
			Timeout:   timeout,
		},
		retries: retries,
		backoff: backoff,
		onLog:   cfg.OnLog,
	}
}

func (c *Client) log(format string, args ...any) {
	if c.onLog != nil {
		c.onLog(format, args...)
	}
}

// PostJSON sends payload as a JSON POST to endpoint and returns the raw
// response body. Transient server errors (500, 502, 503, 504) and
// connection failures are retried with exponential backoff; any other
// failure surfaces immediately.
func (c *Client) PostJSON(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			wait := c.backoff << (attempt - 1)
			c.log("retry %d/%d for %s in %v", attempt, c.retries, endpoint, wait)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("reading response: %w", readErr)
			continue
		}

		if retryableStatus(resp.StatusCode) {
			lastErr = &StatusError{Code: resp.StatusCode, Body: string(respBody)}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
		}

		return respBody, nil
	}

	return nil, fmt.Errorf("exhausted %d retries: %w", c.retries, lastErr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
