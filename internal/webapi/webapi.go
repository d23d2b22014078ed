// Package webapi is a small JSON-over-HTTP GET client shared by the currency
// and horoscope integrations. Each client owns one circuit breaker.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jenbot/jenbot/internal/resilience"
)

const maxBodyBytes = 4 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// IsClientError reports whether err is a 4xx StatusError.
func IsClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500
}

// Client performs bounded JSON GET requests.
type Client struct {
	http    *http.Client
	breaker *resilience.CircuitBreaker
	timeout time.Duration
	logger  *slog.Logger
}

// New returns a client named after its upstream. timeout bounds every call.
func New(name string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:         name,
			Timeout:      timeout,
			IsSuccessful: IsClientError,
			Logger:       log,
		}),
		logger: log.With("component", "webapi", "upstream", name),
	}
}

// GetJSON requests endpoint with query and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	target := u.String()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	err = c.breaker.Execute(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
			return &StatusError{URL: target, StatusCode: resp.StatusCode}
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	})

	duration := time.Since(startTime)
	if err != nil {
		c.logger.WarnContext(ctx, "Upstream request failed", "url", target, "duration", duration, "error", err)
		return err
	}
	c.logger.DebugContext(ctx, "Upstream request succeeded", "url", target, "duration", duration)
	return nil
}
