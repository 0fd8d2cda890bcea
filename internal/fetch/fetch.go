// Package fetch performs JSON GET requests against upstream market-data APIs,
// retrying transient failures with exponential backoff.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/camuig/clac/internal/logger"
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type Client struct {
	HTTP       *http.Client
	Header     http.Header
	MaxElapsed time.Duration // 0 disables retries
	NewBackOff func() backoff.BackOff
	Logger     *logger.Logger
}

func NewClient(timeout, maxElapsed time.Duration, log *logger.Logger) *Client {
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		Header:     http.Header{},
		MaxElapsed: maxElapsed,
		NewBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		Logger:     log,
	}
}

// GetJSON fetches url and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	opts := []backoff.RetryOption{
		backoff.WithBackOff(c.NewBackOff()),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.Logger.Warn("upstream request failed, retrying", "url", url, "error", err, "backoff", next.String())
		}),
	}
	if c.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(c.MaxElapsed))
	} else {
		opts = append(opts, backoff.WithMaxTries(1))
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.getOnce(ctx, url, out)
	}, opts...)

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}

func (c *Client) getOnce(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		serr := &StatusError{URL: url, StatusCode: resp.StatusCode}
		if serr.Retryable() {
			return serr
		}
		return backoff.Permanent(serr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return backoff.Permanent(fmt.Errorf("parse response: %w", err))
	}
	return nil
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.StatusCode
	}
	return 0
}
