package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sinanfen/todogether-cli/pkg/auth"
)

const (
	defaultMaxRetries = 3
	defaultTimeout    = 10 * time.Second
)

// BackoffFunc returns the wait before the attempt following the given one.
// Attempts are numbered from 1.
type BackoffFunc func(attempt int) time.Duration

// DefaultBackoff waits 2^attempt seconds, uncapped. The total is bounded by
// the retry budget alone.
func DefaultBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

// Options tunes the request gateway. Zero values fall back to the defaults.
type Options struct {
	MaxRetries  int
	Timeout     time.Duration
	Backoff     BackoffFunc
	Version     string
	Environment string
}

// Client is the To-dogether API gateway. Every call goes through do, which
// layers token upkeep, a bounded retry loop and backoff on top of a plain
// HTTP round trip.
type Client struct {
	baseURL     string
	auth        *auth.Client
	httpClient  *http.Client
	maxRetries  int
	timeout     time.Duration
	backoff     BackoffFunc
	version     string
	environment string
	log         zerolog.Logger
}

// New creates an API client that authenticates through ac.
func New(baseURL string, ac *auth.Client, opts Options, log zerolog.Logger) *Client {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Backoff == nil {
		opts.Backoff = DefaultBackoff
	}
	if opts.Environment == "" {
		opts.Environment = "production"
	}
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		auth:        ac,
		httpClient:  &http.Client{},
		maxRetries:  opts.MaxRetries,
		timeout:     opts.Timeout,
		backoff:     opts.Backoff,
		version:     opts.Version,
		environment: opts.Environment,
		log:         log,
	}
}

// do runs one logical API call as a loop of at most maxRetries attempts.
// A 401 answered by a successful token refresh retries without consuming
// backoff; a failed refresh aborts the whole call with ErrAuthFailed and a
// cleared session. Other 4xx responses abort immediately; 5xx and transport
// errors back off and retry until the budget runs out, then surface the last
// error unchanged.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if c.auth.Store().Session().Authenticated() {
			if _, err := c.auth.EnsureValidToken(ctx); err != nil {
				c.auth.Store().Clear()
				return fmt.Errorf("%w: %v", ErrAuthFailed, err)
			}
		}

		status, err := c.roundTrip(ctx, method, path, body, out)
		if err == nil {
			return nil
		}
		c.log.Debug().Err(err).Int("attempt", attempt).Str("path", path).Msg("request attempt failed")

		if status == http.StatusUnauthorized && attempt < c.maxRetries {
			if _, rerr := c.auth.Refresh(ctx); rerr != nil {
				c.auth.Store().Clear()
				return fmt.Errorf("%w: %v", ErrAuthFailed, rerr)
			}
			continue // fresh token, no backoff
		}

		lastErr = err
		if !retryable(status) {
			break
		}
		if attempt < c.maxRetries {
			if werr := sleep(ctx, c.backoff(attempt)); werr != nil {
				return werr
			}
		}
	}
	return lastErr
}

// roundTrip issues a single HTTP attempt. The returned status is 0 for
// transport-level failures.
func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) (int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("do request: %w", auth.ErrTimeout)
		}
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) //nolint:errcheck // best-effort read for the message
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// setHeaders merges the bearer header with content type and the static app
// identification headers sent on every call.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-App-Version", c.version)
	req.Header.Set("X-Environment", c.environment)
	for key, values := range c.auth.AuthHeader() {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// sleep waits for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
