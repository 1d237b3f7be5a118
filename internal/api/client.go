// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/jeranaias/rosterboard/internal/roster"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the activities client.
type ClientConfig struct {
	// BaseURL is the service root (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout bounds each request (default: 10s)
	Timeout time.Duration

	// RequestsPerSecond and Burst shape outgoing requests (default: 10/s, burst 5)
	RequestsPerSecond float64
	Burst             int

	// UserAgent is sent with every request
	UserAgent string

	// Logger receives one line per request. Nil discards.
	Logger *log.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:8000",
		Timeout:           10 * time.Second,
		RequestsPerSecond: 10,
		Burst:             5,
		UserAgent:         "rosterboard",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the activities service. It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// Result is the body of a successful signup or unregister.
type Result struct {
	Status  int
	Message string
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if config.Burst <= 0 {
		config.Burst = defaults.Burst
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		logger:  logger,
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// ROSTER OPERATIONS
// =============================================================================

// ListActivities fetches the full roster.
func (c *Client) ListActivities(ctx context.Context) (*roster.Snapshot, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return nil, err
	}

	if !isSuccess(status) {
		return nil, rejection("failed to list activities", status, body)
	}

	snap, err := roster.Decode(body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode roster", Status: status, Cause: err}
	}
	return snap, nil
}

// Signup adds email to the named activity.
func (c *Client) Signup(ctx context.Context, activity, email string) (*Result, error) {
	return c.mutate(ctx, "signup", activity, email)
}

// Unregister removes email from the named activity.
func (c *Client) Unregister(ctx context.Context, activity, email string) (*Result, error) {
	return c.mutate(ctx, "unregister", activity, email)
}

func (c *Client) mutate(ctx context.Context, action, activity, email string) (*Result, error) {
	status, body, err := c.do(ctx, http.MethodPost, MutationPath(activity, action, email))
	if err != nil {
		return nil, err
	}

	if !isSuccess(status) {
		return nil, rejection(action+" failed", status, body)
	}

	if !gjson.ValidBytes(body) {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode " + action + " response", Status: status}
	}
	return &Result{Status: status, Message: gjson.GetBytes(body, "message").String()}, nil
}

// MutationPath builds /activities/{activity}/{action}?email={email} with both
// values percent-encoded.
func MutationPath(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + queryEscape(email)
}

// queryEscape percent-encodes a query value, spelling spaces as %20.
func queryEscape(s string) string {
	// QueryEscape has already turned literal '+' into %2B, so every '+' left is a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do performs one request and returns the status and body.
func (c *Client) do(ctx context.Context, method, path string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, &ClientError{Type: ErrTypeTransport, Message: "request not sent", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, nil)
	if err != nil {
		return 0, nil, &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("API %s %s id=%s failed after %v: %v", method, req.URL.Path, requestID, time.Since(start), err)
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return 0, nil, &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		return 0, nil, &ClientError{Type: ErrTypeTransport, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.logger.Printf("API %s %s id=%s -> %d (%v)", method, req.URL.Path, requestID, resp.StatusCode, time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read response", Status: resp.StatusCode, Cause: err}
	}
	return resp.StatusCode, body, nil
}

// rejection interprets a non-2xx body. A body that is not a JSON object
// cannot be shown to the user and counts as an invalid response.
func rejection(message string, status int, body []byte) error {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: message, Status: status}
	}

	ce := &ClientError{Type: ErrTypeRejected, Message: message, Status: status}
	// FastAPI validation errors put a list under "detail"; only plain strings are shown.
	if detail := gjson.GetBytes(body, "detail"); detail.Type == gjson.String {
		ce.Detail = detail.String()
	}
	if msg := gjson.GetBytes(body, "message"); msg.Type == gjson.String {
		ce.ServerMessage = msg.String()
	}
	return ce
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
