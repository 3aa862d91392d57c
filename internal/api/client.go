package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arcanum-sdk/client-go/internal/apierrors"
	"github.com/arcanum-sdk/client-go/internal/metrics"
)

const (
	// DefaultTimeout is the timeout of the *http.Client created when no
	// transport is supplied.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "arcanum-client-go"
)

// HTTPDoer is the transport the pipeline depends on. *http.Client satisfies
// it; tests and callers may substitute any implementation.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the immutable settings of a Client.
type Config struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	HTTPClient HTTPDoer
	// Timeout applies only to the default *http.Client.
	Timeout   time.Duration
	UserAgent string
	Logger    *slog.Logger
	Metrics   *metrics.Collector
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	userAgent  string
	httpClient HTTPDoer
	logger     *slog.Logger
	metrics    *metrics.Collector
}

// Validate reports missing credentials or base URL.
func (cfg Config) Validate() error {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return apierrors.ErrMissingCredentials
	}
	if strings.TrimRight(cfg.BaseURL, "/") == "" {
		return apierrors.ErrMissingBaseURL
	}
	return nil
}

// NewClient creates a new API client from cfg. The base URL has trailing
// slashes removed.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		userAgent:  cfg.UserAgent,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c, nil
}

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the transport in use.
func (c *Client) HTTPClient() HTTPDoer {
	return c.httpClient
}

// sendsContentType reports whether a JSON body is announced for method.
// GET and DELETE never carry a Content-Type, even when a body is supplied.
func sendsContentType(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodDelete:
		return false
	}
	return true
}

// Do performs exactly one request and returns the parsed JSON body: a
// map[string]any, a []any, or a scalar. Numbers are json.Number. A 2xx
// response with an empty body yields an empty map. Failures are one of the
// apierrors kinds.
func (c *Client) Do(ctx context.Context, method, path string, body any) (any, error) {
	requestID := uuid.NewString()
	done := c.metrics.Start(method)
	start := time.Now()

	result, status, err := c.do(ctx, method, path, body, requestID)

	kind := apierrors.KindOf(err)
	done(status, kind.String())

	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
		slog.String("request_id", requestID),
	}
	if err != nil {
		attrs = append(attrs, slog.String("kind", kind.String()), slog.String("error", err.Error()))
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "arcanum request", attrs...)

	return result, err
}

func (c *Client) do(ctx context.Context, method, path string, body any, requestID string) (any, int, error) {
	path = strings.TrimLeft(path, "/")

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, unexpected(fmt.Errorf("failed to marshal request body: %w", err), requestID)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, bodyReader)
	if err != nil {
		return nil, 0, unexpected(fmt.Errorf("failed to create request: %w", err), requestID)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey+":"+c.apiSecret)
	req.Header.Set("Accept", "application/json")
	if body != nil && sendsContentType(method) {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &apierrors.APIError{
			Message:   "API request failed: " + err.Error(),
			RequestID: requestID,
			Err:       err,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, unexpected(fmt.Errorf("failed to read response body: %w", err), requestID)
	}

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, parseErrorResponse(method, path, resp, data, requestID)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return map[string]any{}, resp.StatusCode, nil
		}
		return nil, resp.StatusCode, &apierrors.APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API returned status code %d with an empty body.", resp.StatusCode),
			RequestID:  requestID,
		}
	}

	result, err := decodeJSON(data)
	if err != nil {
		return nil, resp.StatusCode, &apierrors.APIError{
			Message:   "Failed to decode JSON response: " + err.Error(),
			RequestID: requestID,
			Err:       err,
		}
	}
	return result, resp.StatusCode, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func unexpected(err error, requestID string) error {
	return &apierrors.APIError{
		Message:   "An unexpected error occurred: " + err.Error(),
		RequestID: requestID,
		Err:       err,
	}
}
