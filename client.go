package arcanum

import (
	"context"
	"net/url"
	"strings"

	"github.com/arcanum-sdk/client-go/config"
	"github.com/arcanum-sdk/client-go/internal/api"
	"github.com/arcanum-sdk/client-go/internal/metrics"
)

// Payload is a parsed JSON response returned as-is by operations that have
// no typed result: a map[string]any, a []any or a scalar. Numbers are
// json.Number.
type Payload = any

// Client is the Arcanum API client. It holds only immutable configuration
// and is safe for concurrent use.
type Client struct {
	apiClient *api.Client
}

// New creates a client authenticating with the given API key and secret.
// A base URL must be supplied with WithBaseURL. No request is made.
func New(apiKey, apiSecret string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiCfg := api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		UserAgent:  cfg.userAgent,
		Logger:     cfg.logger,
	}
	if err := apiCfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.registerer != nil {
		collector, err := metrics.New(cfg.registerer)
		if err != nil {
			return nil, err
		}
		apiCfg.Metrics = collector
	}

	apiClient, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, err
	}
	return &Client{apiClient: apiClient}, nil
}

// NewFromConfig creates a client from loaded configuration. Options are
// applied after the configuration and may override it.
func NewFromConfig(cfg config.Config, opts ...Option) (*Client, error) {
	base := []Option{WithBaseURL(cfg.BaseURL)}
	if cfg.Timeout > 0 {
		base = append(base, WithTimeout(cfg.Timeout))
	}
	return New(cfg.APIKey, cfg.APISecret, append(base, opts...)...)
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// do sends one request. Path segments must already be escaped.
func (c *Client) do(ctx context.Context, method, path string, body any) (Payload, error) {
	return c.apiClient.Do(ctx, method, path, body)
}

// isEmptyPayload reports whether a response carried nothing: an empty body,
// an empty object or an empty array.
func isEmptyPayload(v Payload) bool {
	switch p := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(p) == 0
	case []any:
		return len(p) == 0
	}
	return false
}

// endpoint joins path segments, escaping each one.
func endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}
