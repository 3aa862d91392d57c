package arcanum

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arcanum-sdk/client-go/internal/api"
)

// HTTPDoer is the transport the client sends requests through. *http.Client
// satisfies it.
type HTTPDoer = api.HTTPDoer

const (
	// DefaultTimeout applies to the *http.Client created when WithHTTPClient
	// is not used.
	DefaultTimeout = api.DefaultTimeout
	// DefaultUserAgent is sent unless WithUserAgent overrides it.
	DefaultUserAgent = api.DefaultUserAgent
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient HTTPDoer
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL. Trailing slashes are removed.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets the transport. Any timeout must be configured on it;
// WithTimeout no longer applies.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout of the default HTTP client.
// Default: 10 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger that receives one debug record per request.
// Credentials and bodies are never logged. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithMetrics registers request metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}
