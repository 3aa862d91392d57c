// Package config loads client settings from the environment and an optional
// .env file. The client itself never reads the environment; applications
// call Load once and pass the result to arcanum.NewFromConfig.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/arcanum-sdk/client-go/internal/apierrors"
)

// Environment variables read by Load.
const (
	EnvAPIKey    = "ARCANUM_API_KEY"
	EnvAPISecret = "ARCANUM_API_SECRET"
	EnvBaseURL   = "ARCANUM_API_BASE_URL"
	EnvTimeout   = "ARCANUM_TIMEOUT"
)

// DefaultEnvFile is read by Load when present.
const DefaultEnvFile = ".env"

// Config holds the settings needed to build a client.
type Config struct {
	APIKey    string `mapstructure:"ARCANUM_API_KEY"`
	APISecret string `mapstructure:"ARCANUM_API_SECRET"`
	BaseURL   string `mapstructure:"ARCANUM_API_BASE_URL"`
	// Timeout is zero when unset; the client then uses its default.
	Timeout time.Duration `mapstructure:"-"`
}

type loadOptions struct {
	envFile  string
	required bool
	v        *viper.Viper
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithEnvFile reads path instead of .env. Unlike the default file, it must
// exist.
func WithEnvFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.envFile = path
		o.required = true
	}
}

// WithViper reads values through v, so that callers can bind command-line
// flags to the environment variable names before loading.
func WithViper(v *viper.Viper) LoadOption {
	return func(o *loadOptions) {
		o.v = v
	}
}

// Load reads the env file and then the environment. Variables already set in
// the environment take precedence over the file. The result is not
// validated; call Validate.
func Load(opts ...LoadOption) (*Config, error) {
	o := &loadOptions{envFile: DefaultEnvFile}
	for _, opt := range opts {
		opt(o)
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			if o.required || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load env file %s: %w", o.envFile, err)
			}
		}
	}

	v := o.v
	if v == nil {
		v = viper.New()
	}
	v.AutomaticEnv()
	for _, key := range []string{EnvAPIKey, EnvAPISecret, EnvBaseURL, EnvTimeout} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	timeout, err := parseTimeout(v.GetString(EnvTimeout))
	if err != nil {
		return nil, err
	}
	cfg.Timeout = timeout

	return &cfg, nil
}

// parseTimeout accepts a Go duration ("15s") or a number of seconds ("15").
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if seconds, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", EnvTimeout, s)
	}
	return d, nil
}

// Validate reports missing credentials or base URL.
func (c *Config) Validate() error {
	if c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("%w (set %s and %s)", apierrors.ErrMissingCredentials, EnvAPIKey, EnvAPISecret)
	}
	if strings.TrimRight(c.BaseURL, "/") == "" {
		return fmt.Errorf("%w (set %s)", apierrors.ErrMissingBaseURL, EnvBaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", EnvTimeout)
	}
	return nil
}
