package api

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds backend connection settings.
type Config struct {
	// BaseURL is the backend root, e.g. "https://studyhub.example.com".
	BaseURL string

	// Token is the bearer token sent with every request. Optional for
	// backends that allow anonymous reads.
	Token string

	Retry RetryConfig

	// Timeout bounds a single HTTP attempt. Default: 30s.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("STUDYDESK_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("STUDYDESK_TOKEN"); t != "" {
		cfg.Token = t
	}
	if d := os.Getenv("STUDYDESK_TIMEOUT"); d != "" {
		if v, err := time.ParseDuration(d); err == nil {
			cfg.Timeout = v
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring STUDYDESK_TIMEOUT=%q: %v\n", d, err)
		}
	}

	return cfg
}

// Validate checks that the base URL is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("STUDYDESK_API_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", c.BaseURL)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1")
	}
	return nil
}
