package upstream

import (
	"errors"
	"time"
)

// Errors for upstream configuration
var (
	ErrConfigMissingBaseURL = errors.New("upstream: base URL is required")
	ErrConfigMissingAPIKey  = errors.New("upstream: API key is required")
)

// Config holds configuration for the commerce API integration.
// The API key arrives here from configuration; it must never be embedded
// in source.
type Config struct {
	// BaseURL is the root of the commerce API
	BaseURL string
	// APIKey is sent on every request in the X-API-KEY header
	APIKey string
	// StoreID is the path segment of the category listing endpoint
	StoreID string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// NewConfig creates an upstream configuration with defaults
func NewConfig(baseURL, apiKey string) *Config {
	return &Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		StoreID: "0",
		Timeout: 30 * time.Second,
	}
}

// Validate checks that the configuration is complete
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.StoreID == "" {
		c.StoreID = "0"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
