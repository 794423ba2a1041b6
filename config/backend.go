package config

import (
	"strings"
	"time"
)

// BackendConfig contains configuration for the external donor REST backend.
// The backend owns user records, donation requests, donors, and fundings;
// this gateway only consumes it.
type BackendConfig struct {
	// BaseURL is the backend's base URL. Defaults to the local development
	// backend when unset.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:4000"`

	// Timeout bounds each backend call at the transport level. There is no
	// retry or backoff policy; failures surface to the caller.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to backend configuration values.
func (c *BackendConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:4000"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// ImageHostConfig contains configuration for the external image-hosting
// endpoint used by profile and donation-request forms.
type ImageHostConfig struct {
	// UploadURL is the image host upload endpoint.
	UploadURL string `env:"UPLOAD_URL" envDefault:"https://api.imgbb.com/1/upload"`

	// APIKey authenticates uploads. Uploads are disabled when empty.
	APIKey string `env:"API_KEY"`
}

// IsEnabled returns true when image uploads are configured.
func (c *ImageHostConfig) IsEnabled() bool { return c.APIKey != "" }
