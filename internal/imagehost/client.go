// Package imagehost uploads user images (avatars) to an external image
// hosting service and returns the public display URL.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/roktoseba/ui-gateway/internal/errors"
)

// Config holds configuration for the image host client.
type Config struct {
	UploadURL  string
	APIKey     string
	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// Client talks to an imgbb-compatible upload endpoint.
type Client struct {
	uploadURL  string
	apiKey     string
	httpClient *http.Client
}

// maxImageBytes caps uploads at 8 MiB.
const maxImageBytes = 8 << 20

// NewClient creates a new image host client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.UploadURL == "" {
		return nil, errors.New("upload URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		uploadURL:  cfg.UploadURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the image bytes as a multipart form and returns the hosted
// display URL.
func (c *Client) Upload(ctx context.Context, filename string, image io.Reader) (string, error) {
	if image == nil {
		return "", apperrors.Malformed("no image provided", nil)
	}

	body, contentType, err := encodeForm(filename, image)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(c.uploadURL)
	if err != nil {
		return "", fmt.Errorf("parse upload URL: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Transport("image upload failed", err)
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxImageBytes)).Decode(&parsed); decodeErr != nil {
		return "", apperrors.Malformed("decode upload response", decodeErr)
	}

	if !parsed.Success {
		msg := parsed.Error.Message
		if msg == "" {
			msg = "image upload failed"
		}
		return "", apperrors.Provider(msg, nil)
	}

	if parsed.Data.DisplayURL != "" {
		return parsed.Data.DisplayURL, nil
	}
	return parsed.Data.URL, nil
}

func encodeForm(filename string, image io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if filename == "" {
		filename = "image"
	}
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, io.LimitReader(image, maxImageBytes)); err != nil {
		return nil, "", fmt.Errorf("copy image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
