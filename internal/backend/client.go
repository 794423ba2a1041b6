package backend

// Package backend is the HTTP client for the external donor REST service.
// It exposes two surfaces: the public Client, which never attaches a bearer
// token (token exchange, public reads), and the AuthorizedClient, which
// injects the current bearer token from a TokenStore on every call and
// invalidates the store on 401/403 responses.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/roktoseba/ui-gateway/internal/errors"
	"github.com/roktoseba/ui-gateway/internal/ports"
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend base URL without a trailing slash.
	BaseURL string
	// HTTPClient is optional; a default client with the configured timeout
	// is used when nil.
	HTTPClient *http.Client
	// Logger is optional.
	Logger *slog.Logger
}

// Client is the unauthenticated backend client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a new backend client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// Authorized returns a client view bound to the given token store. Each
// outgoing request reads the token at call time; 401/403 responses clear the
// store and then propagate unchanged. The store is the only state shared
// between views.
func (c *Client) Authorized(store ports.TokenStore) *AuthorizedClient {
	inner := *c.http
	inner.Transport = &bearerTransport{
		base:   c.http.Transport,
		store:  store,
		logger: c.logger,
	}
	return &AuthorizedClient{
		client: &Client{baseURL: c.baseURL, http: &inner, logger: c.logger},
	}
}

// AuthorizedClient issues backend calls with the session's bearer token.
type AuthorizedClient struct {
	client *Client
}

// request groups inputs for a single backend call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
}

// do issues the request and decodes a 2xx JSON response into out (skipped
// when out is nil). Non-2xx responses become AppErrors carrying the status
// and the original response payload; transport failures pass through wrapped
// but otherwise unmodified. There are no retries and no redirects on error.
func (c *Client) do(ctx context.Context, req request, out any) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		buf, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return apperrors.Transport(fmt.Sprintf("%s %s", req.method, req.path), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "close response body failed", "error", closeErr)
		}
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.Transport(fmt.Sprintf("read %s %s response", req.method, req.path), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.FromStatus(resp.StatusCode, errorMessage(req, payload))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperrors.Malformed(fmt.Sprintf("decode %s %s response", req.method, req.path), err)
	}
	return nil
}

const maxResponseBytes = 4 << 20

// errorMessage keeps the backend's original error payload intact in the
// returned error so callers can surface it.
func errorMessage(req request, payload []byte) string {
	msg := strings.TrimSpace(string(payload))
	if msg == "" {
		msg = "backend rejected request"
	}
	return fmt.Sprintf("%s %s: %s", req.method, req.path, msg)
}
