package backend

import (
	"log/slog"
	"net/http"

	"github.com/roktoseba/ui-gateway/internal/ports"
)

// bearerTransport injects the current bearer token into outgoing requests and
// invalidates the token slot when the backend answers 401 or 403. It never
// retries and never redirects: credential invalidation is separated from
// navigation policy, which belongs to the guard layer. The response itself is
// propagated unchanged to the caller.
type bearerTransport struct {
	base   http.RoundTripper
	store  ports.TokenStore
	logger *slog.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Read the slot at call time, not at client construction.
	token, err := t.store.Get(req.Context())
	if err != nil {
		t.log().WarnContext(req.Context(), "token store read failed", "error", err)
	}
	if token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	// When no token is present the request goes out without the header; the
	// server decides how to reject it.

	resp, rtErr := t.roundTripper().RoundTrip(req)
	if rtErr != nil {
		return nil, rtErr
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if clearErr := t.store.Clear(req.Context()); clearErr != nil {
			t.log().ErrorContext(req.Context(), "clear token after auth failure", "error", clearErr)
		}
	}

	return resp, nil
}

func (t *bearerTransport) roundTripper() http.RoundTripper {
	if t.base != nil {
		return t.base
	}
	return http.DefaultTransport
}

func (t *bearerTransport) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return slog.Default()
}
