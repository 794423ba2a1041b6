package backend

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
	apperrors "github.com/roktoseba/ui-gateway/internal/errors"
	"github.com/roktoseba/ui-gateway/internal/ports"
)

// ExchangeToken exchanges a known email for a backend bearer token.
// POST /jwt. Callable without a token already present.
func (c *Client) ExchangeToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errors.New("email is required")
	}

	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/jwt",
		body:   map[string]string{"email": email},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", apperrors.Malformed("token exchange", errors.New("empty token in response"))
	}
	return out.Token, nil
}

// UpsertProfile writes the identity's profile fields into the backend user
// record. PUT /users. Idempotent; safe to call on every sign-in.
func (c *Client) UpsertProfile(ctx context.Context, p ports.ProfileUpsert) error {
	if p.Email == "" {
		return errors.New("email is required")
	}
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   "/users",
		body:   p,
	}, nil)
}

// WhoAmI fetches the caller's authoritative user record. GET /users/me.
// Requires a bearer token.
func (a *AuthorizedClient) WhoAmI(ctx context.Context) (domainauth.UserRecord, error) {
	var record domainauth.UserRecord
	err := a.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/users/me",
	}, &record)
	return record, err
}

// UpdateProfile edits the caller's own profile. PATCH /users/me.
func (a *AuthorizedClient) UpdateProfile(ctx context.Context, patch ProfilePatch) (domainauth.UserRecord, error) {
	var record domainauth.UserRecord
	err := a.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/users/me",
		body:   patch,
	}, &record)
	return record, err
}

// Compile-time conformance to the session core's ports.
var (
	_ ports.Directory  = (*Client)(nil)
	_ ports.RoleReader = (*AuthorizedClient)(nil)
)
