package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/backend; orchestration
// in internal/service.

import (
	"context"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
)

// TokenStore is a durable single-slot holder for the current bearer token.
// One writer at a time (the session manager or the authorized transport's
// error interceptor); many readers. An empty string means no token. No local
// expiry check is performed; expiry is discovered by a rejected call.
type TokenStore interface {
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Get(ctx context.Context) (string, error)
}

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// IdentityProvider initiates and completes an authentication flow against the
// external identity provider.
type IdentityProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)

	// SignOut ends the provider-side session for the identity, if the provider
	// supports it. Implementations without a remote sign-out return nil.
	SignOut(ctx context.Context, identity domainauth.Identity) error
}

// ProfileUpsert carries the identity fields written to the backend user
// record on every sign-in. The operation is idempotent.
type ProfileUpsert struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Directory is the slice of the backend REST API the session core depends on:
// the profile upsert and email-for-token exchange (both callable before a
// bearer token exists).
type Directory interface {
	UpsertProfile(ctx context.Context, p ProfileUpsert) error
	ExchangeToken(ctx context.Context, email string) (string, error)
}

// RoleReader fetches the caller's authoritative user record from the backend.
// Requires a bearer token; used by the role resolver.
type RoleReader interface {
	WhoAmI(ctx context.Context) (domainauth.UserRecord, error)
}

// GatewaySessionStore persists browser-session records keyed by opaque ID.
type GatewaySessionStore interface {
	Save(ctx context.Context, sess domainauth.GatewaySession) error
	Get(ctx context.Context, id string) (domainauth.GatewaySession, error)
	Delete(ctx context.Context, id string) error
}
