package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
	"github.com/roktoseba/ui-gateway/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider   ports.IdentityProvider
	Sessions   ports.GatewaySessionStore
	Registry   *SessionRegistry
	SessionTTL time.Duration
}

// AuthService orchestrates the login and logout flows: it drives the identity
// provider, persists gateway session records, and feeds identity-change
// events into the per-session runtime.
type AuthService struct {
	provider   ports.IdentityProvider
	sessions   ports.GatewaySessionStore
	registry   *SessionRegistry
	sessionTTL time.Duration
}

// ErrSessionExpired is returned by GetSession when the session record has
// passed its expiry; callers treat it like an anonymous visitor.
var ErrSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{
		provider:   opts.Provider,
		sessions:   opts.Sessions,
		registry:   opts.Registry,
		sessionTTL: ttl,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth
// URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.GatewaySession
}

// CompleteLogin completes an authentication flow: it exchanges the code for
// an identity, persists a gateway session record, and publishes the
// identity-changed event into the session's runtime, which performs the
// profile upsert and bearer-token exchange asynchronously.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	session := domainauth.GatewaySession{
		ID:        uuid.New().String(),
		Identity:  identity,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	// The runtime is created fresh for a new session ID; publishing here is
	// the login-time identity-changed event.
	if rt := s.registry.Runtime(session.ID, nil); rt != nil {
		rt.Stream.Publish(&identity)
	}

	return &CompleteLoginResult{Session: session}, nil
}

// GetSession retrieves a gateway session record by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.GatewaySession, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Runtime returns the per-session runtime for a live gateway session,
// creating it (and replaying the restored identity) when the gateway has
// restarted since login.
func (s *AuthService) Runtime(session *domainauth.GatewaySession) *SessionRuntime {
	identity := session.Identity
	return s.registry.Runtime(session.ID, &identity)
}

// Logout signs the session out: token slot cleared before the provider
// sign-out, runtime removed, session record deleted.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to log out
	}

	if rt, ok := s.registry.Peek(sessionID); ok {
		if err := rt.Manager.SignOut(ctx); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}
	}
	s.registry.Remove(sessionID)

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
