package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"strconv"
	"sync"
	"time"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
	"github.com/roktoseba/ui-gateway/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenStore          = (*MemoryTokenStore)(nil)
	_ ports.IdentityProvider    = (*MockIdentityProvider)(nil)
	_ ports.Directory           = (*FakeDirectory)(nil)
	_ ports.RoleReader          = (*FakeRoleReader)(nil)
	_ ports.GatewaySessionStore = (*MemorySessionStore)(nil)
)

// MemoryTokenStore is an in-memory single-slot token store.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string

	SetErr   error
	ClearErr error
	GetErr   error
}

func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (s *MemoryTokenStore) Set(_ context.Context, token string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(_ context.Context) error {
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *MemoryTokenStore) Get(_ context.Context) (string, error) {
	if s.GetErr != nil {
		return "", s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// MockIdentityProvider simulates the identity provider with deterministic
// state/nonce handling.
type MockIdentityProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)
	SignOutFunc  func(ctx context.Context, identity domainauth.Identity) error

	AuthURL     string
	DefaultUser domainauth.Identity

	mu        sync.Mutex
	callCount int
	SignedOut []string
}

// NewMockIdentityProvider creates a MockIdentityProvider with sensible defaults.
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultUser: domainauth.Identity{
			ProviderID: "mock-user-1",
			Email:      "mock.user@example.com",
			Name:       "Mock User",
			AvatarURL:  "https://img.example/mock.png",
		},
	}
}

func (m *MockIdentityProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.mu.Unlock()
	return m.AuthURL, "state-" + itoa(n), "nonce-" + itoa(n), nil
}

func (m *MockIdentityProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	return m.DefaultUser, nil
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, identity domainauth.Identity) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, identity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignedOut = append(m.SignedOut, identity.Email)
	return nil
}

// FakeDirectory is a scriptable backend directory. Delay injection makes the
// ordering hazards around slow upsert/exchange sequences reproducible.
type FakeDirectory struct {
	UpsertErr   error
	ExchangeErr error

	// TokenFor maps email to the token the exchange returns. When nil, the
	// token is "token-for-" + email.
	TokenFor map[string]string

	// UpsertDelay and ExchangeDelay suspend the corresponding call, honoring
	// context cancellation.
	UpsertDelay   time.Duration
	ExchangeDelay time.Duration

	mu        sync.Mutex
	Upserts   []ports.ProfileUpsert
	Exchanges []string
}

func (d *FakeDirectory) UpsertProfile(ctx context.Context, p ports.ProfileUpsert) error {
	if err := sleepCtx(ctx, d.UpsertDelay); err != nil {
		return err
	}
	d.mu.Lock()
	d.Upserts = append(d.Upserts, p)
	d.mu.Unlock()
	return d.UpsertErr
}

func (d *FakeDirectory) ExchangeToken(ctx context.Context, email string) (string, error) {
	if err := sleepCtx(ctx, d.ExchangeDelay); err != nil {
		return "", err
	}
	d.mu.Lock()
	d.Exchanges = append(d.Exchanges, email)
	d.mu.Unlock()
	if d.ExchangeErr != nil {
		return "", d.ExchangeErr
	}
	if d.TokenFor != nil {
		return d.TokenFor[email], nil
	}
	return "token-for-" + email, nil
}

// UpsertCount returns how many upserts have been recorded.
func (d *FakeDirectory) UpsertCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Upserts)
}

// FakeRoleReader is a scriptable who-am-I reader that counts calls.
type FakeRoleReader struct {
	Record domainauth.UserRecord
	Err    error
	Delay  time.Duration

	mu    sync.Mutex
	calls int
}

func (f *FakeRoleReader) WhoAmI(ctx context.Context) (domainauth.UserRecord, error) {
	if err := sleepCtx(ctx, f.Delay); err != nil {
		return domainauth.UserRecord{}, err
	}
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.Err != nil {
		return domainauth.UserRecord{}, f.Err
	}
	return f.Record, nil
}

// Calls returns how many who-am-I calls have been made.
func (f *FakeRoleReader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// MemorySessionStore is an in-memory gateway session store.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.GatewaySession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.GatewaySession)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.GatewaySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (domainauth.GatewaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domainauth.GatewaySession{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// ErrSessionNotFound is returned when a session is not found.
var ErrSessionNotFound error = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
