package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
	"github.com/roktoseba/ui-gateway/internal/ports"
)

// Metrics is the slice of the metrics client the session core emits to.
type Metrics interface {
	Incr(name string)
}

// nopMetrics is used when no metrics sink is configured.
type nopMetrics struct{}

func (nopMetrics) Incr(string) {}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Directory ports.Directory
	Tokens    ports.TokenStore
	Provider  ports.IdentityProvider
	Roles     *RoleResolver
	Logger    *slog.Logger
	Metrics   Metrics
}

// SessionManager runs the identity session state machine for one browser
// session. It consumes identity-change events, keeps the token slot in sync
// with the latest event, and drives role refetches on email changes.
//
// Transitions are tagged with a monotonically increasing sequence number; the
// async result of any transition that is no longer the latest is discarded,
// so the token slot always reflects the last emitted identity event even when
// completions arrive out of order.
type SessionManager struct {
	directory ports.Directory
	tokens    ports.TokenStore
	provider  ports.IdentityProvider
	roles     *RoleResolver
	logger    *slog.Logger
	metrics   Metrics

	lifetime context.Context
	stop     context.CancelFunc
	wg       sync.WaitGroup

	mu             sync.Mutex
	seq            uint64
	state          domainauth.SessionState
	identity       *domainauth.Identity
	resolving      bool
	cancelInFlight context.CancelFunc
}

// NewSessionManager constructs a new SessionManager in the Unknown state.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionManager{
		directory: opts.Directory,
		tokens:    opts.Tokens,
		provider:  opts.Provider,
		roles:     opts.Roles,
		logger:    logger,
		metrics:   metrics,
		lifetime:  ctx,
		stop:      cancel,
		state:     domainauth.StateUnknown,
	}
}

// Start subscribes the manager to the identity stream and consumes events in
// publish order until Close or stream close.
func (m *SessionManager) Start(stream *IdentityStream) {
	events, unsubscribe := stream.Subscribe()
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer unsubscribe()
		for {
			select {
			case <-m.lifetime.Done():
				return
			case identity, ok := <-events:
				if !ok {
					return
				}
				m.Apply(identity)
			}
		}
	}()
}

// Apply processes one identity-change event. A nil identity means signed out:
// the token slot is cleared synchronously and the session becomes Anonymous
// with no further async work. A non-nil identity enters Resolving and kicks
// off the upsert-then-exchange sequence asynchronously.
func (m *SessionManager) Apply(identity *domainauth.Identity) {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	if m.cancelInFlight != nil {
		// A newer event supersedes any in-flight resolution.
		m.cancelInFlight()
		m.cancelInFlight = nil
	}

	if identity == nil {
		m.identity = nil
		m.state = domainauth.StateAnonymous
		m.resolving = false
		// Clear while still holding the lock so a concurrent stale resolution
		// cannot interleave its write between the state change and the clear.
		if err := m.tokens.Clear(m.lifetime); err != nil {
			m.logger.Error("clear token on sign-out event", "error", err)
		}
		m.mu.Unlock()
		if m.roles != nil {
			m.roles.SetEmail("")
		}
		return
	}

	id := *identity
	m.identity = &id
	m.state = domainauth.StateResolving
	m.resolving = true

	resolveCtx, cancel := context.WithCancel(m.lifetime)
	m.cancelInFlight = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go m.resolve(resolveCtx, seq, id)
}

// resolve performs the per-login sequence: (a) idempotent profile upsert,
// (b) email-for-token exchange on the unauthenticated client, (c) token slot
// update. Failures of (a) or (b) clear the slot but still leave the session
// Authenticated: "has identity" and "has valid token" are independent facts,
// and the UI shell stays up while API calls surface 401s.
func (m *SessionManager) resolve(ctx context.Context, seq uint64, id domainauth.Identity) {
	defer m.wg.Done()

	token, err := m.exchange(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.seq {
		// Superseded by a newer identity event; discard regardless of outcome.
		m.metrics.Incr("session.resolve.superseded")
		return
	}

	m.state = domainauth.StateAuthenticated
	m.resolving = false
	m.cancelInFlight = nil

	if err != nil {
		m.metrics.Incr("session.token_exchange.failure")
		m.logger.Warn("token exchange failed; keeping identity without token",
			slog.String("email", id.Email), slog.Any("error", err))
		if clearErr := m.tokens.Clear(m.lifetime); clearErr != nil {
			m.logger.Error("clear token after failed exchange", "error", clearErr)
		}
	} else {
		m.metrics.Incr("session.token_exchange.success")
		if setErr := m.tokens.Set(m.lifetime, token); setErr != nil {
			m.logger.Error("store token", "error", setErr)
		}
	}

	if m.roles != nil {
		m.roles.SetEmail(id.Email)
	}
}

func (m *SessionManager) exchange(ctx context.Context, id domainauth.Identity) (string, error) {
	if err := m.directory.UpsertProfile(ctx, ports.ProfileUpsert{
		Name:   id.Name,
		Email:  id.Email,
		Avatar: id.AvatarURL,
	}); err != nil {
		return "", fmt.Errorf("upsert profile: %w", err)
	}
	token, err := m.directory.ExchangeToken(ctx, id.Email)
	if err != nil {
		return "", fmt.Errorf("exchange token: %w", err)
	}
	return token, nil
}

// Snapshot returns a point-in-time view of the session.
func (m *SessionManager) Snapshot() domainauth.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := domainauth.Snapshot{State: m.state, Resolving: m.resolving}
	if m.identity != nil {
		id := *m.identity
		snap.Identity = &id
	}
	return snap
}

// SignOut clears the token slot before invoking the provider's sign-out, so
// no request issued during teardown can pick up a stale token, then applies
// the signed-out transition.
func (m *SessionManager) SignOut(ctx context.Context) error {
	snap := m.Snapshot()

	if err := m.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}

	m.Apply(nil)

	if snap.Identity != nil {
		if err := m.provider.SignOut(ctx, *snap.Identity); err != nil {
			// Local state is already Anonymous; surface the provider error.
			return fmt.Errorf("provider sign-out: %w", err)
		}
	}
	return nil
}

// Close tears the manager down: pending resolutions are canceled and their
// results can no longer update state.
func (m *SessionManager) Close() {
	m.stop()
	m.wg.Wait()
}
