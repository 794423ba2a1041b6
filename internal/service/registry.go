package service

import (
	"log/slog"
	"sync"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
	"github.com/roktoseba/ui-gateway/internal/ports"
)

// SessionRuntime bundles the per-browser-session pieces: the identity event
// stream, the session manager consuming it, the role resolver, and the token
// slot they share.
type SessionRuntime struct {
	Stream  *IdentityStream
	Manager *SessionManager
	Roles   *RoleResolver
	Tokens  ports.TokenStore
}

// Close tears the runtime down in dependency order.
func (rt *SessionRuntime) Close() {
	rt.Stream.Close()
	rt.Manager.Close()
	rt.Roles.Close()
}

// SessionRegistryOptions groups dependencies for SessionRegistry.
type SessionRegistryOptions struct {
	Directory ports.Directory
	Provider  ports.IdentityProvider

	// TokenStores builds the durable token slot for a gateway session ID.
	TokenStores func(sessionID string) ports.TokenStore

	// RoleReaders builds the authorized who-am-I reader bound to a token slot.
	RoleReaders func(tokens ports.TokenStore) ports.RoleReader

	Logger  *slog.Logger
	Metrics Metrics
}

// SessionRegistry owns one SessionRuntime per active gateway session. Token
// slots are durable, so a runtime recreated after a gateway restart finds the
// session's token where it was left; the restored identity is replayed
// through the stream, which re-runs the idempotent upsert and token exchange
// exactly like a page reload does.
type SessionRegistry struct {
	opts SessionRegistryOptions

	mu       sync.Mutex
	runtimes map[string]*SessionRuntime
	closed   bool
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry(opts SessionRegistryOptions) *SessionRegistry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	return &SessionRegistry{
		opts:     opts,
		runtimes: make(map[string]*SessionRuntime),
	}
}

// Runtime returns the runtime for the gateway session, creating and starting
// it when absent. A non-nil restored identity is published into a freshly
// created runtime's stream; an existing runtime is returned as-is.
func (r *SessionRegistry) Runtime(sessionID string, restored *domainauth.Identity) *SessionRuntime {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	if rt, ok := r.runtimes[sessionID]; ok {
		return rt
	}

	tokens := r.opts.TokenStores(sessionID)
	roles := NewRoleResolver(RoleResolverOptions{
		Reader:  r.opts.RoleReaders(tokens),
		Logger:  r.opts.Logger,
		Metrics: r.opts.Metrics,
	})
	manager := NewSessionManager(SessionManagerOptions{
		Directory: r.opts.Directory,
		Tokens:    tokens,
		Provider:  r.opts.Provider,
		Roles:     roles,
		Logger:    r.opts.Logger,
		Metrics:   r.opts.Metrics,
	})

	rt := &SessionRuntime{
		Stream:  NewIdentityStream(),
		Manager: manager,
		Roles:   roles,
		Tokens:  tokens,
	}
	manager.Start(rt.Stream)

	if restored != nil {
		rt.Stream.Publish(restored)
	}

	r.runtimes[sessionID] = rt
	return rt
}

// Peek returns the runtime for the session without creating one.
func (r *SessionRegistry) Peek(sessionID string) (*SessionRuntime, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.runtimes[sessionID]
	return rt, ok
}

// Remove closes and forgets the session's runtime, if any.
func (r *SessionRegistry) Remove(sessionID string) {
	r.mu.Lock()
	rt, ok := r.runtimes[sessionID]
	if ok {
		delete(r.runtimes, sessionID)
	}
	r.mu.Unlock()
	if ok {
		rt.Close()
	}
}

// Close tears down every runtime.
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	r.closed = true
	runtimes := r.runtimes
	r.runtimes = make(map[string]*SessionRuntime)
	r.mu.Unlock()

	for _, rt := range runtimes {
		rt.Close()
	}
}
