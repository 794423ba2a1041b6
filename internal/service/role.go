package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
	"github.com/roktoseba/ui-gateway/internal/ports"
)

// RoleResolver produces the authorization role for the current identity's
// email. With no email it yields no role at all, without any network call.
// With an email it issues one authenticated who-am-I read, coerces the
// returned role into the closed enumeration, and fails open into the
// lowest-privilege role (donor) on any failure — a recorded product decision,
// not an accident.
//
// A fetch started for one email never updates state once the email has
// changed; concurrent fetches for the same email are coalesced.
type RoleResolver struct {
	reader  ports.RoleReader
	logger  *slog.Logger
	metrics Metrics
	group   singleflight.Group

	lifetime context.Context
	stop     context.CancelFunc

	mu    sync.Mutex
	email string
	role  *domainauth.Role
}

// RoleResolverOptions groups dependencies for RoleResolver.
type RoleResolverOptions struct {
	Reader  ports.RoleReader
	Logger  *slog.Logger
	Metrics Metrics
}

// NewRoleResolver constructs a RoleResolver with no current email.
func NewRoleResolver(opts RoleResolverOptions) *RoleResolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &RoleResolver{
		reader:   opts.Reader,
		logger:   logger,
		metrics:  metrics,
		lifetime: ctx,
		stop:     cancel,
	}
}

// SetEmail records the identity email the resolver serves and drops any
// cached role. It is called on every email change in either direction;
// setting the same email again is a no-op (re-renders never refetch).
func (r *RoleResolver) SetEmail(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.email == email {
		return
	}
	r.email = email
	r.role = nil
}

// Role resolves the role for the current email. A nil result means "no
// identity, no role". The call blocks until the backend read settles or ctx
// is done; coalesced callers share one read.
func (r *RoleResolver) Role(ctx context.Context) *domainauth.Role {
	r.mu.Lock()
	email := r.email
	if email == "" {
		r.mu.Unlock()
		return nil
	}
	if r.role != nil {
		cached := *r.role
		r.mu.Unlock()
		return &cached
	}
	r.mu.Unlock()

	ch := r.group.DoChan(email, func() (any, error) {
		// Fetch on the resolver's lifetime so one caller's cancellation does
		// not abort the read other coalesced callers are waiting on.
		return r.fetch(r.lifetime, email)
	})

	select {
	case <-ctx.Done():
		// The caller is gone; whoever still waits gets the shared result.
		fallback := domainauth.RoleDonor
		return &fallback
	case res := <-ch:
		role, ok := res.Val.(domainauth.Role)
		if !ok {
			role = domainauth.RoleDonor
		}
		return &role
	}
}

// fetch performs the who-am-I read and coerces the outcome. It returns a
// role in every case; failures are logged and fall back to donor without
// being cached, so the next request retries.
func (r *RoleResolver) fetch(ctx context.Context, email string) (domainauth.Role, error) {
	record, err := r.reader.WhoAmI(ctx)
	if err != nil {
		r.metrics.Incr("role.fetch.fallback")
		r.logger.Warn("role fetch failed; falling back to donor",
			slog.String("email", email), slog.Any("error", err))
		return domainauth.RoleDonor, nil
	}

	role := domainauth.ParseRole(record.Role)
	if string(role) != record.Role {
		r.metrics.Incr("role.fetch.coerced")
		r.logger.Warn("backend returned role outside the enumeration",
			slog.String("email", email), slog.String("role", record.Role))
	}

	r.mu.Lock()
	if r.email == email {
		// Only cache if this fetch is still for the current email.
		cached := role
		r.role = &cached
	}
	r.mu.Unlock()

	return role, nil
}

// Close releases the resolver; pending fetches are canceled.
func (r *RoleResolver) Close() {
	r.stop()
}
