package httpx

import (
	"context"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
	"github.com/roktoseba/ui-gateway/internal/service"
)

// RequestSession bundles the gateway session record with its live runtime
// (identity snapshot, role resolver, token slot) for use by handlers.
type RequestSession struct {
	Session *domainauth.GatewaySession
	Runtime *service.SessionRuntime
}

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given request session.
// If rs is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, rs *RequestSession) context.Context {
	if rs == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, rs)
}

// GetSessionFromContext returns the request session from context and a boolean
// indicating presence.
func GetSessionFromContext(ctx context.Context) (*RequestSession, bool) {
	if rs, ok := ctx.Value(sessionKey{}).(*RequestSession); ok && rs != nil {
		return rs, true
	}
	return nil, false
}

// SnapshotFromContext returns the identity snapshot for the current request.
// Requests with no session at all read as anonymous.
func SnapshotFromContext(ctx context.Context) domainauth.Snapshot {
	rs, ok := GetSessionFromContext(ctx)
	if !ok || rs.Runtime == nil {
		return domainauth.Snapshot{State: domainauth.StateAnonymous}
	}
	return rs.Runtime.Manager.Snapshot()
}
