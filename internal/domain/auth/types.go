package auth

// Package auth contains domain-level types for identity, sessions, and roles.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role as stored in the
// backend user record. Keep string form for easy persistence and JSON.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// ParseRole coerces an arbitrary string from the backend into a member of
// the closed role enumeration. Unknown or malformed values fall back to
// RoleDonor, the lowest-privilege role; a string outside the enumeration is
// never trusted as a role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return Role(s)
	default:
		return RoleDonor
	}
}

// AtLeastVolunteer reports whether the role grants volunteer-level access.
func (r Role) AtLeastVolunteer() bool { return r == RoleVolunteer || r == RoleAdmin }

// IsAdmin reports whether the role grants admin-level access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Identity represents the authenticated principal returned by the identity
// provider. Email is the stable join key to the backend user record; the
// identity is observed, never mutated, by this system.
type Identity struct {
	ProviderID string `json:"provider_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
}

// SessionState is the phase of the identity session state machine.
type SessionState string

const (
	// StateUnknown is the initial phase before the first identity event.
	StateUnknown SessionState = "unknown"
	// StateResolving covers the window from an identity transition until the
	// profile upsert and token exchange settle.
	StateResolving SessionState = "resolving"
	// StateAnonymous means the latest identity event carried no identity.
	StateAnonymous SessionState = "anonymous"
	// StateAuthenticated means an identity is present; a bearer token may or
	// may not be (the two facts are independent).
	StateAuthenticated SessionState = "authenticated"
)

// Snapshot is a point-in-time view of the identity session.
type Snapshot struct {
	Identity  *Identity
	State     SessionState
	Resolving bool
}

// Authenticated reports whether the snapshot carries a resolved identity.
func (s Snapshot) Authenticated() bool { return s.State == StateAuthenticated && s.Identity != nil }

// GatewaySession is the browser-session record the gateway persists. ID is an
// opaque session identifier stored in the session cookie; it scopes one token
// slot and one session manager.
type GatewaySession struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserRecord is the backend-owned authoritative copy of a user's profile,
// role, and status. This system only reads it (role resolution) and writes
// to it via upsert-on-login and profile-edit flows.
type UserRecord struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	BloodGroup string `json:"bloodGroup"`
}

// User statuses as stored by the backend.
const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)
