package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleMember     Role = "member"
)

// roleLevels orders roles for hierarchy checks. Higher wins.
var roleLevels = map[Role]int{
	RoleMember:     0,
	RoleManager:    1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// AtLeast reports whether r meets or exceeds the required role.
// Unknown roles never satisfy any requirement.
func (r Role) AtLeast(required Role) bool {
	level, ok := roleLevels[r]
	reqLevel, reqOK := roleLevels[required]
	if !ok || !reqOK {
		return false
	}
	return level >= reqLevel
}

// Identity represents the authenticated principal for one request.
// It is recomputed per request and never persisted; tenant scoping
// downstream reads OrganizationID from here and nowhere else.
type Identity struct {
	UserID         string
	Email          string
	Role           Role
	OrganizationID string
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (random URL-safe string). CSRFSecret
// is created lazily on first token mint and replaced on every successful
// CSRF validation.
type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	OrganizationID string    `json:"organization_id"`
	CSRFSecret     string    `json:"csrf_secret,omitempty"`
	ViewAsRole     Role      `json:"view_as_role,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// EffectiveRole returns the role the session should act as. Super admins
// may impersonate a lower role via ViewAsRole; everyone else gets their
// real role regardless of what the session carries.
func (s Session) EffectiveRole() Role {
	if s.Role == RoleSuperAdmin && s.ViewAsRole != "" {
		return s.ViewAsRole
	}
	return s.Role
}

// Kind discriminates how a request was authenticated.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindSessionUser     Kind = "session"
	KindBearerUser      Kind = "bearer"
	KindDevBackdoorUser Kind = "backdoor"
)

// Result is the tagged outcome of the authenticator. Session is set only
// for KindSessionUser; dispatch on Kind rather than on field presence.
type Result struct {
	Kind     Kind
	Identity Identity
	Session  *Session
}

// Unauthenticated is the zero-value result for requests with no usable
// credentials.
var Unauthenticated = Result{Kind: KindUnauthenticated}

// Authenticated reports whether the result carries a resolved identity.
func (r Result) Authenticated() bool {
	return r.Kind != KindUnauthenticated && r.Kind != ""
}
