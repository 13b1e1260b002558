package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating a login flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// ProviderIdentity is the principal returned by a login provider.
// Providers know nothing about organizations; the auth service resolves
// the provider identity to a user record to obtain role and tenant.
type ProviderIdentity struct {
	Subject string
	Email   string
}

// LoginProvider initiates and completes a login flow against an IdP.
type LoginProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the provider identity.
	Exchange(ctx context.Context, in ExchangeInput) (ProviderIdentity, error)
}

// SessionStore persists and retrieves user sessions. Implementations
// must provide atomic read/write per session ID; that is the only
// concurrency guarantee the middleware pipeline relies on.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// DemoTokenStore persists stateless demo identities keyed by an opaque
// bearer token.
type DemoTokenStore interface {
	Save(ctx context.Context, token string, identity domainauth.Identity) error
	Get(ctx context.Context, token string) (domainauth.Identity, error)
	Delete(ctx context.Context, token string) error
}
