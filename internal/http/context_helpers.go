package httpx

import (
	"context"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
)

// authResultKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same keys.
type authResultKey struct{}

type orgKey struct{}

// SetAuthResult returns a child context carrying the authenticator outcome.
func SetAuthResult(ctx context.Context, result domainauth.Result) context.Context {
	return context.WithValue(ctx, authResultKey{}, result)
}

// GetAuthResult returns the authenticator outcome for this request.
// Requests that never passed through the authenticator read as
// unauthenticated.
func GetAuthResult(ctx context.Context) domainauth.Result {
	if result, ok := ctx.Value(authResultKey{}).(domainauth.Result); ok {
		return result
	}
	return domainauth.Unauthenticated
}

// CallerIdentity returns the effective identity for this request and a
// boolean indicating presence. For session logins the role reflects any
// active view-as override, so handlers authorize against what the
// caller is acting as, not what they are.
func CallerIdentity(ctx context.Context) (domainauth.Identity, bool) {
	result := GetAuthResult(ctx)
	if !result.Authenticated() {
		return domainauth.Identity{}, false
	}

	identity := result.Identity
	if result.Kind == domainauth.KindSessionUser && result.Session != nil {
		identity.Role = result.Session.EffectiveRole()
	}
	return identity, true
}

// GetSessionFromContext returns the session for session-authenticated
// requests, nil otherwise. Bearer and backdoor logins carry no session.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	result := GetAuthResult(ctx)
	if result.Kind != domainauth.KindSessionUser {
		return nil
	}
	return result.Session
}

// SetOrganizationInContext returns a child context carrying the resolved tenant.
// If org is nil, the original ctx is returned unchanged.
func SetOrganizationInContext(ctx context.Context, org *model.Organization) context.Context {
	if org == nil {
		return ctx
	}
	return context.WithValue(ctx, orgKey{}, org)
}

// GetOrganizationFromContext returns the resolved tenant and a boolean
// indicating presence. Handlers scope every repository call to this
// organization's ID and never to anything in the request body.
func GetOrganizationFromContext(ctx context.Context) (*model.Organization, bool) {
	if org, ok := ctx.Value(orgKey{}).(*model.Organization); ok && org != nil {
		return org, true
	}
	return nil, false
}
