package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
)

func TestGetAuthResult_DefaultsToUnauthenticated(t *testing.T) {
	t.Parallel()

	result := GetAuthResult(context.Background())
	assert.Equal(t, domainauth.KindUnauthenticated, result.Kind)
	assert.False(t, result.Authenticated())
}

func TestSetAndGetAuthResult(t *testing.T) {
	t.Parallel()

	want := domainauth.Result{
		Kind:     domainauth.KindBearerUser,
		Identity: domainauth.Identity{UserID: "u1", OrganizationID: "org1"},
	}
	ctx := SetAuthResult(context.Background(), want)
	assert.Equal(t, want, GetAuthResult(ctx))
}

func TestCallerIdentity_AppliesViewAs(t *testing.T) {
	t.Parallel()

	session := &domainauth.Session{
		ID:         "s1",
		UserID:     "root",
		Role:       domainauth.RoleSuperAdmin,
		ViewAsRole: domainauth.RoleManager,
	}
	ctx := SetAuthResult(context.Background(), domainauth.Result{
		Kind:     domainauth.KindSessionUser,
		Identity: domainauth.Identity{UserID: "root", Role: domainauth.RoleSuperAdmin},
		Session:  session,
	})

	identity, ok := CallerIdentity(ctx)
	require.True(t, ok)
	assert.Equal(t, domainauth.RoleManager, identity.Role)
}

func TestCallerIdentity_ViewAsIgnoredForNonSuperAdmin(t *testing.T) {
	t.Parallel()

	session := &domainauth.Session{
		ID:         "s1",
		UserID:     "u1",
		Role:       domainauth.RoleMember,
		ViewAsRole: domainauth.RoleAdmin,
	}
	ctx := SetAuthResult(context.Background(), domainauth.Result{
		Kind:     domainauth.KindSessionUser,
		Identity: domainauth.Identity{UserID: "u1", Role: domainauth.RoleMember},
		Session:  session,
	})

	identity, ok := CallerIdentity(ctx)
	require.True(t, ok)
	assert.Equal(t, domainauth.RoleMember, identity.Role)
}

func TestCallerIdentity_Unauthenticated(t *testing.T) {
	t.Parallel()

	_, ok := CallerIdentity(context.Background())
	assert.False(t, ok)
}

func TestGetSessionFromContext(t *testing.T) {
	t.Parallel()

	session := &domainauth.Session{ID: "s1", UserID: "u1"}
	ctx := SetAuthResult(context.Background(), domainauth.Result{
		Kind:    domainauth.KindSessionUser,
		Session: session,
	})
	assert.Same(t, session, GetSessionFromContext(ctx))

	// Bearer logins carry no session.
	ctx = SetAuthResult(context.Background(), domainauth.Result{
		Kind:     domainauth.KindBearerUser,
		Identity: domainauth.Identity{UserID: "u1"},
	})
	assert.Nil(t, GetSessionFromContext(ctx))
}

func TestOrganizationContext(t *testing.T) {
	t.Parallel()

	_, ok := GetOrganizationFromContext(context.Background())
	assert.False(t, ok)

	org := &model.Organization{ID: "org1"}
	ctx := SetOrganizationInContext(context.Background(), org)
	got, ok := GetOrganizationFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, org, got)

	// Nil org leaves the context untouched.
	ctx = SetOrganizationInContext(context.Background(), nil)
	_, ok = GetOrganizationFromContext(ctx)
	assert.False(t, ok)
}
