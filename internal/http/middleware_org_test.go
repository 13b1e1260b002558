package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
)

func memberResult(orgID string) domainauth.Result {
	return domainauth.Result{
		Kind:     domainauth.KindSessionUser,
		Identity: domainauth.Identity{UserID: "u1", Role: domainauth.RoleMember, OrganizationID: orgID},
		Session:  &domainauth.Session{ID: "s1", UserID: "u1", Role: domainauth.RoleMember, OrganizationID: orgID},
	}
}

func serveOrgResolver(orgs OrganizationGetter, path string, result domainauth.Result) (*httptest.ResponseRecorder, *model.Organization) {
	var resolved *model.Organization
	handler := ResolveOrganization(orgs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved, _ = GetOrganizationFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(SetAuthResult(req.Context(), result))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, resolved
}

func TestResolveOrganization_PublicRouteSkipsResolution(t *testing.T) {
	w, resolved := serveOrgResolver(&fakeOrgGetter{}, "/api/business/plans", domainauth.Unauthenticated)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, resolved)
}

func TestResolveOrganization_Unauthenticated(t *testing.T) {
	w, _ := serveOrgResolver(&fakeOrgGetter{}, "/api/users", domainauth.Unauthenticated)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authentication_required", decodeErrorCode(t, w))
}

func TestResolveOrganization_ActiveOrg(t *testing.T) {
	org := &model.Organization{ID: "org1", Name: "Acme", PlanTier: plan.TierStarter, Status: model.OrgStatusActive}
	orgs := &fakeOrgGetter{orgs: map[string]*model.Organization{"org1": org}}

	w, resolved := serveOrgResolver(orgs, "/api/users", memberResult("org1"))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resolved)
	assert.Equal(t, "org1", resolved.ID)
}

func TestResolveOrganization_SuspendedOrg(t *testing.T) {
	org := &model.Organization{ID: "org1", Name: "Acme", Status: model.OrgStatusSuspended}
	orgs := &fakeOrgGetter{orgs: map[string]*model.Organization{"org1": org}}

	w, _ := serveOrgResolver(orgs, "/api/users", memberResult("org1"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "organization_suspended", decodeErrorCode(t, w))
}

func TestResolveOrganization_DeletedOrg(t *testing.T) {
	org := &model.Organization{ID: "org1", Name: "Acme", Status: model.OrgStatusDeleted}
	orgs := &fakeOrgGetter{orgs: map[string]*model.Organization{"org1": org}}

	w, _ := serveOrgResolver(orgs, "/api/users", memberResult("org1"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "organization_suspended", decodeErrorCode(t, w))
}

func TestResolveOrganization_MissingOrg(t *testing.T) {
	w, _ := serveOrgResolver(&fakeOrgGetter{}, "/api/users", memberResult("ghost"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "organization_required", decodeErrorCode(t, w))
}

func TestResolveOrganization_RepositoryError(t *testing.T) {
	orgs := &fakeOrgGetter{err: errors.New("connection refused")}

	w, _ := serveOrgResolver(orgs, "/api/users", memberResult("org1"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Raw repository errors never leak to clients.
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestResolveOrganization_SuperAdminWithoutOrg(t *testing.T) {
	result := domainauth.Result{
		Kind:     domainauth.KindSessionUser,
		Identity: domainauth.Identity{UserID: "root", Role: domainauth.RoleSuperAdmin},
		Session:  &domainauth.Session{ID: "s1", UserID: "root", Role: domainauth.RoleSuperAdmin},
	}

	w, resolved := serveOrgResolver(&fakeOrgGetter{}, "/api/admin/organizations", result)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, resolved)
}

func TestResolveOrganization_MemberWithoutOrg(t *testing.T) {
	// The resolver leaves the context empty and lets the route decide;
	// tenant routes reject later through requireOrg.
	result := domainauth.Result{
		Kind:     domainauth.KindBearerUser,
		Identity: domainauth.Identity{UserID: "u1", Role: domainauth.RoleMember},
	}

	w, resolved := serveOrgResolver(&fakeOrgGetter{}, "/api/users", result)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, resolved)
}

func TestRequireOrg(t *testing.T) {
	// Without a tenant on the context.
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	org, ok := requireOrg(w, req)
	assert.False(t, ok)
	assert.Nil(t, org)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "organization_required", decodeErrorCode(t, w))

	// With one.
	want := &model.Organization{ID: "org1", Status: model.OrgStatusActive}
	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = req.WithContext(SetOrganizationInContext(req.Context(), want))
	w = httptest.NewRecorder()
	org, ok = requireOrg(w, req)
	assert.True(t, ok)
	assert.Same(t, want, org)
}
