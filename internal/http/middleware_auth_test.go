package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
)

func serveAuthenticated(t *testing.T, svc AuthServiceInterface, allowBackdoor bool, req *http.Request) domainauth.Result {
	t.Helper()

	var got domainauth.Result
	handler := Authenticate(svc, allowBackdoor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetAuthResult(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	return got
}

func TestAuthenticate_SessionCookie(t *testing.T) {
	session := &domainauth.Session{
		ID:             "sess-1",
		UserID:         "u1",
		Email:          "u1@example.com",
		Role:           domainauth.RoleManager,
		OrganizationID: "org1",
	}
	svc := &fakeAuthService{
		getSessionFunc: func(_ context.Context, sessionID string) (*domainauth.Session, error) {
			if sessionID == "sess-1" {
				return session, nil
			}
			return nil, errors.New("session not found")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})

	result := serveAuthenticated(t, svc, false, req)
	assert.Equal(t, domainauth.KindSessionUser, result.Kind)
	assert.Equal(t, "u1", result.Identity.UserID)
	assert.Equal(t, "org1", result.Identity.OrganizationID)
	assert.Same(t, session, result.Session)
}

func TestAuthenticate_ExpiredSessionFallsThrough(t *testing.T) {
	svc := &fakeAuthService{
		getSessionFunc: func(_ context.Context, _ string) (*domainauth.Session, error) {
			return nil, errors.New("session expired")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})

	result := serveAuthenticated(t, svc, false, req)
	assert.Equal(t, domainauth.KindUnauthenticated, result.Kind)
	assert.False(t, result.Authenticated())
}

func TestAuthenticate_BearerToken(t *testing.T) {
	svc := &fakeAuthService{
		authenticateBearerFunc: func(_ context.Context, token string) (*domainauth.Identity, error) {
			if token == "demo-token" {
				return &domainauth.Identity{UserID: "u2", OrganizationID: "org1", Role: domainauth.RoleMember}, nil
			}
			return nil, errors.New("unknown token")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer demo-token")

	result := serveAuthenticated(t, svc, false, req)
	assert.Equal(t, domainauth.KindBearerUser, result.Kind)
	assert.Equal(t, "u2", result.Identity.UserID)
	assert.Nil(t, result.Session)
}

func TestAuthenticate_BackdoorOnlyWhenAllowed(t *testing.T) {
	svc := &fakeAuthService{
		backdoorIdentityFunc: func(_ context.Context, user, key string) (*domainauth.Identity, error) {
			if user == "dev@example.com" && key == "dev-key" {
				return &domainauth.Identity{UserID: "dev", Role: domainauth.RoleSuperAdmin}, nil
			}
			return nil, errors.New("bad credentials")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(BackdoorUserHeader, "dev@example.com")
	req.Header.Set(BackdoorKeyHeader, "dev-key")

	result := serveAuthenticated(t, svc, true, req)
	assert.Equal(t, domainauth.KindDevBackdoorUser, result.Kind)

	// Same request with the backdoor disabled resolves to nothing.
	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(BackdoorUserHeader, "dev@example.com")
	req.Header.Set(BackdoorKeyHeader, "dev-key")
	result = serveAuthenticated(t, svc, false, req)
	assert.Equal(t, domainauth.KindUnauthenticated, result.Kind)
}

func TestAuthenticate_BackdoorRequiresBothHeaders(t *testing.T) {
	// The service is never consulted when either header is absent.
	svc := &fakeAuthService{
		backdoorIdentityFunc: func(_ context.Context, _, _ string) (*domainauth.Identity, error) {
			t.Fatal("BackdoorIdentity called with an incomplete header pair")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(BackdoorKeyHeader, "dev-key")
	result := serveAuthenticated(t, svc, true, req)
	assert.Equal(t, domainauth.KindUnauthenticated, result.Kind)

	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(BackdoorUserHeader, "dev@example.com")
	result = serveAuthenticated(t, svc, true, req)
	assert.Equal(t, domainauth.KindUnauthenticated, result.Kind)
}

func TestAuthenticate_NoCredentials(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	result := serveAuthenticated(t, &fakeAuthService{}, true, req)
	assert.Equal(t, domainauth.KindUnauthenticated, result.Kind)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Bearer  padded ", "padded"},
		{"Bearer", ""},
		{"Basic abc123", ""},
		{"", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, bearerToken(req), "header %q", tt.header)
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth()(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authentication_required", decodeErrorCode(t, w))

	result := domainauth.Result{Kind: domainauth.KindBearerUser, Identity: domainauth.Identity{UserID: "u1"}}
	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = req.WithContext(SetAuthResult(req.Context(), result))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domainauth.RoleAdmin)(okHandler(nil))

	serve := func(result domainauth.Result) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req = req.WithContext(SetAuthResult(req.Context(), result))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	// No identity at all.
	w := serve(domainauth.Unauthenticated)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Below the required role.
	w = serve(domainauth.Result{
		Kind:     domainauth.KindBearerUser,
		Identity: domainauth.Identity{UserID: "u1", Role: domainauth.RoleManager},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "insufficient_permissions", decodeErrorCode(t, w))

	// At the required role.
	w = serve(domainauth.Result{
		Kind:     domainauth.KindBearerUser,
		Identity: domainauth.Identity{UserID: "u1", Role: domainauth.RoleAdmin},
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_ViewAsLowersEffectiveRole(t *testing.T) {
	handler := RequireRole(domainauth.RoleAdmin)(okHandler(nil))

	session := &domainauth.Session{
		ID:         "s1",
		UserID:     "root",
		Role:       domainauth.RoleSuperAdmin,
		ViewAsRole: domainauth.RoleMember,
	}
	result := domainauth.Result{
		Kind:     domainauth.KindSessionUser,
		Identity: domainauth.Identity{UserID: "root", Role: domainauth.RoleSuperAdmin},
		Session:  session,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/organizations", nil)
	req = req.WithContext(SetAuthResult(req.Context(), result))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	// Acting as a member, the super admin is denied admin routes.
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")

	assert.Equal(t, "1.1.1.1", clientIP(req, true))
	assert.Equal(t, "9.9.9.9", clientIP(req, false))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	bare.RemoteAddr = "9.9.9.9:1234"
	assert.Equal(t, "9.9.9.9", clientIP(bare, true))
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders()(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	// Forwarded HTTPS turns on HSTS.
	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}
