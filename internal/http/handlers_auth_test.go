package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whirkplace/whirkplace-api/internal/data"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

func TestAuthHandlers_Login(t *testing.T) {
	svc := &fakeAuthService{
		beginLoginFunc: func(_ context.Context, redirectURL string) (*service.BeginLoginResult, error) {
			assert.Equal(t, "/dashboard", redirectURL)
			return &service.BeginLoginResult{
				AuthURL: "https://idp.example.com/authorize?state=abc",
				State:   "abc",
				Nonce:   "xyz",
			}, nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login?redirect_uri=/dashboard", nil)
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://idp.example.com/authorize?state=abc", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	names := make(map[string]string, len(cookies))
	for _, c := range cookies {
		names[c.Name] = c.Value
	}
	assert.Equal(t, "abc", names[oauthStateCookie])
	assert.Equal(t, "xyz", names[oauthNonceCookie])
	assert.Equal(t, "/dashboard", names["post_login_redirect"])
}

func TestAuthHandlers_Login_RejectsAbsoluteRedirect(t *testing.T) {
	svc := &fakeAuthService{
		beginLoginFunc: func(_ context.Context, redirectURL string) (*service.BeginLoginResult, error) {
			// The open-redirect candidate collapses to "/".
			assert.Equal(t, "/", redirectURL)
			return &service.BeginLoginResult{AuthURL: "https://idp.example.com/authorize"}, nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login?redirect_uri=https://evil.example.com", nil)
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAuthHandlers_Callback(t *testing.T) {
	session := &domainauth.Session{
		ID:        "sess-1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	svc := &fakeAuthService{
		completeLoginFunc: func(_ context.Context, input service.CompleteLoginInput) (*domainauth.Session, error) {
			assert.Equal(t, "the-code", input.Code)
			assert.Equal(t, "abc", input.State)
			assert.Equal(t, "xyz", input.Nonce)
			return session, nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=the-code&state=abc", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "abc"})
	req.AddCookie(&http.Cookie{Name: oauthNonceCookie, Value: "xyz"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/teams"})
	w := httptest.NewRecorder()
	h.Callback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/teams", w.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "sess-1", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestAuthHandlers_Callback_StateMismatch(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=the-code&state=abc", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "different"})
	w := httptest.NewRecorder()
	h.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_state", decodeErrorCode(t, w))
}

func TestAuthHandlers_Callback_MissingCode(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?state=abc", nil)
	w := httptest.NewRecorder()
	h.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_code", decodeErrorCode(t, w))
}

func TestAuthHandlers_Logout(t *testing.T) {
	loggedOut := ""
	svc := &fakeAuthService{
		logoutFunc: func(_ context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()
	h.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-1", loggedOut)

	// Both the session and CSRF cookies are cleared.
	cleared := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared[c.Name] = true
		}
	}
	assert.True(t, cleared[SessionCookieName])
	assert.True(t, cleared[CSRFCookieName])
}

func TestAuthHandlers_Session_Authenticated(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	session := &domainauth.Session{
		ID:             "sess-1",
		UserID:         "u1",
		Email:          "u1@example.com",
		Role:           domainauth.RoleAdmin,
		OrganizationID: "org1",
		ExpiresAt:      time.Now().Add(time.Hour),
	}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req = req.WithContext(SetAuthResult(req.Context(), sessionResult(session)))
	w := httptest.NewRecorder()
	h.Session(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			ID             string `json:"id"`
			Email          string `json:"email"`
			Role           string `json:"role"`
			OrganizationID string `json:"organization_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, "u1", body.User.ID)
	assert.Equal(t, "admin", body.User.Role)
	assert.Equal(t, "org1", body.User.OrganizationID)
}

func TestAuthHandlers_Session_Unauthenticated(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	w := httptest.NewRecorder()
	h.Session(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated": false}`, w.Body.String())
}

func TestAuthHandlers_DemoLogin(t *testing.T) {
	svc := &fakeAuthService{
		demoLoginFunc: func(_ context.Context, email string) (string, *domainauth.Identity, error) {
			assert.Equal(t, "demo@example.com", email)
			return "tok-1", &domainauth.Identity{UserID: "u1", Email: email, Role: domainauth.RoleMember, OrganizationID: "org1"}, nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/demo-login", strings.NewReader(`{"email":"  Demo@Example.com "}`))
	w := httptest.NewRecorder()
	h.DemoLogin(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "tok-1", body.Token)
}

func TestAuthHandlers_DemoLogin_Disabled(t *testing.T) {
	svc := &fakeAuthService{
		demoLoginFunc: func(_ context.Context, _ string) (string, *domainauth.Identity, error) {
			return "", nil, apperrors.Forbidden("demo login is disabled")
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/demo-login", strings.NewReader(`{"email":"demo@example.com"}`))
	w := httptest.NewRecorder()
	h.DemoLogin(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandlers_DemoLogin_MissingEmail(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/demo-login", strings.NewReader(`{"email":""}`))
	w := httptest.NewRecorder()
	h.DemoLogin(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_ViewAs(t *testing.T) {
	svc := &fakeAuthService{
		setViewAsFunc: func(_ context.Context, session *domainauth.Session, role *domainauth.Role) error {
			if role == nil {
				session.ViewAsRole = ""
			} else {
				session.ViewAsRole = *role
			}
			return nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	session := &domainauth.Session{ID: "s1", UserID: "root", Role: domainauth.RoleSuperAdmin}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/view-as", strings.NewReader(`{"role":"member"}`))
	req = req.WithContext(SetAuthResult(req.Context(), sessionResult(session)))
	w := httptest.NewRecorder()
	h.ViewAs(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"super_admin","view_as_role":"member"}`, w.Body.String())
}

func TestAuthHandlers_ViewAs_RequiresSession(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/view-as", strings.NewReader(`{"role":"member"}`))
	w := httptest.NewRecorder()
	h.ViewAs(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlers_CSRFToken(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	guard := NewCSRFGuard(CSRFGuardOptions{Auth: &fakeAuthService{}, Time: data.NewFixedTimeProvider(now)})
	h := &AuthHandlers{Svc: &fakeAuthService{}, CSRF: guard}

	session := &domainauth.Session{ID: "s1", UserID: "u1", CSRFSecret: "secret"}
	req := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	req = req.WithContext(SetAuthResult(req.Context(), sessionResult(session)))
	w := httptest.NewRecorder()
	h.CSRFToken(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		CSRFToken string `json:"csrfToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NoError(t, validateCSRFToken("secret", body.CSRFToken, now))
}

func TestAuthHandlers_CSRFToken_NoSession(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}, CSRF: NewCSRFGuard(CSRFGuardOptions{Auth: &fakeAuthService{}})}

	req := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	w := httptest.NewRecorder()
	h.CSRFToken(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "CSRF_SESSION_INVALID", decodeErrorCode(t, w))
}

func TestSafeRedirectPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                         "/",
		"/teams":                   "/teams",
		"/teams?tab=members":       "/teams?tab=members",
		"https://evil.example.com": "/",
		"//evil.example.com":       "/",
		"javascript:alert(1)":      "/",
		"relative/path":            "/",
		"/ok/nested/path#fragment": "/ok/nested/path#fragment",
	}

	for input, want := range tests {
		assert.Equal(t, want, safeRedirectPath(input), "input %q", input)
	}
}
