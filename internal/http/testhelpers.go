package httpx

// Shared fakes for httpx tests. The auth service fake dispatches to
// per-method func fields so each test overrides only what it needs.

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

type fakeAuthService struct {
	beginLoginFunc         func(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	completeLoginFunc      func(ctx context.Context, input service.CompleteLoginInput) (*domainauth.Session, error)
	getSessionFunc         func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	logoutFunc             func(ctx context.Context, sessionID string) error
	rotateCSRFSecretFunc   func(ctx context.Context, session *domainauth.Session) (string, error)
	setViewAsFunc          func(ctx context.Context, session *domainauth.Session, role *domainauth.Role) error
	demoLoginFunc          func(ctx context.Context, email string) (string, *domainauth.Identity, error)
	authenticateBearerFunc func(ctx context.Context, token string) (*domainauth.Identity, error)
	backdoorIdentityFunc   func(ctx context.Context, user, key string) (*domainauth.Identity, error)
}

var _ AuthServiceInterface = (*fakeAuthService)(nil)

var errFakeUnsupported = errors.New("not implemented in fake")

func (f *fakeAuthService) BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error) {
	if f.beginLoginFunc != nil {
		return f.beginLoginFunc(ctx, redirectURL)
	}
	return nil, errFakeUnsupported
}

func (f *fakeAuthService) CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*domainauth.Session, error) {
	if f.completeLoginFunc != nil {
		return f.completeLoginFunc(ctx, input)
	}
	return nil, errFakeUnsupported
}

func (f *fakeAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if f.getSessionFunc != nil {
		return f.getSessionFunc(ctx, sessionID)
	}
	return nil, errFakeUnsupported
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error {
	if f.logoutFunc != nil {
		return f.logoutFunc(ctx, sessionID)
	}
	return errFakeUnsupported
}

func (f *fakeAuthService) RotateCSRFSecret(ctx context.Context, session *domainauth.Session) (string, error) {
	if f.rotateCSRFSecretFunc != nil {
		return f.rotateCSRFSecretFunc(ctx, session)
	}
	return "", errFakeUnsupported
}

func (f *fakeAuthService) SetViewAs(ctx context.Context, session *domainauth.Session, role *domainauth.Role) error {
	if f.setViewAsFunc != nil {
		return f.setViewAsFunc(ctx, session, role)
	}
	return errFakeUnsupported
}

func (f *fakeAuthService) DemoLogin(ctx context.Context, email string) (string, *domainauth.Identity, error) {
	if f.demoLoginFunc != nil {
		return f.demoLoginFunc(ctx, email)
	}
	return "", nil, errFakeUnsupported
}

func (f *fakeAuthService) AuthenticateBearer(ctx context.Context, token string) (*domainauth.Identity, error) {
	if f.authenticateBearerFunc != nil {
		return f.authenticateBearerFunc(ctx, token)
	}
	return nil, errFakeUnsupported
}

func (f *fakeAuthService) BackdoorIdentity(ctx context.Context, user, key string) (*domainauth.Identity, error) {
	if f.backdoorIdentityFunc != nil {
		return f.backdoorIdentityFunc(ctx, user, key)
	}
	return nil, errFakeUnsupported
}

// fakeOrgGetter serves organizations from a map keyed by ID.
type fakeOrgGetter struct {
	orgs map[string]*model.Organization
	err  error
}

func (f *fakeOrgGetter) GetByID(_ context.Context, id string) (*model.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	if org, ok := f.orgs[id]; ok {
		return org, nil
	}
	return nil, apperrors.NotFound("organization not found")
}

// okHandler records that it ran and writes 200.
func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
	})
}
