package httpx

import (
	"context"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// AuthServiceInterface is the slice of the auth service the HTTP layer
// uses. Declared here so middleware and handlers can be tested with
// lightweight fakes.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	RotateCSRFSecret(ctx context.Context, session *domainauth.Session) (string, error)
	SetViewAs(ctx context.Context, session *domainauth.Session, role *domainauth.Role) error
	DemoLogin(ctx context.Context, email string) (string, *domainauth.Identity, error)
	AuthenticateBearer(ctx context.Context, token string) (*domainauth.Identity, error)
	BackdoorIdentity(ctx context.Context, user, key string) (*domainauth.Identity, error)
}

// OrganizationGetter is the single lookup the organization resolver needs.
type OrganizationGetter interface {
	GetByID(ctx context.Context, id string) (*model.Organization, error)
}
