// Package service contains the business logic layer. Services depend
// on core repository interfaces and auth ports, never on concrete
// adapters.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/data"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/ports"
)

const defaultSessionTTL = 168 * time.Hour

// AuthServiceConfig groups tunables for AuthService.
type AuthServiceConfig struct {
	SessionTTL time.Duration

	// DemoEnabled allows minting bearer tokens via DemoLogin. Never
	// set in production.
	DemoEnabled bool

	// BackdoorKey and BackdoorEmail enable the dev backdoor header.
	// Both empty in production; honoring them is gated again at the
	// middleware level.
	BackdoorKey   string
	BackdoorEmail string
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider   ports.LoginProvider
	Sessions   ports.SessionStore
	DemoTokens ports.DemoTokenStore
	Users      core.UserRepository
	Config     AuthServiceConfig
	Time       data.TimeProvider
}

// AuthService orchestrates login flows: it exchanges provider codes
// for identities, resolves identities to user records, and owns the
// session lifecycle including the per-session CSRF secret.
type AuthService struct {
	provider   ports.LoginProvider
	sessions   ports.SessionStore
	demoTokens ports.DemoTokenStore
	users      core.UserRepository
	cfg        AuthServiceConfig
	time       data.TimeProvider
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Provider == nil {
		panic("LoginProvider is required")
	}
	if opts.Sessions == nil {
		panic("SessionStore is required")
	}
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Config.SessionTTL <= 0 {
		opts.Config.SessionTTL = defaultSessionTTL
	}
	if opts.Time == nil {
		opts.Time = &data.RealTimeProvider{}
	}
	return &AuthService{
		provider:   opts.Provider,
		sessions:   opts.Sessions,
		demoTokens: opts.DemoTokens,
		users:      opts.Users,
		cfg:        opts.Config,
		time:       opts.Time,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider
// auth URL with state and nonce. The caller persists state and nonce
// in short-lived cookies for the callback.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin exchanges the code for a provider identity, resolves
// it to a user record, and persists a session. The session carries the
// user's organization and a fresh CSRF secret; the provider identity
// alone never grants access — only a matching active user record does.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*domainauth.Session, error) {
	if input.Code == "" {
		return nil, apperrors.Validation("authorization code is required")
	}
	if input.State == "" {
		return nil, apperrors.Validation("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, apperrors.Validation("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "exchange authorization code")
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthenticated("no account for this identity")
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if !user.Active {
		return nil, apperrors.Unauthenticated("account is deactivated")
	}

	secret, err := NewCSRFSecret()
	if err != nil {
		return nil, fmt.Errorf("generate csrf secret: %w", err)
	}

	now := s.time.Now().UTC()
	session := domainauth.Session{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		CSRFSecret:     secret,
		ExpiresAt:      now.Add(s.cfg.SessionTTL),
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	return &session, nil
}

// GetSession retrieves a session by ID, treating expiry as absence.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthenticated("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "get session")
	}

	if s.time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, fmt.Errorf("delete expired session: %w", deleteErr)
		}
		return nil, apperrors.Unauthenticated("session expired")
	}

	return &session, nil
}

// Logout removes a session. Logging out a missing session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// RotateCSRFSecret replaces the session's CSRF secret and persists it.
// Called after every successful CSRF validation so a captured token
// cannot be replayed.
func (s *AuthService) RotateCSRFSecret(ctx context.Context, session *domainauth.Session) (string, error) {
	if session == nil {
		return "", errors.New("session is required")
	}

	secret, err := NewCSRFSecret()
	if err != nil {
		return "", fmt.Errorf("generate csrf secret: %w", err)
	}
	session.CSRFSecret = secret

	if saveErr := s.sessions.Save(ctx, *session); saveErr != nil {
		return "", fmt.Errorf("save session: %w", saveErr)
	}
	return secret, nil
}

// SetViewAs lets admins preview the app as a lower role. Passing nil
// clears the override. The stored role never changes; EffectiveRole on
// the session applies the override.
func (s *AuthService) SetViewAs(ctx context.Context, session *domainauth.Session, role *domainauth.Role) error {
	if session == nil {
		return apperrors.Unauthenticated("authentication required")
	}
	if !session.Role.AtLeast(domainauth.RoleAdmin) {
		return apperrors.Forbidden("only admins can view as another role")
	}
	if role != nil && role.AtLeast(session.Role) && *role != session.Role {
		return apperrors.Forbidden("cannot view as a higher role")
	}

	if role == nil {
		session.ViewAsRole = ""
	} else {
		session.ViewAsRole = *role
	}
	if err := s.sessions.Save(ctx, *session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// DemoLogin mints a bearer token for the user with the given email.
// Available only when demo mode is enabled; the token expires on the
// store's TTL and carries the user's real role and organization.
func (s *AuthService) DemoLogin(ctx context.Context, email string) (string, *domainauth.Identity, error) {
	if !s.cfg.DemoEnabled {
		return "", nil, apperrors.Forbidden("demo login is disabled")
	}
	if s.demoTokens == nil {
		return "", nil, errors.New("demo token store not configured")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", nil, apperrors.Unauthenticated("no account for this email")
		}
		return "", nil, fmt.Errorf("resolve user: %w", err)
	}
	if !user.Active {
		return "", nil, apperrors.Unauthenticated("account is deactivated")
	}

	identity := domainauth.Identity{
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}

	token, err := newBearerToken()
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	if saveErr := s.demoTokens.Save(ctx, token, identity); saveErr != nil {
		return "", nil, fmt.Errorf("save demo token: %w", saveErr)
	}
	return token, &identity, nil
}

// AuthenticateBearer resolves a demo bearer token to its identity.
func (s *AuthService) AuthenticateBearer(ctx context.Context, token string) (*domainauth.Identity, error) {
	if s.demoTokens == nil {
		return nil, apperrors.Unauthenticated("bearer tokens are not accepted")
	}
	identity, err := s.demoTokens.Get(ctx, token)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "resolve bearer token")
	}
	return &identity, nil
}

// BackdoorIdentity resolves the dev backdoor header pair to an
// identity. The key must match the configured backdoor key exactly
// and the user header must name the configured backdoor account;
// either one alone is rejected.
func (s *AuthService) BackdoorIdentity(ctx context.Context, user, key string) (*domainauth.Identity, error) {
	if s.cfg.BackdoorKey == "" || key == "" || key != s.cfg.BackdoorKey {
		return nil, apperrors.Unauthenticated("invalid backdoor key")
	}
	if user == "" || !strings.EqualFold(user, s.cfg.BackdoorEmail) {
		return nil, apperrors.Unauthenticated("invalid backdoor user")
	}

	account, err := s.users.GetByEmail(ctx, s.cfg.BackdoorEmail)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "resolve backdoor user")
	}
	return &domainauth.Identity{
		UserID:         account.ID,
		Email:          account.Email,
		Role:           account.Role,
		OrganizationID: account.OrganizationID,
	}, nil
}

// NewCSRFSecret returns a 32-byte hex-encoded random secret.
func NewCSRFSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func newBearerToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
