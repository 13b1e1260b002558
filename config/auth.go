package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for login.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses a local dev login provider (development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"whirkplace"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:""`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:5000/api/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// BackdoorConfig controls the development-only backdoor login. The
// authenticator honors the x-backdoor-user/x-backdoor-key header pair
// only outside production and only when Key is non-empty.
type BackdoorConfig struct {
	Key   string `env:"KEY"   envDefault:""`
	Email string `env:"EMAIL" envDefault:"dev@whirkplace.local"`
}

// SessionConfig controls server-side sessions.
type SessionConfig struct {
	// Secret signs nothing directly but is required in production as a
	// deploy-time sanity check that the environment is fully configured.
	Secret string `env:"SESSION_SECRET" envDefault:""`

	// TTL is the server-side session lifetime.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`
}

// DemoConfig controls stateless demo identities minted via bearer tokens.
type DemoConfig struct {
	// Enabled allows POST /api/auth/demo-login to mint demo tokens.
	Enabled bool `env:"ENABLED" envDefault:"true"`

	// TokenTTL is the demo bearer token lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which login provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// Backdoor login configuration (honored only in development).
	Backdoor BackdoorConfig `envPrefix:"BACKDOOR_"`

	// Session configuration.
	Session SessionConfig

	// Demo identity configuration.
	Demo DemoConfig `envPrefix:"DEMO_"`
}
