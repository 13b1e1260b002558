package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/whirkplace/whirkplace-api/config"
	"github.com/whirkplace/whirkplace-api/internal/adapters/devauth"
	"github.com/whirkplace/whirkplace-api/internal/adapters/oidc"
	redisadapter "github.com/whirkplace/whirkplace-api/internal/adapters/redis"
	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/ports"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// AuthDeps groups inputs for BuildAuthService.
type AuthDeps struct {
	Config      *config.AppConfig
	RedisClient goredis.UniversalClient
	Users       core.UserRepository
	Logger      *slog.Logger
}

// BuildAuthService assembles the auth service: login provider by
// configured mode, Redis-backed session and demo token stores, and
// the dev-only knobs (demo login, backdoor) which are forced off in
// production regardless of environment variables.
func BuildAuthService(deps AuthDeps) (*service.AuthService, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	if deps.RedisClient == nil {
		return nil, errors.New("redis client is required")
	}

	provider, err := buildLoginProvider(deps.Config)
	if err != nil {
		return nil, err
	}

	cfg := service.AuthServiceConfig{
		SessionTTL:  deps.Config.Auth.Session.TTL,
		DemoEnabled: deps.Config.Auth.Demo.Enabled && deps.Config.IsDev,
	}
	if deps.Config.IsDev {
		cfg.BackdoorKey = deps.Config.Auth.Backdoor.Key
		cfg.BackdoorEmail = deps.Config.Auth.Backdoor.Email
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		Sessions:   redisadapter.NewSessionStore(deps.RedisClient),
		DemoTokens: redisadapter.NewDemoTokenStore(deps.RedisClient, deps.Config.Auth.Demo.TokenTTL),
		Users:      deps.Users,
		Config:     cfg,
	}), nil
}

//nolint:ireturn // the two providers share no concrete type; the port is the contract.
func buildLoginProvider(cfg *config.AppConfig) (ports.LoginProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeOAuth:
		provider, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     cfg.Auth.OAuth.ClientID,
			ClientSecret: cfg.Auth.OAuth.ClientSecret,
			RedirectURL:  cfg.Auth.OAuth.RedirectURL,
			Scope:        cfg.Auth.OAuth.Scope,
			DiscoveryURL: cfg.Auth.OAuth.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc provider: %w", err)
		}
		return provider, nil
	case config.AuthModeMock:
		if !cfg.IsDev {
			return nil, errors.New("mock auth mode is not allowed in production")
		}
		provider, err := devauth.NewProvider(devauth.Config{Email: cfg.Auth.Backdoor.Email})
		if err != nil {
			return nil, fmt.Errorf("build dev auth provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Auth.Mode)
	}
}
