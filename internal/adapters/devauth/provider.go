package devauth

// Package devauth provides a simple, config-driven LoginProvider for local development.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/whirkplace/whirkplace-api/internal/ports"
)

// Config controls the dev login provider behavior.
type Config struct {
	Email string
}

// Provider implements ports.LoginProvider for local development.
// It short-circuits the OAuth flow by redirecting back to our own
// callback with locally generated state and nonce; Exchange ignores the
// code and returns the configured identity.
type Provider struct {
	identity ports.ProviderIdentity
}

// NewProvider constructs a dev login provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	return &Provider{
		identity: ports.ProviderIdentity{Subject: "dev|" + cfg.Email, Email: cfg.Email},
	}, nil
}

// Begin returns a local callback URL and cryptographically secure state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	// The standard handler expects GET /api/auth/callback?code=...&state=...
	authURL := "/api/auth/callback?code=dev&state=" + state
	return authURL, state, nonce, nil
}

// Exchange ignores the code and returns the configured identity.
func (p *Provider) Exchange(_ context.Context, in ports.ExchangeInput) (ports.ProviderIdentity, error) {
	if in.Code == "" {
		return ports.ProviderIdentity{}, errors.New("authorization code is required")
	}
	return p.identity, nil
}

func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
