package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.LoginProvider  = (*MockLoginProvider)(nil)
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.DemoTokenStore = (*MemoryDemoTokenStore)(nil)
)

// MockLoginProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockLoginProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (ports.ProviderIdentity, error)

	// Deterministic values for predictable testing
	AuthURL         string
	StatePrefix     string
	NoncePrefix     string
	DefaultIdentity ports.ProviderIdentity

	// Internal state tracking for deterministic behavior
	callCount int
}

// NewMockLoginProvider creates a MockLoginProvider with sensible defaults.
func NewMockLoginProvider() *MockLoginProvider {
	return &MockLoginProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultIdentity: ports.ProviderIdentity{
			Subject: "mock-subject-1",
			Email:   "mock.user@example.com",
		},
	}
}

func (m *MockLoginProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}

	// Generate deterministic state and nonce based on call count
	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", noncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockLoginProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (ports.ProviderIdentity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	identity := m.DefaultIdentity
	if identity.Subject == "" {
		identity = ports.ProviderIdentity{
			Subject: "mock-subject-1",
			Email:   "mock.user@example.com",
		}
	}
	return identity, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// MemoryDemoTokenStore is an in-memory demo token store for unit tests.
type MemoryDemoTokenStore struct {
	identities map[string]domainauth.Identity
}

// NewMemoryDemoTokenStore creates a new in-memory demo token store.
func NewMemoryDemoTokenStore() *MemoryDemoTokenStore {
	return &MemoryDemoTokenStore{
		identities: make(map[string]domainauth.Identity),
	}
}

func (m *MemoryDemoTokenStore) Save(_ context.Context, token string, identity domainauth.Identity) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	m.identities[token] = identity
	return nil
}

func (m *MemoryDemoTokenStore) Get(_ context.Context, token string) (domainauth.Identity, error) {
	identity, ok := m.identities[token]
	if !ok {
		return domainauth.Identity{}, ErrNotFound
	}
	return identity, nil
}

func (m *MemoryDemoTokenStore) Delete(_ context.Context, token string) error {
	delete(m.identities, token)
	return nil
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}
