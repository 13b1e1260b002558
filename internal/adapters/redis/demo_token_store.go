package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
)

// DemoTokenStore persists stateless demo identities keyed by an opaque
// bearer token. Tokens expire via Redis TTL; there is no refresh — a
// new demo login mints a new token.
type DemoTokenStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewDemoTokenStore creates a Redis-backed demo token store.
func NewDemoTokenStore(client redis.UniversalClient, ttl time.Duration) *DemoTokenStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DemoTokenStore{client: client, prefix: "demo_token:", ttl: ttl}
}

// Save persists the identity under the token for the configured TTL.
func (s *DemoTokenStore) Save(ctx context.Context, token string, identity domainauth.Identity) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	return s.client.Set(ctx, s.prefix+token, data, s.ttl).Err()
}

// Get resolves a bearer token to its demo identity.
func (s *DemoTokenStore) Get(ctx context.Context, token string) (domainauth.Identity, error) {
	if token == "" {
		return domainauth.Identity{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Identity{}, ErrNotFound
		}
		return domainauth.Identity{}, fmt.Errorf("redis get: %w", err)
	}

	var identity domainauth.Identity
	if unmarshalErr := json.Unmarshal([]byte(data), &identity); unmarshalErr != nil {
		return domainauth.Identity{}, fmt.Errorf("unmarshal identity: %w", unmarshalErr)
	}

	return identity, nil
}

// Delete removes a demo token. Deleting a missing token is not an error.
func (s *DemoTokenStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+token).Err()
}
