package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
)

func newTestClient(t *testing.T) (goredis.UniversalClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Errorf("close redis client: %v", err)
		}
	})
	return client, mr
}

func testSession(id string) domainauth.Session {
	return domainauth.Session{
		ID:             id,
		UserID:         "u1",
		Email:          "u1@example.com",
		Role:           domainauth.RoleMember,
		OrganizationID: "org1",
		CSRFSecret:     "secret-1",
		ExpiresAt:      time.Now().Add(time.Hour),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	sess := testSession("sess-1")
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.OrganizationID, got.OrganizationID)
	assert.Equal(t, sess.CSRFSecret, got.CSRFSecret)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestSessionStore_SaveSetsTTL(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewSessionStore(client)

	sess := testSession("sess-1")
	require.NoError(t, store.Save(context.Background(), sess))

	ttl := mr.TTL("session:sess-1")
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestSessionStore_SaveRejectsBadSessions(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	missing := testSession("")
	assert.Error(t, store.Save(ctx, missing))

	expired := testSession("sess-1")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	assert.Error(t, store.Save(ctx, expired))
}

func TestSessionStore_GetMissing(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_GetAfterRedisExpiry(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewSessionStore(client)

	sess := testSession("sess-1")
	require.NoError(t, store.Save(context.Background(), sess))

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-1")))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again, or deleting nothing, is fine.
	assert.NoError(t, store.Delete(ctx, "sess-1"))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewSessionStoreWithPrefix(client, "whirk:sess:")

	require.NoError(t, store.Save(context.Background(), testSession("sess-1")))
	assert.True(t, mr.Exists("whirk:sess:sess-1"))
}

func TestDemoTokenStore_RoundTrip(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewDemoTokenStore(client, time.Hour)
	ctx := context.Background()

	identity := domainauth.Identity{
		UserID:         "u1",
		Email:          "u1@example.com",
		Role:           domainauth.RoleManager,
		OrganizationID: "org1",
	}
	require.NoError(t, store.Save(ctx, "tok-1", identity))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, identity, got)

	// Expiry via Redis TTL.
	mr.FastForward(2 * time.Hour)
	_, err = store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDemoTokenStore_Validation(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewDemoTokenStore(client, time.Hour)
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", domainauth.Identity{}))

	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx, ""))
}
