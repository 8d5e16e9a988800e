package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redisCredentialStore) {
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(s.Close)

	store := &redisCredentialStore{
		client: redis.NewClient(&redis.Options{Addr: s.Addr()}),
		now:    func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
	return s, store
}

func TestCredentialStore_SaveAndGet(t *testing.T) {
	s, store := setupTestRedis(t)
	ctx := context.Background()

	credential := &domain.StoredCredential{
		AdAccountID: "123",
		SealedToken: "selado",
		ExpiresAt:   time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Save(ctx, credential))

	assert.True(t, s.Exists("credentials:act_123"))
	assert.Equal(t, 24*time.Hour, s.TTL("credentials:act_123"))

	got, err := store.Get(ctx, "act_123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "selado", got.SealedToken)
	assert.True(t, credential.ExpiresAt.Equal(got.ExpiresAt))
}

func TestCredentialStore_GetMissing(t *testing.T) {
	_, store := setupTestRedis(t)

	got, err := store.Get(context.Background(), "999")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCredentialStore_RejectsExpired(t *testing.T) {
	s, store := setupTestRedis(t)

	err := store.Save(context.Background(), &domain.StoredCredential{
		AdAccountID: "123",
		ExpiresAt:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrCredentialExpired)
	assert.False(t, s.Exists("credentials:act_123"))
}

func TestCredentialStore_Delete(t *testing.T) {
	s, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.StoredCredential{
		AdAccountID: "123",
		ExpiresAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}))

	require.NoError(t, store.Delete(ctx, "123"))
	assert.False(t, s.Exists("credentials:act_123"))
}

func TestCredentialStore_ExpiresWithTTL(t *testing.T) {
	s, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.StoredCredential{
		AdAccountID: "123",
		ExpiresAt:   time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC),
	}))

	s.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "123")
	require.NoError(t, err)
	assert.Nil(t, got)
}
