package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisconn "github.com/dmitrymomot/tenantguard/pkg/redis"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

func setupRedisCache(t *testing.T) (*miniredis.Miniredis, tenant.Cache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redisconn.Connect(context.Background(), redisconn.Config{
		ConnectionURL:  "redis://" + mr.Addr(),
		RetryAttempts:  1,
		RetryInterval:  time.Millisecond,
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, tenant.NewRedisCache(client, "")
}

func TestRedisCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores and retrieves records", func(t *testing.T) {
		t.Parallel()

		_, cache := setupRedisCache(t)

		rec := activeRecord()
		cache.Set(ctx, rec.ID, rec, time.Minute)

		got, ok := cache.Get(ctx, rec.ID)
		require.True(t, ok)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.Name, got.Name)
		assert.Equal(t, rec.Active, got.Active)
	})

	t.Run("misses unknown identifiers", func(t *testing.T) {
		t.Parallel()

		_, cache := setupRedisCache(t)

		_, ok := cache.Get(ctx, uuid.New())
		assert.False(t, ok)
	})

	t.Run("expires entries after their ttl", func(t *testing.T) {
		t.Parallel()

		mr, cache := setupRedisCache(t)

		rec := activeRecord()
		cache.Set(ctx, rec.ID, rec, time.Second)

		mr.FastForward(2 * time.Second)

		_, ok := cache.Get(ctx, rec.ID)
		assert.False(t, ok)
	})

	t.Run("deletes entries", func(t *testing.T) {
		t.Parallel()

		_, cache := setupRedisCache(t)

		rec := activeRecord()
		cache.Set(ctx, rec.ID, rec, time.Minute)
		cache.Delete(ctx, rec.ID)

		_, ok := cache.Get(ctx, rec.ID)
		assert.False(t, ok)
	})

	t.Run("drops corrupt entries", func(t *testing.T) {
		t.Parallel()

		mr, cache := setupRedisCache(t)

		id := uuid.New()
		require.NoError(t, mr.Set("tenant:"+id.String(), "{not json"))

		_, ok := cache.Get(ctx, id)
		assert.False(t, ok)
		assert.False(t, mr.Exists("tenant:"+id.String()))
	})

	t.Run("namespaces keys with the configured prefix", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		cache := tenant.NewRedisCache(client, "directory:")

		rec := activeRecord()
		cache.Set(ctx, rec.ID, rec, time.Minute)

		assert.True(t, mr.Exists("directory:"+rec.ID.String()))
	})
}
