package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func getTestRedisCache(t *testing.T) (*RedisCache, *redis.Client) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   2, // отдельная БД для тестов кеша
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	require.NoError(t, client.FlushDB(ctx).Err())

	return NewCacheRepositoryFromClient(client, zap.NewNop()), client
}

func TestRedisCache_GetSetDelete(t *testing.T) {
	repo, client := getTestRedisCache(t)
	defer client.Close()
	ctx := context.Background()

	v, err := repo.Get(ctx, "search:resolve:absent:")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, repo.Set(ctx, "search:resolve:lhr:", []byte(`{"found":true}`), time.Minute))
	v, err = repo.Get(ctx, "search:resolve:lhr:")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"found":true}`), v)

	ttl, err := client.TTL(ctx, "search:resolve:lhr:").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Delete(ctx, "search:resolve:lhr:"))
	ok, err := repo.Exists(ctx, "search:resolve:lhr:")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_NonPositiveTTLNotStored(t *testing.T) {
	repo, client := getTestRedisCache(t)
	defer client.Close()
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "search:resolve:x:", []byte("v"), 0))
	ok, err := repo.Exists(ctx, "search:resolve:x:")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_DeleteByPrefix(t *testing.T) {
	repo, client := getTestRedisCache(t)
	defer client.Close()
	ctx := context.Background()

	for i := 0; i < 1200; i++ {
		require.NoError(t, repo.Set(ctx, fmt.Sprintf("search:nearest:%d:0.00:3::km", i), []byte("v"), time.Minute))
	}
	require.NoError(t, repo.Set(ctx, "search:resolve:paris:FR", []byte("v"), time.Minute))
	require.NoError(t, repo.Set(ctx, "search:nearest*other", []byte("v"), time.Minute))

	n, err := repo.DeleteByPrefix(ctx, "search:nearest:")
	require.NoError(t, err)
	assert.Equal(t, 1200, n)

	ok, _ := repo.Exists(ctx, "search:resolve:paris:FR")
	assert.True(t, ok)
	ok, _ = repo.Exists(ctx, "search:nearest*other")
	assert.True(t, ok)
}
