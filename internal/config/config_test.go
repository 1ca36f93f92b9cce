package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.ResolveTTL)
	assert.Equal(t, time.Hour, cfg.Cache.NearestTTL)
	assert.Equal(t, 3, cfg.Cache.NegativeTTLDivisor)
	assert.Equal(t, 3, cfg.Search.DefaultLimit)
	assert.Equal(t, 10, cfg.Search.MaxLimit)
	assert.Equal(t, "km", cfg.Search.DefaultUnit)
	assert.Equal(t, 2*time.Second, cfg.Worker.StreamReadTimeout)
	assert.Equal(t, time.Minute, cfg.Worker.ClaimMinIdle)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "*", cfg.Server.CORSOrigins)
	assert.Contains(t, cfg.GetDatabaseDSN(), "dbname=airports")
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "CACHE_BACKEND=memory\nCACHE_RESOLVE_TTL=60\nSEARCH_DEFAULT_UNIT=mi\nAPI_PORT=9090\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.Cache.ResolveTTL)
	assert.Equal(t, "mi", cfg.Search.DefaultUnit)
	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddr())
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CACHE_BACKEND=memory\n"), 0o600))
	t.Setenv("CACHE_BACKEND", "redis")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
}

func TestLoadFrom_InvalidBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_BACKEND")
}

func TestConfig_Validate_SearchLimits(t *testing.T) {
	cfg := &Config{
		Cache:  CacheConfig{Backend: CacheBackendMemory, NegativeTTLDivisor: 3, MemoryShards: 4},
		Search: SearchConfig{DefaultLimit: 11, MaxLimit: 10, DefaultUnit: "km"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Search.DefaultLimit = 3
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Worker.BatchSize)
}
