package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Search   SearchConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// QueryTimeout - предел на один запрос к справочнику, 0 - без предела
	QueryTimeout time.Duration
}

// DSN - строка подключения для pgx/lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	// Timeout - dial/read/write таймаут команд
	Timeout time.Duration
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Cache backends
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

type CacheConfig struct {
	Backend             string
	ResolveTTL          time.Duration
	NearestTTL          time.Duration
	NegativeTTLDivisor  int
	MemoryShards        int
	MemoryShardCapacity int
}

type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
	DefaultUnit  string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	// ClaimMinIdle - через сколько неподтверждённое сообщение забирается повторно, 0 - никогда
	ClaimMinIdle time.Duration
	BatchSize    int
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom - то же, что Load, но с явным путём к файлу
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Без .env работаем только на переменных окружения
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			QueryTimeout:    time.Duration(v.GetInt("DB_QUERY_TIMEOUT")) * time.Millisecond,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			PoolSize: v.GetInt("REDIS_POOL_SIZE"),
			Timeout:  time.Duration(v.GetInt("REDIS_TIMEOUT")) * time.Millisecond,
		},
		Cache: CacheConfig{
			Backend:             strings.ToLower(strings.TrimSpace(v.GetString("CACHE_BACKEND"))),
			ResolveTTL:          time.Duration(v.GetInt("CACHE_RESOLVE_TTL")) * time.Second,
			NearestTTL:          time.Duration(v.GetInt("CACHE_NEAREST_TTL")) * time.Second,
			NegativeTTLDivisor:  v.GetInt("CACHE_NEGATIVE_TTL_DIVISOR"),
			MemoryShards:        v.GetInt("CACHE_MEMORY_SHARDS"),
			MemoryShardCapacity: v.GetInt("CACHE_MEMORY_SHARD_CAPACITY"),
		},
		Search: SearchConfig{
			DefaultLimit: v.GetInt("SEARCH_DEFAULT_LIMIT"),
			MaxLimit:     v.GetInt("SEARCH_MAX_LIMIT"),
			DefaultUnit:  strings.ToLower(v.GetString("SEARCH_DEFAULT_UNIT")),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:         v.GetInt("WORKER_BATCH_SIZE"),
			ClaimMinIdle:      time.Duration(v.GetInt("WORKER_CLAIM_MIN_IDLE")) * time.Millisecond,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_CORS_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "airports")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 3600)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 600)
	v.SetDefault("DB_QUERY_TIMEOUT", 3000)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_TIMEOUT", 500)

	v.SetDefault("CACHE_BACKEND", CacheBackendRedis)
	v.SetDefault("CACHE_RESOLVE_TTL", 86400)
	v.SetDefault("CACHE_NEAREST_TTL", 3600)
	v.SetDefault("CACHE_NEGATIVE_TTL_DIVISOR", 3)
	v.SetDefault("CACHE_MEMORY_SHARDS", 16)
	v.SetDefault("CACHE_MEMORY_SHARD_CAPACITY", 4096)

	v.SetDefault("SEARCH_DEFAULT_LIMIT", 3)
	v.SetDefault("SEARCH_MAX_LIMIT", 10)
	v.SetDefault("SEARCH_DEFAULT_UNIT", "km")

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "airport-cache-invalidators")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 2000)
	v.SetDefault("WORKER_BATCH_SIZE", 10)
	v.SetDefault("WORKER_CLAIM_MIN_IDLE", 60000)
}

// Validate проверяет значения, которые нельзя молча исправить
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendRedis, CacheBackendMemory:
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q: expected %q or %q",
			c.Cache.Backend, CacheBackendRedis, CacheBackendMemory)
	}
	if c.Cache.NegativeTTLDivisor < 1 {
		return fmt.Errorf("CACHE_NEGATIVE_TTL_DIVISOR must be >= 1, got %d", c.Cache.NegativeTTLDivisor)
	}
	if c.Cache.MemoryShards < 1 {
		return fmt.Errorf("CACHE_MEMORY_SHARDS must be >= 1, got %d", c.Cache.MemoryShards)
	}
	if c.Search.MaxLimit < 1 || c.Search.DefaultLimit < 1 || c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("invalid search limits: default=%d max=%d", c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	if c.Search.DefaultUnit != "km" && c.Search.DefaultUnit != "mi" {
		return fmt.Errorf("invalid SEARCH_DEFAULT_UNIT %q", c.Search.DefaultUnit)
	}
	if c.Worker.BatchSize < 1 {
		c.Worker.BatchSize = 10
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}
