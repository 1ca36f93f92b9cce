package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/airport-locator/internal/domain/repository"
)

// scanBatch - размер страницы SCAN и пачки DEL при удалении по префиксу
const scanBatch = 500

// RedisCache - хранилище кеша поверх Redis.
// Реализует repository.CacheRepository и repository.PrefixInvalidator.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

var (
	_ repository.CacheRepository   = (*RedisCache)(nil)
	_ repository.PrefixInvalidator = (*RedisCache)(nil)
)

func NewCacheRepository(r *Redis) *RedisCache {
	return NewCacheRepositoryFromClient(r.Client(), r.logger)
}

func NewCacheRepositoryFromClient(client *redis.Client, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		// Redis трактует 0 как "без срока", а нам нужно "не хранить"
		return nil
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// DeleteByPrefix проходит ключи через SCAN MATCH и удаляет их пачками
func (r *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	pattern := escapeGlob(prefix) + "*"
	iter := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()

	deleted := 0
	batch := make([]string, 0, scanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := r.client.Del(ctx, batch...).Result()
		if err != nil {
			return err
		}
		deleted += int(n)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= scanBatch {
			if err := flush(); err != nil {
				r.logger.Error("Failed to delete keys by prefix", zap.String("prefix", prefix), zap.Error(err))
				return deleted, fmt.Errorf("cache delete by prefix error: %w", err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Failed to scan keys", zap.String("prefix", prefix), zap.Error(err))
		return deleted, fmt.Errorf("cache scan error: %w", err)
	}
	if err := flush(); err != nil {
		r.logger.Error("Failed to delete keys by prefix", zap.String("prefix", prefix), zap.Error(err))
		return deleted, fmt.Errorf("cache delete by prefix error: %w", err)
	}

	r.logger.Info("Cache invalidated by prefix", zap.String("prefix", prefix), zap.Int("deleted", deleted))
	return deleted, nil
}

// escapeGlob экранирует спецсимволы шаблона MATCH
func escapeGlob(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
