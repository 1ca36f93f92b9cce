package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем.
// Реализации должны быть безопасны для конкурентного использования.
type CacheRepository interface {
	// Get получает значение из кеша по ключу. Промах - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)
}

// PrefixInvalidator - хранилище умеет удалять ключи по префиксу.
// Хранилища без этой возможности его не реализуют.
type PrefixInvalidator interface {
	// DeleteByPrefix удаляет все ключи с префиксом и возвращает их количество
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}
