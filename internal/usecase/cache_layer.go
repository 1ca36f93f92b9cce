package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/airport-locator/internal/domain/repository"
	"github.com/airport-locator/internal/pkg/errors"
)

const (
	cacheResultHit         = "hit"
	cacheResultNegativeHit = "negative_hit"
	cacheResultMiss        = "miss"
	cacheResultBypass      = "bypass"

	// DefaultNegativeTTLDivisor - отрицательный результат живёт треть положительного TTL
	DefaultNegativeTTLDivisor = 3
)

var (
	cacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airport_locator_cache_requests_total",
			Help: "Cache lookups by namespace and result",
		},
		[]string{"namespace", "result"},
	)

	cacheComputeSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airport_locator_cache_compute_seconds",
			Help:    "Time spent computing values on cache miss",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"namespace"},
	)
)

// cacheEnvelope - формат записи в хранилище. Found=false - закешированное отсутствие.
type cacheEnvelope struct {
	Found bool            `json:"found"`
	Value json.RawMessage `json:"value,omitempty"`
}

// CacheLayer - cache-aside поверх CacheRepository.
// Ошибки хранилища не прерывают запрос: вычисление идёт напрямую.
type CacheLayer struct {
	store           repository.CacheRepository
	logger          *zap.Logger
	negativeDivisor int
}

// NewCacheLayer создаёт слой кеша; negativeDivisor < 1 заменяется значением по умолчанию
func NewCacheLayer(store repository.CacheRepository, logger *zap.Logger, negativeDivisor int) *CacheLayer {
	if negativeDivisor < 1 {
		negativeDivisor = DefaultNegativeTTLDivisor
	}
	return &CacheLayer{
		store:           store,
		logger:          logger,
		negativeDivisor: negativeDivisor,
	}
}

// NegativeTTL - срок хранения отрицательного результата, строго меньше ttl.
// 0 означает "не хранить".
func (c *CacheLayer) NegativeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	divisor := c.negativeDivisor
	if divisor < 2 {
		// при делителе 1 отрицательный TTL сравнялся бы с положительным
		divisor = 2
	}
	neg := ttl / time.Duration(divisor)
	if neg < time.Second {
		return 0
	}
	return neg
}

// ComputeFunc вычисляет значение; found=false - "не найдено", такой результат тоже кешируется
type ComputeFunc[T any] func(ctx context.Context) (value T, found bool, err error)

// GetOrCompute возвращает значение из кеша или вычисляет и сохраняет его.
// Одновременные промахи по одному ключу могут вычислить значение дважды,
// побеждает последняя запись. Ошибки compute не кешируются.
func GetOrCompute[T any](ctx context.Context, c *CacheLayer, key string, ttl time.Duration, compute ComputeFunc[T]) (T, bool, error) {
	ns := namespaceOf(key)
	logger := c.logger.With(zap.String("cache_key", key))

	raw, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("Cache get failed, bypassing cache", zap.Error(err))
		cacheRequestsTotal.WithLabelValues(ns, cacheResultBypass).Inc()
		return timedCompute(ctx, ns, compute)

	case raw != nil:
		var env cacheEnvelope
		if err := json.Unmarshal(raw, &env); err == nil {
			if !env.Found {
				cacheRequestsTotal.WithLabelValues(ns, cacheResultNegativeHit).Inc()
				var zero T
				return zero, false, nil
			}
			var value T
			if err := json.Unmarshal(env.Value, &value); err == nil {
				cacheRequestsTotal.WithLabelValues(ns, cacheResultHit).Inc()
				return value, true, nil
			}
		}
		logger.Warn("Discarding undecodable cache entry")
		if err := c.store.Delete(ctx, key); err != nil {
			logger.Warn("Failed to delete undecodable cache entry", zap.Error(err))
		}
	}

	cacheRequestsTotal.WithLabelValues(ns, cacheResultMiss).Inc()
	value, found, err := timedCompute(ctx, ns, compute)
	if err != nil {
		return value, found, err
	}

	c.storeResult(ctx, logger, key, ttl, value, found)
	return value, found, nil
}

// storeResult сериализует и сохраняет результат; ошибки только логируются
func (c *CacheLayer) storeResult(ctx context.Context, logger *zap.Logger, key string, ttl time.Duration, value any, found bool) {
	env := cacheEnvelope{Found: found}
	if !found {
		ttl = c.NegativeTTL(ttl)
	} else {
		payload, err := json.Marshal(value)
		if err != nil {
			logger.Error("Failed to marshal value for cache", zap.Error(err))
			return
		}
		env.Value = payload
	}
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(env)
	if err != nil {
		logger.Error("Failed to marshal cache envelope", zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("Cache set failed", zap.Error(err))
		return
	}
	logger.Debug("Cache stored", zap.Bool("found", found), zap.Duration("ttl", ttl))
}

// Invalidate удаляет ключи с префиксом из пространства search:.
// Хранилище без PrefixInvalidator не поддерживает удаление по префиксу:
// вызов ничего не делает и возвращает 0.
func (c *CacheLayer) Invalidate(ctx context.Context, prefix string) (int, error) {
	if !strings.HasPrefix(prefix, CacheNamespace) {
		return 0, errors.ErrInvalidCachePrefix.WithField("prefix")
	}

	inv, ok := c.store.(repository.PrefixInvalidator)
	if !ok {
		c.logger.Warn("Cache store does not support prefix invalidation, skipping",
			zap.String("prefix", prefix))
		return 0, nil
	}

	deleted, err := inv.DeleteByPrefix(ctx, prefix)
	if err != nil {
		c.logger.Error("Cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
		return deleted, errors.ErrInternalServer.WithMessage("cache invalidation failed")
	}

	c.logger.Info("Cache invalidated", zap.String("prefix", prefix), zap.Int("deleted", deleted))
	return deleted, nil
}

func timedCompute[T any](ctx context.Context, ns string, compute ComputeFunc[T]) (T, bool, error) {
	timer := prometheus.NewTimer(cacheComputeSeconds.WithLabelValues(ns))
	defer timer.ObserveDuration()
	return compute(ctx)
}

// namespaceOf: "search:resolve:..." -> "resolve"
func namespaceOf(key string) string {
	rest := strings.TrimPrefix(key, CacheNamespace)
	if i := strings.IndexByte(rest, ':'); i > 0 {
		return rest[:i]
	}
	return "other"
}
