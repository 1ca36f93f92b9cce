package invalidation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/airport-locator/internal/domain"
	"github.com/airport-locator/internal/domain/repository"
	"github.com/airport-locator/internal/usecase"
	"github.com/airport-locator/internal/usecase/dto"
	"github.com/airport-locator/internal/worker"
)

const (
	workerName       = "cache-invalidation"
	defaultBatchSize = 10
)

// CacheInvalidator - удаление закешированных результатов по префиксу
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context, prefix string) (*dto.InvalidateCacheResponse, error)
}

// Prefixes - что сбрасывается при изменении справочника.
// Ключи выдачи не группируются по стране, поэтому сбрасывается всё пространство.
var Prefixes = []string{usecase.ResolveCachePrefix, usecase.NearestCachePrefix}

// Options - параметры чтения стрима
type Options struct {
	ConsumerGroup string
	BatchSize     int
	// ClaimMinIdle - зависшие дольше сообщения забираются перед чтением новых, 0 - выключено
	ClaimMinIdle time.Duration
}

// CacheInvalidationWorker читает stream:airports:changed и сбрасывает кеш поиска
type CacheInvalidationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	invalidator  CacheInvalidator
	batchSize    int
	claimMinIdle time.Duration
}

// NewCacheInvalidationWorker создаёт воркер
func NewCacheInvalidationWorker(
	streamRepo repository.StreamRepository,
	invalidator CacheInvalidator,
	opts Options,
	logger *zap.Logger,
) *CacheInvalidationWorker {
	if opts.BatchSize < 1 {
		opts.BatchSize = defaultBatchSize
	}
	return &CacheInvalidationWorker{
		BaseWorker:   worker.NewBaseWorker(workerName, domain.StreamAirportsChanged, opts.ConsumerGroup, logger),
		streamRepo:   streamRepo,
		invalidator:  invalidator,
		batchSize:    opts.BatchSize,
		claimMinIdle: opts.ClaimMinIdle,
	}
}

// Start создаёт consumer group и обрабатывает пачки до Stop или отмены ctx
func (w *CacheInvalidationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting cache invalidation worker",
		zap.String("stream", w.Stream()),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.batchSize),
		zap.Duration("claim_min_idle", w.claimMinIdle))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for !w.IsStopped() && ctx.Err() == nil {
		processed, err := w.ProcessBatch(ctx)

		pause := worker.EmptyStreamPause
		switch {
		case err != nil:
			logger.Error("Failed to process batch", zap.Error(err))
			pause = worker.ErrorPause
		case processed > 0:
			pause = 0
		}

		if !w.Pause(ctx, pause) {
			break
		}
	}

	logger.Info("Cache invalidation worker stopped")
	return nil
}

// ProcessBatch читает пачку событий и один раз сбрасывает кеш на всю пачку.
// Битые сообщения подтверждаются и пропускаются. Если сброс не удался,
// валидные сообщения не подтверждаются и остаются в pending.
// Возвращает число прочитанных сообщений.
func (w *CacheInvalidationWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.readBatch(ctx)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	valid := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := parseEvent(msg)
		if err != nil {
			logger.Warn("Malformed airports changed event, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			w.ack(ctx, msg.ID)
			continue
		}

		logger.Debug("Airports changed",
			zap.String("message_id", msg.ID),
			zap.String("event_id", event.EventID.String()),
			zap.String("iso_country", event.ISOCountry),
			zap.Strings("codes", event.Codes),
			zap.Bool("global", event.IsGlobal()))
		valid = append(valid, msg.ID)
	}

	if len(valid) == 0 {
		return len(messages), nil
	}

	deleted := 0
	for _, prefix := range Prefixes {
		resp, err := w.invalidator.InvalidateCache(ctx, prefix)
		if err != nil {
			return len(messages), fmt.Errorf("failed to invalidate %s: %w", prefix, err)
		}
		deleted += resp.Deleted
	}

	for _, id := range valid {
		w.ack(ctx, id)
	}

	logger.Info("Search cache invalidated",
		zap.Int("events", len(valid)),
		zap.Int("deleted_keys", deleted))

	return len(messages), nil
}

// readBatch - сначала зависшие в pending (упавший консюмер, неудачный сброс), потом новые
func (w *CacheInvalidationWorker) readBatch(ctx context.Context) ([]domain.StreamMessage, error) {
	if w.claimMinIdle > 0 {
		claimed, err := w.streamRepo.ClaimStale(ctx, w.Stream(), w.ConsumerGroup(), w.ConsumerName(), w.claimMinIdle, w.batchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to claim stale messages: %w", err)
		}
		if len(claimed) > 0 {
			return claimed, nil
		}
	}

	messages, err := w.streamRepo.ConsumeBatch(ctx, w.Stream(), w.ConsumerGroup(), w.ConsumerName(), w.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to consume batch: %w", err)
	}
	return messages, nil
}

// ack - ошибка не критична, сообщение будет прочитано повторно
func (w *CacheInvalidationWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, w.Stream(), w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", id),
			zap.Error(err))
	}
}

func parseEvent(msg domain.StreamMessage) (*domain.AirportsChangedEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("empty payload")
	}

	var event domain.AirportsChangedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	return &event, nil
}
