package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/airport-locator/internal/domain"
	"github.com/airport-locator/internal/domain/repository"
)

type streamRepository struct {
	client       *redis.Client
	logger       *zap.Logger
	blockTimeout time.Duration
}

// NewStreamRepository создает новый экземпляр StreamRepository.
// blockTimeout - сколько XREADGROUP ждёт новых сообщений (<= 0 - не ждать).
func NewStreamRepository(client *redis.Client, logger *zap.Logger, blockTimeout time.Duration) repository.StreamRepository {
	return &streamRepository{
		client:       client,
		logger:       logger,
		blockTimeout: blockTimeout,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// MKSTREAM создаст стрим, если его ещё нет; "$" - только новые сообщения
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created successfully",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeBatch читает пачку новых сообщений из consumer group
func (r *streamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	block := r.blockTimeout
	if block <= 0 {
		block = -1 // go-redis не передаёт BLOCK при отрицательном значении
	}

	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    int64(count),
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	var messages []domain.StreamMessage
	for _, s := range result {
		messages = append(messages, r.toMessages(s.Messages)...)
	}

	return messages, nil
}

// ClaimStale переназначает на consumer зависшие в pending сообщения (XAUTOCLAIM).
// Сообщения, удалённые из стрима, Redis снимает с pending сам.
func (r *streamRepository) ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int) ([]domain.StreamMessage, error) {
	claimed, _, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   stream,
		Group:    group,
		Consumer: consumer,
		MinIdle:  minIdle,
		Start:    "0-0",
		Count:    int64(count),
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to claim pending messages: %w", err)
	}

	if len(claimed) > 0 {
		r.logger.Info("Claimed stale messages",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Int("count", len(claimed)))
	}
	return r.toMessages(claimed), nil
}

func (r *streamRepository) toMessages(in []redis.XMessage) []domain.StreamMessage {
	out := make([]domain.StreamMessage, 0, len(in))
	for _, msg := range in {
		data, ok := msg.Values["data"].(string)
		if !ok {
			r.logger.Warn("Message does not contain 'data' field",
				zap.String("message_id", msg.ID))
		}
		out = append(out, domain.StreamMessage{ID: msg.ID, Data: data})
	}
	return out
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// PublishToStream сериализует data в JSON и кладёт в поле "data"
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{"data": string(payload)},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
