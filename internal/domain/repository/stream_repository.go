package repository

import (
	"context"
	"time"

	"github.com/airport-locator/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// ConsumeBatch читает до count новых сообщений; ждёт не дольше таймаута реализации
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// ClaimStale забирает себе сообщения, не подтверждённые дольше minIdle
	ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
