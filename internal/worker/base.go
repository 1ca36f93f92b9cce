package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BaseWorker - общее для воркеров, читающих Redis Stream через consumer group
type BaseWorker struct {
	name          string
	stream        string
	consumerGroup string
	consumerName  string
	logger        *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewBaseWorker создаёт BaseWorker; имя консюмера - hostname-pid
func NewBaseWorker(name, stream, consumerGroup string, logger *zap.Logger) *BaseWorker {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "worker"
	}

	return &BaseWorker{
		name:          name,
		stream:        stream,
		consumerGroup: consumerGroup,
		consumerName:  fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string          { return w.name }
func (w *BaseWorker) Stream() string        { return w.stream }
func (w *BaseWorker) ConsumerGroup() string { return w.consumerGroup }
func (w *BaseWorker) ConsumerName() string  { return w.consumerName }
func (w *BaseWorker) Logger() *zap.Logger   { return w.logger }

// Stop сигнализирует циклу воркера завершиться; повторный вызов ничего не делает
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopChan)
	})
	return nil
}

// IsStopped проверяет, был ли вызван Stop
func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

// StopChan возвращает канал остановки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Pause ждёт d; false, если за это время воркер остановили или отменили ctx
func (w *BaseWorker) Pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return !w.IsStopped() && ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-w.stopChan:
		return false
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
