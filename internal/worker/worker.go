package worker

import (
	"context"
	"time"
)

// Worker - фоновый процесс под управлением WorkerManager
type Worker interface {
	// Start блокирует до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует о завершении, не дожидаясь его
	Stop() error

	Name() string
}

// Паузы цикла чтения стрима
const (
	// EmptyStreamPause - пауза, если стрим пуст
	EmptyStreamPause = 100 * time.Millisecond

	// ErrorPause - пауза после ошибки чтения или обработки
	ErrorPause = time.Second
)
