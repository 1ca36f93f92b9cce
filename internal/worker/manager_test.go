package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airport-locator/internal/worker"
)

// loopWorker крутится до Stop; если ignoreStop - не реагирует на него
type loopWorker struct {
	*worker.BaseWorker
	started    atomic.Int32
	ignoreStop bool
}

func newLoopWorker(name string, ignoreStop bool) *loopWorker {
	return &loopWorker{
		BaseWorker: worker.NewBaseWorker(name, "stream:test", "group", zap.NewNop()),
		ignoreStop: ignoreStop,
	}
}

func (w *loopWorker) Start(ctx context.Context) error {
	w.started.Add(1)
	if w.ignoreStop {
		time.Sleep(time.Second)
		return nil
	}
	for w.Pause(ctx, 5*time.Millisecond) {
	}
	return nil
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), time.Second)
	a := newLoopWorker("a", false)
	b := newLoopWorker("b", false)
	require.NoError(t, m.Register(a))
	require.NoError(t, m.Register(b))

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return a.started.Load() == 1 && b.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_StartWithoutWorkers(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 0)
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_RegisterAfterStart(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), time.Second)
	require.NoError(t, m.Register(newLoopWorker("a", false)))
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	assert.Error(t, m.Register(newLoopWorker("b", false)))
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 20*time.Millisecond)
	require.NoError(t, m.Register(newLoopWorker("stuck", true)))
	require.NoError(t, m.Start(context.Background()))

	err := m.Stop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestBaseWorker_Pause(t *testing.T) {
	w := worker.NewBaseWorker("p", "stream:test", "group", zap.NewNop())
	assert.Equal(t, "p", w.Name())
	assert.NotEmpty(t, w.ConsumerName())

	assert.True(t, w.Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, w.Pause(ctx, time.Hour))

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.False(t, w.Pause(context.Background(), time.Hour))
}
