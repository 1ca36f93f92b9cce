package invalidation_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airport-locator/internal/domain"
	"github.com/airport-locator/internal/usecase"
	"github.com/airport-locator/internal/usecase/dto"
	"github.com/airport-locator/internal/worker/invalidation"
)

const group = "airport-cache-invalidators"

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateCache(ctx context.Context, prefix string) (*dto.InvalidateCacheResponse, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InvalidateCacheResponse), args.Error(1)
}

func eventMessage(t *testing.T, id string, event domain.AirportsChangedEvent) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func newWorker(stream *MockStreamRepository, inv *MockInvalidator) *invalidation.CacheInvalidationWorker {
	return invalidation.NewCacheInvalidationWorker(stream, inv, invalidation.Options{
		ConsumerGroup: group,
		BatchSize:     5,
	}, zap.NewNop())
}

func TestProcessBatch_InvalidatesOncePerBatch(t *testing.T) {
	stream := &MockStreamRepository{}
	inv := &MockInvalidator{}
	w := newWorker(stream, inv)

	msgs := []domain.StreamMessage{
		eventMessage(t, "1-0", domain.NewAirportsChangedEvent("us", "dfw")),
		eventMessage(t, "2-0", domain.NewAirportsChangedEvent("")),
	}
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAirportsChanged, group, w.ConsumerName(), 5).Return(msgs, nil).Once()
	inv.On("InvalidateCache", mock.Anything, usecase.ResolveCachePrefix).
		Return(&dto.InvalidateCacheResponse{Prefix: usecase.ResolveCachePrefix, Deleted: 3}, nil).Once()
	inv.On("InvalidateCache", mock.Anything, usecase.NearestCachePrefix).
		Return(&dto.InvalidateCacheResponse{Prefix: usecase.NearestCachePrefix, Deleted: 2}, nil).Once()
	stream.On("AckMessage", mock.Anything, domain.StreamAirportsChanged, group, "1-0").Return(nil).Once()
	stream.On("AckMessage", mock.Anything, domain.StreamAirportsChanged, group, "2-0").Return(nil).Once()

	processed, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	stream.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestProcessBatch_MalformedMessagesAckedAndSkipped(t *testing.T) {
	stream := &MockStreamRepository{}
	inv := &MockInvalidator{}
	w := newWorker(stream, inv)

	msgs := []domain.StreamMessage{
		{ID: "1-0", Data: "{not json"},
		{ID: "2-0", Data: ""},
	}
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAirportsChanged, group, w.ConsumerName(), 5).Return(msgs, nil).Once()
	stream.On("AckMessage", mock.Anything, domain.StreamAirportsChanged, group, "1-0").Return(nil).Once()
	stream.On("AckMessage", mock.Anything, domain.StreamAirportsChanged, group, "2-0").Return(nil).Once()

	processed, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	stream.AssertExpectations(t)
	inv.AssertNotCalled(t, "InvalidateCache", mock.Anything, mock.Anything)
}

func TestProcessBatch_InvalidationFailureLeavesPending(t *testing.T) {
	stream := &MockStreamRepository{}
	inv := &MockInvalidator{}
	w := newWorker(stream, inv)

	msgs := []domain.StreamMessage{
		{ID: "1-0", Data: "garbage"},
		eventMessage(t, "2-0", domain.NewAirportsChangedEvent("GB")),
	}
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAirportsChanged, group, w.ConsumerName(), 5).Return(msgs, nil).Once()
	stream.On("AckMessage", mock.Anything, domain.StreamAirportsChanged, group, "1-0").Return(nil).Once()
	inv.On("InvalidateCache", mock.Anything, usecase.ResolveCachePrefix).Return(nil, errors.New("redis down")).Once()

	processed, err := w.ProcessBatch(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, processed)

	stream.AssertExpectations(t)
	stream.AssertNotCalled(t, "AckMessage", mock.Anything, domain.StreamAirportsChanged, group, "2-0")
}

func TestProcessBatch_Empty(t *testing.T) {
	stream := &MockStreamRepository{}
	inv := &MockInvalidator{}
	w := newWorker(stream, inv)

	stream.On("ConsumeBatch", mock.Anything, domain.StreamAirportsChanged, group, w.ConsumerName(), 5).Return(nil, nil).Once()

	processed, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestProcessBatch_ConsumeError(t *testing.T) {
	stream := &MockStreamRepository{}
	w := newWorker(stream, &MockInvalidator{})

	stream.On("ConsumeBatch", mock.Anything, domain.StreamAirportsChanged, group, w.ConsumerName(), 5).
		Return(nil, errors.New("connection refused")).Once()

	_, err := w.ProcessBatch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStart_CreateGroupFails(t *testing.T) {
	stream := &MockStreamRepository{}
	w := newWorker(stream, &MockInvalidator{})

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamAirportsChanged, group).Return(errors.New("NOAUTH")).Once()

	err := w.Start(context.Background())
	require.Error(t, err)
}

func TestStart_StopsOnStop(t *testing.T) {
	stream := &MockStreamRepository{}
	w := newWorker(stream, &MockInvalidator{})

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamAirportsChanged, group).Return(nil).Once()
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAirportsChanged, group, w.ConsumerName(), 5).Return(nil, nil)

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestProcessBatch_ClaimsStaleBeforeNew(t *testing.T) {
	stream := &MockStreamRepository{}
	inv := &MockInvalidator{}
	w := invalidation.NewCacheInvalidationWorker(stream, inv, invalidation.Options{
		ConsumerGroup: group,
		BatchSize:     5,
		ClaimMinIdle:  time.Minute,
	}, zap.NewNop())

	stale := []domain.StreamMessage{eventMessage(t, "1-0", domain.NewAirportsChangedEvent("MX"))}
	stream.On("ClaimStale", mock.Anything, domain.StreamAirportsChanged, group, w.ConsumerName(), time.Minute, 5).Return(stale, nil).Once()
	inv.On("InvalidateCache", mock.Anything, mock.Anything).Return(&dto.InvalidateCacheResponse{}, nil).Twice()
	stream.On("AckMessage", mock.Anything, domain.StreamAirportsChanged, group, "1-0").Return(nil).Once()

	processed, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	stream.AssertExpectations(t)
	stream.AssertNotCalled(t, "ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	inv.AssertExpectations(t)
}

func TestProcessBatch_NothingStaleReadsNew(t *testing.T) {
	stream := &MockStreamRepository{}
	inv := &MockInvalidator{}
	w := invalidation.NewCacheInvalidationWorker(stream, inv, invalidation.Options{
		ConsumerGroup: group,
		BatchSize:     5,
		ClaimMinIdle:  time.Minute,
	}, zap.NewNop())

	stream.On("ClaimStale", mock.Anything, domain.StreamAirportsChanged, group, w.ConsumerName(), time.Minute, 5).Return(nil, nil).Once()
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAirportsChanged, group, w.ConsumerName(), 5).Return(nil, nil).Once()

	processed, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	stream.AssertExpectations(t)
}
