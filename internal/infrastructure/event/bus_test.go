package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string, companyID uuid.UUID) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Quote", uuid.New(), companyID),
	}
}

type recordingHandler struct {
	eventTypes []string
	err        error
	panicMsg   string
	mu         sync.Mutex
	handled    []shared.DomainEvent
}

func newRecordingHandler(eventTypes ...string) *recordingHandler {
	return &recordingHandler{eventTypes: eventTypes}
}

func (h *recordingHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	h.mu.Lock()
	h.handled = append(h.handled, ev)
	h.mu.Unlock()
	if h.panicMsg != "" {
		panic(h.panicMsg)
	}
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.eventTypes }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newRecordingHandler("QuoteBooked")
	bus.Subscribe(handler)

	ev := newTestEvent("QuoteBooked", uuid.New())
	require.NoError(t, bus.Publish(context.Background(), ev))

	require.Equal(t, 1, handler.count())
	assert.Same(t, ev, handler.handled[0])
}

func TestInMemoryEventBus_Publish_OnlyMatchingTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	booked := newRecordingHandler("QuoteBooked")
	cancelled := newRecordingHandler("QuoteCancelled")
	bus.Subscribe(booked)
	bus.Subscribe(cancelled)

	companyID := uuid.New()
	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("QuoteBooked", companyID),
		newTestEvent("QuoteBooked", companyID),
		newTestEvent("QuoteSubmitted", companyID),
	))

	assert.Equal(t, 2, booked.count())
	assert.Equal(t, 0, cancelled.count())
}

func TestInMemoryEventBus_Subscribe_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newRecordingHandler("QuoteBooked")
	bus.Subscribe(handler, "QuoteCompleted")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("QuoteBooked", uuid.New())))
	assert.Equal(t, 0, handler.count())

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("QuoteCompleted", uuid.New())))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_Publish_Wildcard(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	all := newRecordingHandler()
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("QuoteBooked", uuid.New()),
		newTestEvent("ShiftCreated", uuid.New()),
	))
	assert.Equal(t, 2, all.count())
}

func TestInMemoryEventBus_Publish_FailuresDoNotStopDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := newRecordingHandler("QuoteCancelled")
	failing.err = errors.New("release failed")
	panicking := newRecordingHandler("QuoteCancelled")
	panicking.panicMsg = "boom"
	healthy := newRecordingHandler("QuoteCancelled")

	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("QuoteCancelled", uuid.New())))

	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, panicking.count())
	assert.Equal(t, 1, healthy.count())

	stats := bus.Stats()
	assert.Equal(t, int64(1), stats.Published)
	assert.Equal(t, int64(1), stats.Delivered)
	assert.Equal(t, int64(2), stats.Failed)
	assert.Equal(t, 3, stats.Handlers)
}

func TestInMemoryEventBus_Publish_CancelledContext(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newRecordingHandler("QuoteBooked")
	bus.Subscribe(handler)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(ctx, newTestEvent("QuoteBooked", uuid.New()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, handler.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newRecordingHandler("QuoteBooked")
	bus.Subscribe(handler)

	_ = bus.Publish(context.Background(), newTestEvent("QuoteBooked", uuid.New()))
	bus.Unsubscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("QuoteBooked", uuid.New()))

	assert.Equal(t, 1, handler.count())
	assert.Equal(t, 0, bus.Stats().Handlers)
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	ctx := context.Background()

	assert.False(t, bus.Stats().Running)
	require.NoError(t, bus.Start(ctx))
	assert.True(t, bus.Stats().Running)
	require.NoError(t, bus.Stop(ctx))
	assert.False(t, bus.Stats().Running)
}

func TestFuncHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	var seen []string
	h := NewFuncHandler("invalidate", func(ctx context.Context, ev shared.DomainEvent) error {
		seen = append(seen, ev.EventType())
		return nil
	}, "QuoteBooked", "QuoteCompleted")
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("QuoteBooked", uuid.New()),
		newTestEvent("QuoteSubmitted", uuid.New()),
		newTestEvent("QuoteCompleted", uuid.New()),
	))

	assert.Equal(t, []string{"QuoteBooked", "QuoteCompleted"}, seen)
	assert.Equal(t, "invalidate", h.Name())
}
