package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"umroh_travel_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.happened" }

func TestPublishRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		bus.Subscribe("test.happened", HandlerFunc(func(ctx context.Context, e Event) error {
			calls.Add(1)
			return nil
		}))
	}

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	bus.Wait()

	if calls.Load() != 3 {
		t.Fatalf("expected 3 handler calls, got %d", calls.Load())
	}
}

func TestPublishSyncStopsOnFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	boom := errors.New("boom")
	var second bool

	bus.Subscribe("test.happened", HandlerFunc(func(ctx context.Context, e Event) error { return boom }))
	bus.Subscribe("test.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		second = true
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if second {
		t.Fatal("second handler should not run after a failure")
	}
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	bus.Subscribe("test.happened", HandlerFunc(func(ctx context.Context, e Event) error { panic("bad") }))

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err == nil {
		t.Fatal("expected panic to surface as error")
	}
}
