package kafka

import (
	"context"
	"errors"
	"hotelbooking/pkg/logger"
	"testing"
)

func TestConsumer_ProcessMessage_Success(t *testing.T) {
	calls := 0
	c := newConsumer("room-events", "group", 3, func(ctx context.Context, msg Message) error {
		calls++
		return nil
	}, logger.Discard())

	if err := c.processMessage(context.Background(), Message{Headers: map[string]string{}}); err != nil {
		t.Fatalf("processMessage() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestConsumer_ProcessMessage_RetriesTransient(t *testing.T) {
	calls := 0
	c := newConsumer("room-events", "group", 2, func(ctx context.Context, msg Message) error {
		calls++
		if calls < 3 {
			return NewTransientError("catalog unavailable", nil)
		}
		return nil
	}, logger.Discard())

	if err := c.processMessage(context.Background(), Message{Headers: map[string]string{}}); err != nil {
		t.Fatalf("processMessage() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
}

func TestConsumer_ProcessMessage_GivesUpOnPermanent(t *testing.T) {
	calls := 0
	permanent := NewPermanentError("bad payload", nil)
	c := newConsumer("room-events", "group", 5, func(ctx context.Context, msg Message) error {
		calls++
		return permanent
	}, logger.Discard())

	err := c.processMessage(context.Background(), Message{Headers: map[string]string{}})
	if !errors.Is(err, permanent) {
		t.Errorf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestConsumer_MiddlewareOrder(t *testing.T) {
	var order []string
	c := newConsumer("room-events", "group", 0, func(ctx context.Context, msg Message) error {
		order = append(order, "handler")
		return nil
	}, logger.Discard())

	for _, name := range []string{"first", "second"} {
		name := name
		c.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
			order = append(order, name)
			return next(ctx, msg)
		})
	}

	_ = c.processMessage(context.Background(), Message{Headers: map[string]string{}})

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
		}
	}
}
