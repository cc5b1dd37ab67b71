package events

import (
	"context"
	"errors"
	"hotelbooking/pkg/kafka"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"testing"
	"time"
)

type mockProducer struct {
	publishFunc func(ctx context.Context, msg kafka.Message) error
	published   []kafka.Message
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, msg)
	}
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}

func testReservation() *model.Reservation {
	return &model.Reservation{
		ID:        "65f0000000000000000000c1",
		UserID:    "client-1",
		RoomID:    "65f0000000000000000000a1",
		HotelID:   "65f0000000000000000000b1",
		DateStart: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_ReservationCreated(t *testing.T) {
	producer := &mockProducer{}
	publisher := NewKafkaPublisher(producer, logger.Discard())

	ctx := logger.WithRequestID(context.Background(), "req-7")
	publisher.ReservationCreated(ctx, testReservation())

	if len(producer.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(producer.published))
	}
	msg := producer.published[0]
	if msg.Key != "65f0000000000000000000a1" {
		t.Errorf("messages must be keyed by room, got %q", msg.Key)
	}
	if msg.GetEventType() != EventReservationCreated {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-7" {
		t.Errorf("correlation id = %q", msg.GetCorrelationID())
	}

	var event ReservationEvent
	if err := msg.DecodeValue(&event); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if event.ReservationID != "65f0000000000000000000c1" || event.ActorID != "client-1" {
		t.Errorf("event = %+v", event)
	}
}

func TestKafkaPublisher_ReservationDeletedRecordsActor(t *testing.T) {
	producer := &mockProducer{}
	publisher := NewKafkaPublisher(producer, logger.Discard())

	publisher.ReservationDeleted(context.Background(), testReservation(), "manager-1")

	var event ReservationEvent
	_ = producer.published[0].DecodeValue(&event)
	if event.ActorID != "manager-1" {
		t.Errorf("actor = %q, want manager-1", event.ActorID)
	}
}

func TestKafkaPublisher_PublishesAfterRequestCancelled(t *testing.T) {
	producer := &mockProducer{
		publishFunc: func(ctx context.Context, msg kafka.Message) error {
			return ctx.Err()
		},
	}
	publisher := NewKafkaPublisher(producer, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	publisher.ReservationCreated(ctx, testReservation())

	if len(producer.published) != 1 {
		t.Errorf("expected publish attempt")
	}
}

func TestKafkaPublisher_SwallowsFailures(t *testing.T) {
	producer := &mockProducer{
		publishFunc: func(ctx context.Context, msg kafka.Message) error {
			return errors.New("broker down")
		},
	}
	publisher := NewKafkaPublisher(producer, logger.Discard())

	publisher.ReservationCreated(context.Background(), testReservation())
}
