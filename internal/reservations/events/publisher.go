package events

import (
	"context"
	"fmt"
	"hotelbooking/pkg/kafka"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"time"
)

const (
	EventReservationCreated = "reservation.created"
	EventReservationDeleted = "reservation.deleted"

	schemaVersion = "1"
	source        = "reservations"
)

type ReservationEvent struct {
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	RoomID        string    `json:"room_id"`
	HotelID       string    `json:"hotel_id"`
	DateStart     time.Time `json:"date_start"`
	DateEnd       time.Time `json:"date_end"`
	ActorID       string    `json:"actor_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher announces committed reservation changes. Failures never undo the change.
type Publisher interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation)
	ReservationDeleted(ctx context.Context, reservation *model.Reservation, actorID string)
}

type kafkaPublisher struct {
	producer kafka.Publisher
	log      *logger.Logger
}

func NewKafkaPublisher(producer kafka.Publisher, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: producer, log: log}
}

func (p *kafkaPublisher) ReservationCreated(ctx context.Context, reservation *model.Reservation) {
	p.publish(ctx, EventReservationCreated, reservation, reservation.UserID)
}

func (p *kafkaPublisher) ReservationDeleted(ctx context.Context, reservation *model.Reservation, actorID string) {
	p.publish(ctx, EventReservationDeleted, reservation, actorID)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, reservation *model.Reservation, actorID string) {
	msg, err := kafka.NewMessage().
		WithKey(reservation.RoomID).
		WithEventType(eventType).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		WithCorrelationID(logger.RequestID(ctx)).
		WithValue(ReservationEvent{
			ReservationID: reservation.ID,
			UserID:        reservation.UserID,
			RoomID:        reservation.RoomID,
			HotelID:       reservation.HotelID,
			DateStart:     reservation.DateStart,
			DateEnd:       reservation.DateEnd,
			ActorID:       actorID,
			OccurredAt:    time.Now().UTC(),
		}).
		Build()
	if err == nil {
		// The request may already be finishing; the event must still go out.
		err = p.producer.Publish(context.WithoutCancel(ctx), msg)
	}
	if err != nil {
		p.log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", fmt.Errorf("publish %s: %w", eventType, err),
		)
	}
}

type noopPublisher struct{}

// NewNoopPublisher is used when Kafka is disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) ReservationCreated(context.Context, *model.Reservation) {}

func (noopPublisher) ReservationDeleted(context.Context, *model.Reservation, string) {}
