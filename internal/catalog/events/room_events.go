package events

import (
	"context"
	"hotelbooking/internal/catalog/service"
	"hotelbooking/pkg/kafka"
	"hotelbooking/pkg/logger"
)

// Event types published by the catalog service on the room events topic.
const (
	EventRoomUpdated  = "room.updated"
	EventRoomDisabled = "room.disabled"
	EventRoomDeleted  = "room.deleted"
	EventHotelUpdated = "hotel.updated"
)

type CatalogEvent struct {
	RoomID  string `json:"room_id,omitempty"`
	HotelID string `json:"hotel_id,omitempty"`
}

// NewRoomEventHandler evicts cached catalog entries so listings pick up edits
// made in the catalog service before the cache TTL runs out.
func NewRoomEventHandler(catalog service.RoomCatalog, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event CatalogEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}

		switch msg.GetEventType() {
		case EventRoomUpdated, EventRoomDisabled, EventRoomDeleted:
			if event.RoomID == "" {
				return kafka.NewPermanentError("invalid message: room event without room_id", nil)
			}
			catalog.InvalidateRoom(event.RoomID)
		case EventHotelUpdated:
			if event.HotelID == "" {
				return kafka.NewPermanentError("invalid message: hotel event without hotel_id", nil)
			}
			catalog.InvalidateHotel(event.HotelID)
		default:
			log.Debug("Ignoring catalog event", "event_type", msg.GetEventType(), "event_id", msg.GetEventID())
			return nil
		}

		log.Info("Catalog cache entry evicted",
			"event_type", msg.GetEventType(),
			"room_id", event.RoomID,
			"hotel_id", event.HotelID,
		)
		return nil
	}
}
