package service

import (
	"context"
	"errors"
	"fmt"
	"hotelbooking/internal/catalog/cache"
	catalogerrors "hotelbooking/internal/catalog/errors"
	"hotelbooking/internal/catalog/repository"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"time"
)

// RoomCatalog is the read side of the hotel catalog as seen by the booking engine.
type RoomCatalog interface {
	// GetRoom always reads the current room document; the enabled flag must never come from cache.
	GetRoom(ctx context.Context, roomID string) (*model.Room, error)
	GetHotel(ctx context.Context, hotelID string) (*model.Hotel, error)
	// Describe resolves descriptive fields for listings through the cache. Missing
	// catalog entries yield views holding only the id.
	Describe(ctx context.Context, roomID, hotelID string) (model.RoomView, model.HotelView, error)
	InvalidateRoom(roomID string)
	InvalidateHotel(hotelID string)
	PurgeExpired() int
}

type roomCatalog struct {
	repo   repository.CatalogRepository
	rooms  *cache.TTL[*model.Room]
	hotels *cache.TTL[*model.Hotel]
	log    *logger.Logger
}

func NewRoomCatalog(repo repository.CatalogRepository, cacheTTL time.Duration, log *logger.Logger) RoomCatalog {
	return &roomCatalog{
		repo:   repo,
		rooms:  cache.NewTTL[*model.Room](cacheTTL),
		hotels: cache.NewTTL[*model.Hotel](cacheTTL),
		log:    log,
	}
}

func (c *roomCatalog) GetRoom(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := c.repo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, c.mapRoomError(roomID, err)
	}
	c.rooms.Set(roomID, room)
	return room, nil
}

func (c *roomCatalog) GetHotel(ctx context.Context, hotelID string) (*model.Hotel, error) {
	if hotel, ok := c.hotels.Get(hotelID); ok {
		return hotel, nil
	}

	hotel, err := c.repo.FindHotelByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrHotelNotFound) || errors.Is(err, catalogerrors.ErrInvalidID) {
			return nil, apperrors.NotFound(fmt.Sprintf("The hotel with id=%s does not exist", hotelID))
		}
		c.log.Error("Failed to load hotel", "hotel_id", hotelID, "error", err)
		return nil, apperrors.Internal("Failed to load hotel", err)
	}
	c.hotels.Set(hotelID, hotel)
	return hotel, nil
}

func (c *roomCatalog) Describe(ctx context.Context, roomID, hotelID string) (model.RoomView, model.HotelView, error) {
	roomView := model.RoomView{ID: roomID, Images: []string{}}
	hotelView := model.HotelView{ID: hotelID}

	room, err := c.cachedRoom(ctx, roomID)
	switch {
	case err == nil:
		roomView = room.View()
	case apperrors.HasCode(err, apperrors.CodeNotFound):
		c.log.Warn("Reservation references a room missing from the catalog", "room_id", roomID)
	default:
		return roomView, hotelView, err
	}

	hotel, err := c.GetHotel(ctx, hotelID)
	switch {
	case err == nil:
		hotelView = hotel.View()
	case apperrors.HasCode(err, apperrors.CodeNotFound):
		c.log.Warn("Reservation references a hotel missing from the catalog", "hotel_id", hotelID)
	default:
		return roomView, hotelView, err
	}

	return roomView, hotelView, nil
}

func (c *roomCatalog) InvalidateRoom(roomID string) {
	c.rooms.Delete(roomID)
}

func (c *roomCatalog) InvalidateHotel(hotelID string) {
	c.hotels.Delete(hotelID)
}

// PurgeExpired drops expired room and hotel entries and returns how many went.
func (c *roomCatalog) PurgeExpired() int {
	return c.rooms.Purge() + c.hotels.Purge()
}

// --- Helpers ---

func (c *roomCatalog) cachedRoom(ctx context.Context, roomID string) (*model.Room, error) {
	if room, ok := c.rooms.Get(roomID); ok {
		return room, nil
	}
	return c.GetRoom(ctx, roomID)
}

func (c *roomCatalog) mapRoomError(roomID string, err error) error {
	if errors.Is(err, catalogerrors.ErrRoomNotFound) || errors.Is(err, catalogerrors.ErrInvalidID) {
		return apperrors.NotFound(fmt.Sprintf("The room with id=%s does not exist", roomID))
	}
	c.log.Error("Failed to load room", "room_id", roomID, "error", err)
	return apperrors.Internal("Failed to load room", err)
}
