package service

import (
	"context"
	"errors"
	"fmt"
	catalogservice "hotelbooking/internal/catalog/service"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"time"
)

// AvailabilityChecker decides whether a room may be booked for a date range and
// performs the booking. It is the only writer of new reservations.
type AvailabilityChecker struct {
	catalog catalogservice.RoomCatalog
	store   *ReservationStore
	locker  *RoomLocker
	cfg     *config.Config
	now     func() time.Time
}

func NewAvailabilityChecker(
	catalog catalogservice.RoomCatalog,
	store *ReservationStore,
	locker *RoomLocker,
	cfg *config.Config,
) *AvailabilityChecker {
	return &AvailabilityChecker{
		catalog: catalog,
		store:   store,
		locker:  locker,
		cfg:     cfg,
		now:     time.Now,
	}
}

// CreateReservation runs the checks in order and stops at the first failure:
// room exists, room enabled, start not after end, no date in the past, no
// overlap on the room. On success exactly one reservation is written.
func (c *AvailabilityChecker) CreateReservation(ctx context.Context, roomID string, start, end time.Time, requesterID string) (*model.Reservation, model.ReservationView, error) {
	room, err := c.catalog.GetRoom(ctx, roomID)
	if err != nil {
		return nil, model.ReservationView{}, err
	}
	if !room.Enabled {
		return nil, model.ReservationView{}, apperrors.Conflict(fmt.Sprintf("The room with id=%s is disabled", roomID))
	}
	if err := c.checkDates(start, end); err != nil {
		return nil, model.ReservationView{}, err
	}

	lease, err := c.locker.Lock(ctx, roomID)
	if err != nil {
		return nil, model.ReservationView{}, err
	}
	defer lease.Release()

	var reservation *model.Reservation
	err = c.store.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := lease.Fence(txCtx); err != nil {
			return err
		}
		existing, err := c.store.FindOverlapping(txCtx, roomID, start, end)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.Conflict(fmt.Sprintf("The room with id=%s is already reserved for the selected dates", roomID))
		}

		// Built inside the callback: a retried transaction must not reuse an assigned id.
		candidate := &model.Reservation{
			UserID:    requesterID,
			RoomID:    roomID,
			HotelID:   room.HotelID,
			DateStart: start,
			DateEnd:   end,
		}
		if err := c.store.Insert(txCtx, candidate); err != nil {
			return err
		}
		reservation = candidate
		return nil
	})
	if err != nil {
		return nil, model.ReservationView{}, transactionError(ctx, err)
	}

	return reservation, newView(reservation, room.View(), c.describeHotel(ctx, room.HotelID)), nil
}

// --- Helpers ---

func (c *AvailabilityChecker) checkDates(start, end time.Time) error {
	if start.After(end) {
		return apperrors.Conflict("Start date cannot be later than end date")
	}
	if start.Equal(end) && !c.cfg.AllowZeroLengthReservations {
		return apperrors.Conflict("Start date must be earlier than end date")
	}
	now := c.now()
	if start.Before(now) || end.Before(now) {
		return apperrors.Conflict("Reservation dates cannot be in the past")
	}
	return nil
}

// transactionError keeps domain errors raised inside the transaction and maps
// driver failures. A context that ended before commit means nothing was written.
func transactionError(ctx context.Context, err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return apperrors.Timeout("Request timed out before the reservation was stored")
		}
		return fmt.Errorf("storing reservation: %w", ctxErr)
	}
	return apperrors.Internal("Failed to create reservation", err)
}

// describeHotel never fails: the reservation is already committed.
func (c *AvailabilityChecker) describeHotel(ctx context.Context, hotelID string) model.HotelView {
	hotel, err := c.catalog.GetHotel(ctx, hotelID)
	if err != nil {
		c.cfg.Log.Warn("Failed to resolve hotel for new reservation", "hotel_id", hotelID, "error", err)
		return model.HotelView{ID: hotelID}
	}
	return hotel.View()
}
