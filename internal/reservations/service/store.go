package service

import (
	"context"
	"errors"
	catalogservice "hotelbooking/internal/catalog/service"
	reservationserrors "hotelbooking/internal/reservations/errors"
	"hotelbooking/internal/reservations/repository"
	"hotelbooking/pkg/config"
	mongotx "hotelbooking/pkg/db/mongo"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"time"
)

// ReservationStore is the authoritative log of active reservations. It does not
// check who is calling; the service entry points authorize before reaching it.
type ReservationStore struct {
	repo    repository.ReservationRepository
	catalog catalogservice.RoomCatalog
	cfg     *config.Config
}

func NewReservationStore(repo repository.ReservationRepository, catalog catalogservice.RoomCatalog, cfg *config.Config) *ReservationStore {
	return &ReservationStore{
		repo:    repo,
		catalog: catalog,
		cfg:     cfg,
	}
}

// Insert assigns the id and creation time. Overlap is the caller's responsibility.
func (s *ReservationStore) Insert(ctx context.Context, reservation *model.Reservation) error {
	if err := s.repo.Insert(ctx, reservation); err != nil {
		return apperrors.Internal("Failed to create reservation", err)
	}
	return nil
}

// FindOverlapping returns nil when [start, end] is free on the room.
func (s *ReservationStore) FindOverlapping(ctx context.Context, roomID string, start, end time.Time) (*model.Reservation, error) {
	existing, err := s.repo.FindFirstOverlapping(ctx, roomID, start, end)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing reservations", err)
	}
	return existing, nil
}

func (s *ReservationStore) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return s.repo.ExecuteTransaction(ctx, fn)
}

func (s *ReservationStore) ListByOwner(ctx context.Context, userID string) ([]model.ReservationView, error) {
	return s.listByUser(ctx, userID)
}

func (s *ReservationStore) ListByUser(ctx context.Context, targetUserID string) ([]model.ReservationView, error) {
	return s.listByUser(ctx, targetUserID)
}

func (s *ReservationStore) DeleteOwned(ctx context.Context, id string, requesterID string) (*model.Reservation, error) {
	deleted, err := s.repo.DeleteOwned(ctx, id, requesterID)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotOwner) {
			return nil, apperrors.Forbidden("You do not have permission to delete this reservation")
		}
		return nil, mapLookupError(id, err, "Failed to delete reservation")
	}
	return deleted, nil
}

func (s *ReservationStore) DeleteAny(ctx context.Context, id string) (*model.Reservation, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapLookupError(id, err, "Failed to delete reservation")
	}
	return deleted, nil
}

// --- Helpers ---

func (s *ReservationStore) listByUser(ctx context.Context, userID string) ([]model.ReservationView, error) {
	reservations, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}

	views := make([]model.ReservationView, 0, len(reservations))
	for _, r := range reservations {
		room, hotel, err := s.catalog.Describe(ctx, r.RoomID, r.HotelID)
		if err != nil {
			return nil, err
		}
		views = append(views, newView(r, room, hotel))
	}
	return views, nil
}

func newView(r *model.Reservation, room model.RoomView, hotel model.HotelView) model.ReservationView {
	return model.ReservationView{
		ID:        r.ID,
		StartDate: r.DateStart,
		EndDate:   r.DateEnd,
		Room:      room,
		Hotel:     hotel,
	}
}

func mapLookupError(id string, err error, internalMessage string) error {
	if errors.Is(err, reservationserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Reservation", id)
	}
	if errors.Is(err, reservationserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid reservation ID format")
	}
	return apperrors.Internal(internalMessage, err)
}
