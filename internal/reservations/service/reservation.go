package service

import (
	"context"
	"errors"
	"hotelbooking/internal/reservations/events"
	"hotelbooking/internal/reservations/validator"
	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
	"strings"
)

// ReservationService is the role-gated entry point of the booking engine. Every
// operation authorizes the principal before touching any other component.
type ReservationService interface {
	CreateReservation(ctx context.Context, principal *auth.Principal, req *model.CreateReservationRequest) (*model.ReservationView, error)
	ListOwnReservations(ctx context.Context, principal *auth.Principal) ([]model.ReservationView, error)
	ListReservationsForUser(ctx context.Context, principal *auth.Principal, userID string) ([]model.ReservationView, error)
	DeleteOwnReservation(ctx context.Context, principal *auth.Principal, id string) error
	DeleteReservation(ctx context.Context, principal *auth.Principal, id string) error
}

type reservationService struct {
	checker   *AvailabilityChecker
	store     *ReservationStore
	validator *validator.ReservationValidator
	events    events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	checker *AvailabilityChecker,
	store *ReservationStore,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		checker:   checker,
		store:     store,
		validator: validator,
		events:    publisher,
		cfg:       cfg,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, principal *auth.Principal, req *model.CreateReservationRequest) (*model.ReservationView, error) {
	if err := auth.Authorize(principal, auth.RoleClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.InvalidInput("Reservation request cannot be empty")
	}
	req.RoomID = sanitizer.NormalizeID(req.RoomID)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	start, end := req.DateStart.UTC(), req.DateEnd.UTC()
	reservation, view, err := s.checker.CreateReservation(ctx, req.RoomID, start, end, principal.ID)
	if err != nil {
		s.logFailure(ctx, "Failed to create reservation", err, "room_id", req.RoomID, "user_id", principal.ID)
		return nil, err
	}

	s.events.ReservationCreated(ctx, reservation)
	s.cfg.Log.FromContext(ctx).Info("Reservation created successfully",
		"id", reservation.ID,
		"room_id", reservation.RoomID,
		"hotel_id", reservation.HotelID,
		"user_id", reservation.UserID,
		"date_start", reservation.DateStart,
		"date_end", reservation.DateEnd,
	)
	return &view, nil
}

func (s *reservationService) ListOwnReservations(ctx context.Context, principal *auth.Principal) ([]model.ReservationView, error) {
	if err := auth.Authorize(principal, auth.RoleClient); err != nil {
		return nil, err
	}

	views, err := s.store.ListByOwner(ctx, principal.ID)
	if err != nil {
		s.logFailure(ctx, "Failed to list own reservations", err, "user_id", principal.ID)
		return nil, err
	}
	return views, nil
}

func (s *reservationService) ListReservationsForUser(ctx context.Context, principal *auth.Principal, userID string) ([]model.ReservationView, error) {
	if err := auth.Authorize(principal, auth.RoleManager); err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	if err := s.validator.ValidateUserID(userID); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, apperrors.Validation("User ID validation failed", validationErrs.Details())
		}
		return nil, apperrors.Validation("User ID validation failed", map[string]any{"error": err.Error()})
	}

	views, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		s.logFailure(ctx, "Failed to list user reservations", err, "user_id", userID, "manager_id", principal.ID)
		return nil, err
	}

	s.cfg.Log.FromContext(ctx).Debug("User reservations listed",
		"user_id", userID,
		"manager_id", principal.ID,
		"count", len(views),
	)
	return views, nil
}

func (s *reservationService) DeleteOwnReservation(ctx context.Context, principal *auth.Principal, id string) error {
	if err := auth.Authorize(principal, auth.RoleClient); err != nil {
		return err
	}
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	deleted, err := s.store.DeleteOwned(ctx, id, principal.ID)
	if err != nil {
		s.logFailure(ctx, "Failed to delete own reservation", err, "id", id, "user_id", principal.ID)
		return err
	}

	s.events.ReservationDeleted(ctx, deleted, principal.ID)
	s.cfg.Log.FromContext(ctx).Info("Reservation deleted successfully", "id", id, "user_id", principal.ID)
	return nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, principal *auth.Principal, id string) error {
	if err := auth.Authorize(principal, auth.RoleManager); err != nil {
		return err
	}
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	deleted, err := s.store.DeleteAny(ctx, id)
	if err != nil {
		s.logFailure(ctx, "Failed to delete reservation", err, "id", id, "manager_id", principal.ID)
		return err
	}

	s.events.ReservationDeleted(ctx, deleted, principal.ID)
	s.cfg.Log.FromContext(ctx).Info("Reservation deleted by manager",
		"id", id,
		"user_id", deleted.UserID,
		"manager_id", principal.ID,
	)
	return nil
}

// --- Helpers ---

func (s *reservationService) validate(req *model.CreateReservationRequest) error {
	err := s.validator.ValidateCreate(req)
	if err == nil {
		return nil
	}
	s.cfg.Log.Warn("Reservation validation failed", "error", err)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Validation("Reservation validation failed", validationErrs.Details())
	}
	return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
}

// logFailure logs expected client errors and abandoned requests at Warn and
// everything else at Error.
func (s *reservationService) logFailure(ctx context.Context, msg string, err error, args ...any) {
	log := s.cfg.Log.FromContext(ctx)
	args = append(args, "error", err)

	if errors.Is(err, context.Canceled) {
		log.Warn(msg, args...)
		return
	}
	appErr := apperrors.AsAppError(err)
	if appErr != nil && appErr.StatusCode() < 500 {
		log.Warn(msg, args...)
		return
	}
	log.Error(msg, args...)
}
