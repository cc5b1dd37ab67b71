package service

import (
	"context"
	"errors"
	"fmt"
	reservationserrors "hotelbooking/internal/reservations/errors"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"testing"
	"time"
)

func seedReservation(t *testing.T, env *testEnv, userID string, start, end time.Time) *model.Reservation {
	t.Helper()
	r := &model.Reservation{
		UserID:    userID,
		RoomID:    testRoomID,
		HotelID:   testHotelID,
		DateStart: start,
		DateEnd:   end,
	}
	if err := env.store.Insert(context.Background(), r); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return r
}

func TestReservationStore_ListByOwner(t *testing.T) {
	env := newTestEnv()
	first := seedReservation(t, env, "client-1", day(time.July, 1), day(time.July, 2))
	second := seedReservation(t, env, "client-1", day(time.July, 10), day(time.July, 12))
	seedReservation(t, env, "client-2", day(time.July, 20), day(time.July, 22))

	views, err := env.store.ListByOwner(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	if views[0].ID != first.ID || views[1].ID != second.ID {
		t.Errorf("expected creation order, got %s, %s", views[0].ID, views[1].ID)
	}
	if views[0].Room.Description != "Sea view double" || views[0].Hotel.Title != "Grand Hotel" {
		t.Errorf("view not enriched: %+v", views[0])
	}
}

func TestReservationStore_ListByUserEmpty(t *testing.T) {
	env := newTestEnv()

	views, err := env.store.ListByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", views)
	}
}

func TestReservationStore_ListWithMissingCatalogEntries(t *testing.T) {
	env := newTestEnv()
	seedReservation(t, env, "client-1", day(time.July, 1), day(time.July, 2))
	delete(env.catalog.rooms, testRoomID)

	views, err := env.store.ListByOwner(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if views[0].Room.ID != testRoomID || views[0].Room.Description != "" {
		t.Errorf("room view = %+v, want id only", views[0].Room)
	}
}

func TestReservationStore_DeleteOwned(t *testing.T) {
	env := newTestEnv()
	own := seedReservation(t, env, "client-1", day(time.July, 1), day(time.July, 2))
	other := seedReservation(t, env, "client-2", day(time.July, 5), day(time.July, 6))

	tests := []struct {
		name     string
		id       string
		wantCode string
	}{
		{name: "someone else's", id: other.ID, wantCode: apperrors.CodeForbidden},
		{name: "missing", id: fmt.Sprintf("%024x", 999), wantCode: apperrors.CodeNotFound},
		{name: "own", id: own.ID},
		{name: "already deleted", id: own.ID, wantCode: apperrors.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted, err := env.store.DeleteOwned(context.Background(), tt.id, "client-1")
			if tt.wantCode != "" {
				assertCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if deleted.ID != tt.id {
				t.Errorf("deleted id = %s, want %s", deleted.ID, tt.id)
			}
		})
	}

	if _, err := env.repo.FindByID(context.Background(), other.ID); err != nil {
		t.Error("forbidden delete must leave the reservation in place")
	}
}

func TestReservationStore_DeleteAny(t *testing.T) {
	env := newTestEnv()
	r := seedReservation(t, env, "client-2", day(time.July, 5), day(time.July, 6))

	if _, err := env.store.DeleteAny(context.Background(), r.ID); err != nil {
		t.Fatalf("DeleteAny() error = %v", err)
	}
	_, err := env.store.DeleteAny(context.Background(), r.ID)
	assertCode(t, err, apperrors.CodeNotFound)

	want := fmt.Sprintf("Reservation with the id=%s does not exist", r.ID)
	if got := apperrors.AsAppError(err).Message; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestMapLookupError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "not found", err: reservationserrors.ErrNotFound, wantCode: apperrors.CodeNotFound},
		{name: "invalid id", err: fmt.Errorf("%w: x", reservationserrors.ErrInvalidID), wantCode: apperrors.CodeInvalidInput},
		{name: "anything else", err: errors.New("socket closed"), wantCode: apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, mapLookupError("x", tt.err, "Failed"), tt.wantCode)
		})
	}
}
