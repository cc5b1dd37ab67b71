package client

import (
	"context"
	"encoding/json"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestReservationClient_Create(t *testing.T) {
	var gotAuth, gotKey string
	var gotBody model.CreateReservationRequest
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/client/reservations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"r-1","startDate":"2025-07-01T00:00:00Z","endDate":"2025-07-05T00:00:00Z","room":{"id":"a1","description":"Sea view","images":["1.jpg"]},"hotel":{"id":"b1","title":"Grand","description":"Old"}}}`))
	})

	c := NewReservationClient(server.URL, "tok")
	view, err := c.Create(context.Background(), model.CreateReservationRequest{
		RoomID:    "65f0000000000000000000a1",
		DateStart: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC),
	}, "key-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if gotAuth != "Bearer tok" || gotKey != "key-1" {
		t.Errorf("headers: auth=%q key=%q", gotAuth, gotKey)
	}
	if gotBody.RoomID != "65f0000000000000000000a1" {
		t.Errorf("body = %+v", gotBody)
	}
	if view.ID != "r-1" || view.Room.Description != "Sea view" || view.Hotel.Title != "Grand" {
		t.Errorf("view = %+v", view)
	}
}

func TestReservationClient_Errors(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write(apperrors.Conflict("The room with id=a1 is already reserved for the selected dates").ToJSON())
	})

	c := NewReservationClient(server.URL, "tok")
	_, err := c.Create(context.Background(), model.CreateReservationRequest{}, "")

	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if apperrors.AsAppError(err).StatusCode() != http.StatusConflict {
		t.Errorf("status = %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestReservationClient_NonJSONError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	})

	err := NewReservationClient(server.URL, "tok").DeleteOwn(context.Background(), "r-1")
	if !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestReservationClient_ListAndDelete(t *testing.T) {
	var paths []string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[]}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	c := NewReservationClient(server.URL, "tok")
	ctx := context.Background()

	views, err := c.ListForUser(ctx, "C1")
	if err != nil || views == nil || len(views) != 0 {
		t.Fatalf("ListForUser() = %v, %v", views, err)
	}
	if _, err := c.ListOwn(ctx); err != nil {
		t.Fatalf("ListOwn() error = %v", err)
	}
	if err := c.Delete(ctx, "r-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := c.DeleteOwn(ctx, "r-2"); err != nil {
		t.Fatalf("DeleteOwn() error = %v", err)
	}

	want := []string{
		"GET /api/manager/reservations/C1",
		"GET /api/client/reservations",
		"DELETE /api/manager/reservations/r-1",
		"DELETE /api/client/reservations/r-2",
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("request %d = %q, want %q", i, paths[i], p)
		}
	}
}
