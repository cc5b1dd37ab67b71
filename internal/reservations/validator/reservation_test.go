package validator

import (
	"errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"testing"
	"time"
)

func TestValidateCreate(t *testing.T) {
	v := NewReservationValidator(logger.Discard())
	start := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       *model.CreateReservationRequest
		wantField string
	}{
		{
			name: "valid",
			req:  &model.CreateReservationRequest{RoomID: "65f0000000000000000000a1", DateStart: start, DateEnd: end},
		},
		{
			name:      "missing room",
			req:       &model.CreateReservationRequest{DateStart: start, DateEnd: end},
			wantField: "hotelRoom",
		},
		{
			name:      "malformed room id",
			req:       &model.CreateReservationRequest{RoomID: "room-1", DateStart: start, DateEnd: end},
			wantField: "hotelRoom",
		},
		{
			name:      "missing start",
			req:       &model.CreateReservationRequest{RoomID: "65f0000000000000000000a1", DateEnd: end},
			wantField: "dateStart",
		},
		{
			name:      "absurd end",
			req:       &model.CreateReservationRequest{RoomID: "65f0000000000000000000a1", DateStart: start, DateEnd: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
			wantField: "dateEnd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs.Details()[tt.wantField]; !ok {
				t.Errorf("expected error on %s, got %v", tt.wantField, verrs)
			}
		})
	}
}

func TestValidateCreate_InvertedRangeIsNotAValidationError(t *testing.T) {
	v := NewReservationValidator(logger.Discard())
	req := &model.CreateReservationRequest{
		RoomID:    "65f0000000000000000000a1",
		DateStart: time.Date(2025, time.July, 9, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := v.ValidateCreate(req); err != nil {
		t.Errorf("date ordering is checked by the availability checker, got %v", err)
	}
}

func TestValidateUserID(t *testing.T) {
	v := NewReservationValidator(logger.Discard())

	if err := v.ValidateUserID("  "); err == nil {
		t.Errorf("blank user id should fail")
	}
	if err := v.ValidateUserID("65f000000000000000000001"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}
	want := "validation failed: 2 error(s): [a: bad; b: worse]"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}
