package http

import (
	"encoding/json"
	"errors"
	apperrors "hotelbooking/pkg/errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{
			name:       "not found",
			err:        apperrors.NotFoundWithID("Reservation", "abc"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeNotFound,
			wantError:  "Reservation with the id=abc does not exist",
		},
		{
			name:       "conflict",
			err:        apperrors.Conflict("Start date cannot be later than end date"),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
			wantError:  "Start date cannot be later than end date",
		},
		{
			name:       "forbidden",
			err:        apperrors.Forbidden("nope"),
			wantStatus: http.StatusForbidden,
			wantCode:   apperrors.CodeForbidden,
		},
		{
			name:       "plain error is hidden",
			err:        errors.New("mongo: connection refused on 10.0.0.5"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeInternal,
			wantError:  "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := WriteError(w, tt.err); err != nil {
				t.Fatalf("WriteError() error = %v", err)
			}

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body apperrors.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if tt.wantError != "" && body.Error != tt.wantError {
				t.Errorf("error = %q, want %q", body.Error, tt.wantError)
			}
		})
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteCreated(w, map[string]string{"id": "1"}); err != nil {
		t.Fatalf("WriteCreated() error = %v", err)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.Contains(w.Body.String(), `"data":{"id":"1"}`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"x"}`},
		{name: "empty", body: ``, wantErr: "Request body is required"},
		{name: "malformed", body: `{"name":`, wantErr: "Invalid request body"},
		{name: "trailing document", body: `{"name":"x"}{"name":"y"}`, wantErr: "Request body must contain a single JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v struct {
				Name string `json:"name"`
			}
			err := DecodeJSON(r, &v)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			if apperrors.AsAppError(err).Message != tt.wantErr {
				t.Errorf("message = %q, want %q", apperrors.AsAppError(err).Message, tt.wantErr)
			}
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 100)+`"}`))
	r.Body = http.MaxBytesReader(w, r.Body, 16)

	var v map[string]any
	err := DecodeJSON(r, &v)
	if err == nil || apperrors.AsAppError(err).Message != "Request body too large" {
		t.Errorf("expected too large error, got %v", err)
	}
}
