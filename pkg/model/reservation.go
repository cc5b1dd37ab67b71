package model

import (
	"time"
)

type Reservation struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID    string    `json:"user_id" bson:"user_id" validate:"required"`
	RoomID    string    `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	HotelID   string    `json:"hotel_id" bson:"hotel_id" validate:"required,mongodb"`
	DateStart time.Time `json:"date_start" bson:"date_start" validate:"required"`
	DateEnd   time.Time `json:"date_end" bson:"date_end" validate:"required"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Overlaps uses closed intervals: reservations that share a boundary instant collide.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return !r.DateStart.After(end) && !r.DateEnd.Before(start)
}

type CreateReservationRequest struct {
	RoomID    string    `json:"hotelRoom" validate:"required,mongodb"`
	DateStart time.Time `json:"dateStart" validate:"required,calendar_date"`
	DateEnd   time.Time `json:"dateEnd" validate:"required,calendar_date"`
}

// ReservationView is what callers of the booking API see: the reservation dates
// plus the descriptive room and hotel fields resolved from the catalog.
type ReservationView struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Room      RoomView  `json:"room"`
	Hotel     HotelView `json:"hotel"`
}

type RoomView struct {
	ID          string   `json:"id,omitempty"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type HotelView struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
