package model

import (
	"hotelbooking/pkg/sanitizer"
	"strings"
	"time"
)

type Hotel struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type Room struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	HotelID     string    `json:"hotel_id" bson:"hotel_id"`
	Description string    `json:"description" bson:"description"`
	Images      []string  `json:"images" bson:"images"`
	Enabled     bool      `json:"is_enabled" bson:"is_enabled"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// View drops blank and repeated image paths and never returns nil Images.
func (r *Room) View() RoomView {
	return RoomView{
		ID:          r.ID,
		Description: sanitizer.TrimAndNormalize(r.Description),
		Images:      sanitizer.SanitizeSlice(r.Images, strings.TrimSpace),
	}
}

func (h *Hotel) View() HotelView {
	return HotelView{
		ID:          h.ID,
		Title:       sanitizer.TrimAndNormalize(h.Title),
		Description: sanitizer.TrimAndNormalize(h.Description),
	}
}
