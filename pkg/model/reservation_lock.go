package model

import "time"

// ReservationLock is the per-room exclusion token held while a reservation is checked and inserted.
// Owner lets a holder release only its own lock; ExpiresAt bounds how long a crashed holder blocks the room.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	RoomID    string    `bson:"room_id" json:"room_id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// FencedAt is set by the holder's booking transaction.
	FencedAt *time.Time `bson:"fenced_at,omitempty" json:"fenced_at,omitempty"`
}
