package errors

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")

	ErrHotelNotFound = errors.New("hotel not found")

	ErrInvalidID = errors.New("invalid catalog ID format")
)
