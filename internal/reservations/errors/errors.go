package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	ErrNotOwner = errors.New("reservation belongs to another user")

	ErrLockHeld = errors.New("room lock is held by another request")

	ErrLockLost = errors.New("room lock is no longer held by this request")
)
