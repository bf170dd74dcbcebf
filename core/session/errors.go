package session

import "errors"

var (
	// ErrNotFound is returned by stores when no record exists for an id.
	ErrNotFound = errors.New("session: not found")

	// ErrInvalidID is returned when an id does not have the shape of a
	// session id.
	ErrInvalidID = errors.New("session: invalid id")

	// ErrNilStore is returned by New when no store is supplied.
	ErrNilStore = errors.New("session: store is required")
)
