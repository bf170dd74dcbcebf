package local

import "errors"

// ErrInvalidRoot is returned when the storage root is empty or cannot
// be created.
var ErrInvalidRoot = errors.New("invalid storage root")
