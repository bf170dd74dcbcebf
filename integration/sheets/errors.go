package sheets

import "errors"

var (
	// ErrInvalidConfig is returned when the export URL template is
	// malformed.
	ErrInvalidConfig = errors.New("invalid sheets configuration")

	// ErrEmptyName is returned when no document key is supplied.
	ErrEmptyName = errors.New("sheet name is empty")

	// ErrUnreachable indicates the export endpoint could not be
	// reached.
	ErrUnreachable = errors.New("sheet export unreachable")

	// ErrFetchFailed indicates the endpoint answered but the document
	// could not be retrieved.
	ErrFetchFailed = errors.New("sheet fetch failed")
)
