package storage

import "errors"

var (
	// ErrInvalidName rejects proposal or file names containing path
	// separators or parent references.
	ErrInvalidName = errors.New("invalid storage name")

	// ErrAccessDenied indicates the backend refused the operation.
	ErrAccessDenied = errors.New("storage access denied")

	// ErrUnavailable indicates a transient backend failure; the
	// operation may succeed on retry.
	ErrUnavailable = errors.New("storage unavailable")
)
