package upload

import "errors"

var (
	// ErrValidationErrors rejects storage while the report carries
	// error-severity findings, regardless of session or login state.
	ErrValidationErrors = errors.New("validation errors present")

	// ErrAuthFailed rejects storage after a failed login attempt.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrSessionExpired rejects storage when no live session exists
	// and no login was attempted.
	ErrSessionExpired = errors.New("session expired")

	// ErrStorageFailed wraps backend write failures.
	ErrStorageFailed = errors.New("upload storage failed")

	// ErrNilStorage is returned by New when no backend is supplied.
	ErrNilStorage = errors.New("storage backend is nil")
)
