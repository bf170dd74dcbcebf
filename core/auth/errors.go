package auth

import "errors"

var (
	// ErrBackendUnreachable marks failures where the backend could not be
	// asked: network trouble, timeouts, broken configuration.
	ErrBackendUnreachable = errors.New("backend unreachable")

	// ErrCredentialsRejected marks a definitive answer from a reachable
	// backend: the username/secret pair is wrong.
	ErrCredentialsRejected = errors.New("credentials rejected")

	// ErrMissingBackend is returned by New when a backend is nil.
	ErrMissingBackend = errors.New("auth: both backends are required")
)

// User-facing reason strings. These appear verbatim in the combined
// failure message shown after a failed login.
const (
	ReasonUnreachable = "backend unreachable"
	ReasonRejected    = "credentials rejected"
)
