package remote

import "errors"

var (
	// ErrInvalidConfig is returned when CHECKER_URL is not an
	// absolute http(s) URL.
	ErrInvalidConfig = errors.New("invalid checker configuration")

	// ErrUnreachable indicates the rule engine could not be reached.
	ErrUnreachable = errors.New("checker unreachable")

	// ErrBadResponse indicates the engine answered with a non-2xx
	// status or an undecodable body.
	ErrBadResponse = errors.New("checker returned an invalid response")
)
