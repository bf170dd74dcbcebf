package cookie

import "errors"

var (
	// ErrNoSecrets is returned when a Manager is created without signing keys.
	ErrNoSecrets = errors.New("cookie: no signing secrets provided")

	// ErrWeakSecret is returned when a signing secret is too short.
	ErrWeakSecret = errors.New("cookie: secret too short")

	// ErrCookieNotFound is returned when the request carries no cookie of
	// the requested name.
	ErrCookieNotFound = errors.New("cookie: not found")

	// ErrSignatureInvalid is returned when a cookie value fails HMAC
	// verification or cannot be decoded.
	ErrSignatureInvalid = errors.New("cookie: signature invalid")

	// ErrValueTooLong is returned when the serialized cookie would exceed
	// the browser limit.
	ErrValueTooLong = errors.New("cookie: value exceeds size limit")
)
