package binder

import "errors"

var (
	// ErrUnsupportedMediaType indicates a Content-Type other than
	// urlencoded or multipart form data.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrFailedToParseForm indicates malformed form data: bad
	// multipart boundaries, invalid URL encoding, or a field value
	// that does not fit the target type.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrMissingContentType indicates the request lacks a
	// Content-Type header.
	ErrMissingContentType = errors.New("missing content type")
)
