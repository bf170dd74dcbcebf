package gateway

import "errors"

// ErrMissingDependency reports a nil required collaborator at
// construction.
var ErrMissingDependency = errors.New("missing dependency")

var (
	// errNoInputSource: the request asked for a check or upload without
	// attaching a file or naming an external sheet.
	errNoInputSource = errors.New("no input source provided")

	// errSheetSourceDisabled: an external sheet was named but no fetcher
	// is configured.
	errSheetSourceDisabled = errors.New("external sheet source is not configured")
)
