package report

import "errors"

var (
	// ErrNilReport is returned when Format is called without a report.
	ErrNilReport = errors.New("report is nil")

	// ErrRenderFailed wraps template execution failures.
	ErrRenderFailed = errors.New("failed to render report")
)
