package sheet

import "context"

// Checker validates one submitted workbook and returns every finding in a
// single pass. Validation findings never come back as an error: a broken
// workbook is a file-scoped error message inside the report. The error
// return is reserved for the checker itself being unusable.
type Checker interface {
	Check(ctx context.Context, proposal, filename string, data []byte) (*Report, error)
}
