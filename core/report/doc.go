// Package report renders sheet validation reports as HTML fragments
// for embedding in gateway pages.
//
// A report is rendered once per severity, so a page can show errors
// and warnings as separate blocks:
//
//	f := report.NewFormatter()
//	errorsHTML, err := f.Format(r, sheet.SeverityError)
//	warningsHTML, err := f.Format(r, sheet.SeverityWarning)
//
// Rendering is deterministic: sections and messages appear in the
// order the checker recorded them, and repeated calls on an unchanged
// report produce byte-identical output. All report text is escaped by
// html/template since it may contain untrusted spreadsheet content.
package report
