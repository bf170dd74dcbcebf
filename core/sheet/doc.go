// Package sheet defines the validation vocabulary shared between checkers
// and renderers: datasets, severity-tagged messages with row locators, and
// the aggregated report.
//
// A message locates itself with Row: FileScope (-1) for findings that
// belong to the file as a whole, HeaderRow (0) for problems with the
// column names, and 1-based indices for data rows. File-scoped findings
// collect under the reserved "program" section.
//
// Reports preserve insertion order everywhere (sections in the order a
// checker touched them, messages in the order they were found), so two
// renders of the same report are byte-identical.
package sheet
