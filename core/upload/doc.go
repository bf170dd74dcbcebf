// Package upload stores validated observation spreadsheets.
//
// The manager is the last stage of a submission: the workbook has
// already been checked and the caller has resolved session and login
// state. Store enforces the two write preconditions in a fixed order
// (clean report first, then authorization), derives a timestamped
// filename prefixed with the proposal identifier, writes through the
// configured storage backend, and notifies the queue mailbox.
//
// Uploads for the same proposal and base name within one second derive
// colliding names; the second write wins. This is accepted: submitters
// iterate on a single workbook and the stored history is advisory.
package upload
