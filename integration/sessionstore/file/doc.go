// Package file implements a session store as one JSON file per session id
// under a root directory.
//
// The layout is deliberately dumb: <dir>/<id>.json, written in a single
// file operation, readable with cat. It fits the low-traffic shared-disk
// deployment where operators occasionally want to inspect live sessions.
// Growth is bounded by the DeleteExpired sweep, which the process runs
// periodically.
//
// Ids are validated against the session id shape before any path is
// constructed, so a forged identifier can never escape the root directory.
package file
