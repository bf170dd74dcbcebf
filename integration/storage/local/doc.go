// Package local stores uploads on the local filesystem, one directory
// per proposal under a configured root. It is the default backend for
// single-host deployments where the upload directory is served or
// synced by other tooling.
package local
