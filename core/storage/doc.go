// Package storage defines the upload persistence contract.
//
// Uploads are grouped by proposal identifier; each proposal maps to a
// directory on disk or a key prefix in an object store. Backends live
// under integration/storage and are selected at startup, so the rest
// of the gateway depends only on the Storage interface.
package storage
