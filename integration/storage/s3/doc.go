// Package s3 stores uploads in an S3 or S3-compatible bucket, keyed
// <proposal>/<filename>. Alternative endpoints (MinIO, Wasabi) are
// supported through S3_ENDPOINT and S3_FORCE_PATH_STYLE.
package s3
