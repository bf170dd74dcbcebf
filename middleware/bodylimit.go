package middleware

import (
	"fmt"
	"net/http"
)

// DefaultBodyLimit bounds request bodies at 32 MiB, enough headroom for
// a large observation workbook with embedded formatting.
const DefaultBodyLimit int64 = 32 << 20

// BodyLimitConfig configures the request body size middleware.
type BodyLimitConfig struct {
	// Skip determines if the middleware should be skipped for this request.
	Skip func(r *http.Request) bool

	// MaxSize is the largest accepted body in bytes. Defaults to
	// DefaultBodyLimit.
	MaxSize int64

	// ErrorHandler renders the over-limit response. The default writes
	// a plain 413 mentioning the limit.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, limit int64)
}

// BodyLimit rejects requests whose body exceeds the configured size.
// Requests declaring an oversized Content-Length are refused before any
// body bytes are read; chunked uploads are cut off by a MaxBytesReader
// once the limit is crossed.
func BodyLimit(maxSize int64) func(http.Handler) http.Handler {
	return BodyLimitWithConfig(BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig returns a body limit middleware with custom configuration.
func BodyLimitWithConfig(cfg BodyLimitConfig) func(http.Handler) http.Handler {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultBodyLimit
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(w http.ResponseWriter, r *http.Request, limit int64) {
			http.Error(w,
				fmt.Sprintf("request body too large; the limit is %d bytes", limit),
				http.StatusRequestEntityTooLarge)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength > cfg.MaxSize {
				cfg.ErrorHandler(w, r, cfg.MaxSize)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxSize)
			}
			next.ServeHTTP(w, r)
		})
	}
}
