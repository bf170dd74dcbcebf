package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIDContextKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip determines if the middleware should be skipped for this request.
	Skip func(r *http.Request) bool

	// Generator produces new request IDs. Defaults to UUIDv7, which
	// sorts chronologically in log aggregators.
	Generator func() string

	// HeaderName is the header carrying the ID on both request and
	// response. Defaults to "X-Request-ID".
	HeaderName string

	// UseExisting reuses an ID already present on the incoming request,
	// so a chain of services shares one ID per user action.
	UseExisting bool
}

// RequestID assigns each request a unique ID, reusing one supplied by
// an upstream proxy when present. The ID is stored in the request
// context and echoed on the response.
func RequestID() func(http.Handler) http.Handler {
	return RequestIDWithConfig(RequestIDConfig{UseExisting: true})
}

// RequestIDWithConfig returns a request ID middleware with custom configuration.
func RequestIDWithConfig(cfg RequestIDConfig) func(http.Handler) http.Handler {
	if cfg.Generator == nil {
		cfg.Generator = func() string { return uuid.Must(uuid.NewV7()).String() }
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			id := ""
			if cfg.UseExisting {
				id = r.Header.Get(cfg.HeaderName)
			}
			if id == "" {
				id = cfg.Generator()
			}

			ctx := context.WithValue(r.Context(), requestIDContextKey{}, id)
			w.Header().Set(cfg.HeaderName, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID retrieves the request ID from the context. Returns an
// empty string and false when the middleware did not run.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}
