// Package middleware provides net/http middleware for the gateway's
// outer surface: request IDs, client IP resolution, request logging,
// body size limits and browser security headers.
//
// Every middleware comes as a pair: a bare constructor with sensible
// defaults and a WithConfig variant for tuning. All of them accept a
// Skip function so health probes and similar endpoints can opt out.
//
// Typical chain; each wrap runs before the ones applied earlier, so
// the last line is the outermost middleware:
//
//	var h http.Handler = mux
//	h = middleware.Logging(log)(h)
//	h = middleware.BodyLimit(32 << 20)(h)
//	h = middleware.SecurityHeaders()(h)
//	h = middleware.ClientIP()(h)
//	h = middleware.RequestID()(h)
//
// RequestID and ClientIP store their results in the request context;
// Logging picks them up from there, so keep them outside it.
package middleware
