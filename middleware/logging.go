package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"qgate/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip determines if the middleware should be skipped for this request.
	// Commonly used to silence health probes.
	Skip func(r *http.Request) bool

	// Logger receives the records. Defaults to slog.Default().
	Logger *slog.Logger

	// Component tags every record; defaults to "http".
	Component string

	// SlowThreshold promotes records to warn level when the request
	// takes at least this long. Zero disables the promotion.
	SlowThreshold time.Duration
}

// Logging logs one record per request: method, path, status, response
// size and duration, plus the request ID and client IP when the
// corresponding middlewares ran earlier in the chain.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig returns a logging middleware with custom configuration.
func LoggingWithConfig(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			level := slog.LevelInfo
			switch {
			case sw.Status() >= http.StatusInternalServerError:
				level = slog.LevelError
			case sw.Status() >= http.StatusBadRequest:
				level = slog.LevelWarn
			case cfg.SlowThreshold > 0 && elapsed >= cfg.SlowThreshold:
				level = slog.LevelWarn
			}

			requestID, _ := GetRequestID(r.Context())
			clientIP, _ := GetClientIP(r.Context())

			cfg.Logger.LogAttrs(r.Context(), level, "request completed",
				logger.Component(cfg.Component),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(sw.Status()),
				slog.Int64("bytes", sw.written),
				logger.Duration(elapsed),
				logger.RequestID(requestID),
				logger.ClientIP(clientIP),
			)
		})
	}
}

// statusWriter records the status code and body size passing through a
// ResponseWriter so they can be logged after the handler returns.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// Status returns the recorded status, assuming 200 when the handler
// never wrote anything.
func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Flush passes through to the underlying writer when it supports
// streaming responses.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
