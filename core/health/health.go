package health

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"qgate/core/logger"
)

// Liveness reports that the process is up. No dependency is touched.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// Readiness probes every named dependency check on each request and
// returns 503 when any of them fails. All checks run even after a
// failure so one probe surfaces every broken dependency at once.
func Readiness(log *slog.Logger, checks map[string]func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		slices.Sort(names)

		ready := true
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				ready = false
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component("health"),
					slog.String("check", name),
					logger.Error(err),
				)
			}
		}

		if !ready {
			http.Error(w, "NOT READY", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
