// Package health serves the liveness and readiness endpoints.
//
//	mux.HandleFunc("GET /healthz", health.Liveness())
//	mux.HandleFunc("GET /readyz", health.Readiness(log, map[string]func(context.Context) error{
//		"postgres": pg.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}))
package health
