// Package redis provides Redis client initialization and health checking
// on top of go-redis, with connection verification and exponential
// backoff for transient network failures.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0"}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Healthcheck returns a probe suitable for a readiness endpoint:
//
//	ready := health.Readiness(log, map[string]health.Check{
//		"redis": redis.Healthcheck(client),
//	})
package redis
