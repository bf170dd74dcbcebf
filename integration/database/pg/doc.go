// Package pg provides PostgreSQL connection management with goose
// migrations and health checking, built on the pgx driver.
//
// Two constructors cover the two boot postures:
//
//   - New: builds a lazy pool without touching the network, for processes
//     that must stay available while the database is down (failures then
//     surface per request).
//   - Connect: New plus a ping loop with exponential backoff, for
//     processes that cannot run without the database.
//
// # Configuration
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL,required"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//	}
//
// # Migrations
//
// Migrate applies embedded goose migrations through a database/sql adapter
// over the pool:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	if err := pg.Migrate(ctx, pool, migrations, "migrations"); err != nil {
//		log.Warn("migration skipped", logger.Error(err))
//	}
package pg
