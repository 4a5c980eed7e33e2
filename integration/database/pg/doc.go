// Package pg provides PostgreSQL connection pooling, health checking and goose
// migrations on top of github.com/jackc/pgx/v5.
//
// Basic usage:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, logger); err != nil {
//		log.Fatal(err)
//	}
//
// MigrateFS runs migrations embedded in an fs.FS, which is how packages ship their
// own schema. goose works on database/sql, so the pool is wrapped with pgx's
// stdlib adapter for the duration of the run.
//
// # Configuration
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//		MigrationsPath    string        `env:"PG_MIGRATIONS_PATH" envDefault:"internal/db/migrations"`
//		MigrationsTable   string        `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
//	}
//
// # Transactions
//
// WithTx and TxFromContext carry a pgx.Tx through a context so repositories can
// join a caller's transaction.
//
// # Error Handling
//
// Sentinel errors (ErrEmptyConnectionString, ErrFailedToOpenDBConnection,
// ErrFailedToApplyMigrations, ...) are matched with errors.Is. IsNotFoundError and
// IsDuplicateKeyError classify driver errors.
package pg
