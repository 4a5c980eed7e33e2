// Package pg implements session.Store on PostgreSQL via github.com/jackc/pgx/v5.
//
// The schema ships embedded and is applied with goose:
//
//	pool, err := pg.Connect(ctx, cfg) // integration/database/pg
//	if err := pgstore.Migrate(ctx, pool, log); err != nil {
//		return err
//	}
//	store := pgstore.New[attributes.Map](pool)
//
// Session data is stored as JSONB. Unlike the Redis and buntdb stores, rows are
// not evicted automatically; call session.Manager.CleanupExpired periodically.
//
// Statements join a transaction attached with pg.WithTx.
package pg
