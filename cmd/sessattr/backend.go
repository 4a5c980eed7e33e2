package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/sessionattrs/core/attributes"
	"github.com/dmitrymomot/sessionattrs/core/health"
	"github.com/dmitrymomot/sessionattrs/core/logger"
	"github.com/dmitrymomot/sessionattrs/core/session"
	"github.com/dmitrymomot/sessionattrs/integration/database/mongo"
	"github.com/dmitrymomot/sessionattrs/integration/database/pg"
	"github.com/dmitrymomot/sessionattrs/integration/database/redis"
	buntstore "github.com/dmitrymomot/sessionattrs/integration/sessionstore/buntdb"
	mongostore "github.com/dmitrymomot/sessionattrs/integration/sessionstore/mongo"
	pgstore "github.com/dmitrymomot/sessionattrs/integration/sessionstore/pg"
	redisstore "github.com/dmitrymomot/sessionattrs/integration/sessionstore/redis"
)

// backend bundles a session manager with the connection it runs on.
type backend struct {
	manager *session.Manager[attributes.Map]
	checks  []health.Check
	close   func() error
}

// openBackend connects the storage selected by cfg.Backend.
func openBackend(ctx context.Context, cfg Config, log *slog.Logger) (*backend, error) {
	var (
		store session.Store[attributes.Map]
		b     = &backend{close: func() error { return nil }}
	)

	name := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch name {
	case "", "buntdb":
		s, err := buntstore.Open[attributes.Map](cfg.DBPath)
		if err != nil {
			return nil, err
		}
		store, b.close = s, s.Close

	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		store = redisstore.New[attributes.Map](client, redisstore.WithPrefix(cfg.RedisPrefix))
		b.checks = []health.Check{{Name: "redis", Fn: redis.Healthcheck(client)}}
		b.close = client.Close

	case "pg", "postgres":
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
		store = pgstore.New[attributes.Map](pool)
		b.checks = []health.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}
		b.close = func() error {
			pool.Close()
			return nil
		}

	case "mongo", "mongodb":
		db, err := mongo.NewWithDatabase(ctx, cfg.Mongo, "")
		if err != nil {
			return nil, err
		}
		ms := mongostore.New[attributes.Map](db, cfg.MongoCollection)
		if err := ms.EnsureIndexes(ctx); err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, err
		}
		store = ms
		b.checks = []health.Check{{Name: "mongo", Fn: mongo.Healthcheck(db.Client())}}
		b.close = func() error {
			return db.Client().Disconnect(context.Background())
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	mgr, err := session.NewFromConfig[attributes.Map](store, cfg.Session)
	if err != nil {
		_ = b.close()
		return nil, err
	}
	b.manager = mgr

	log.Debug("session backend opened", logger.Backend(name))
	return b, nil
}
