package main

import (
	"github.com/dmitrymomot/sessionattrs/core/session"
	"github.com/dmitrymomot/sessionattrs/integration/database/mongo"
	"github.com/dmitrymomot/sessionattrs/integration/database/pg"
	"github.com/dmitrymomot/sessionattrs/integration/database/redis"
)

// Config is read from the environment (and .env) at startup.
type Config struct {
	Backend         string `env:"SESSATTR_BACKEND" envDefault:"buntdb"`
	DBPath          string `env:"SESSATTR_DB_PATH" envDefault:"sessattr.db"`
	RedisPrefix     string `env:"SESSATTR_REDIS_PREFIX" envDefault:"sessattr:"`
	MongoCollection string `env:"SESSATTR_MONGO_COLLECTION" envDefault:"sessions"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"warn"`

	Session session.Config
	Redis   redis.Config
	PG      pg.Config
	Mongo   mongo.Config
}
