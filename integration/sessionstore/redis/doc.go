// Package redis implements session.Store on Redis using github.com/redis/go-redis/v9.
//
// Sessions are stored as JSON under "<prefix>id:<uuid>" with a pointer key
// "<prefix>token:<token>" holding the ID. Both keys get a TTL equal to the time left
// until the session expires, so Redis evicts expired sessions by itself and
// DeleteExpired has nothing to do.
//
//	client, err := redis.Connect(ctx, cfg) // integration/database/redis
//	store := redisstore.New[attributes.Map](client, redisstore.WithPrefix("app:sess:"))
//	mgr := session.NewManager[attributes.Map](store, 24*time.Hour, 5*time.Minute)
package redis
