// Package redis provides Redis client initialization and health checking on top of
// github.com/redis/go-redis/v9.
//
// Connect validates the URL, creates the client and pings it with exponential
// retry before returning:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  time.Second,
//		ConnectTimeout: 30 * time.Second,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Configuration is read from the environment through Config's env tags:
//
//	REDIS_URL              (default redis://localhost:6379/0)
//	REDIS_RETRY_ATTEMPTS   (default 3)
//	REDIS_RETRY_INTERVAL   (default 5s)
//	REDIS_CONNECT_TIMEOUT  (default 30s)
//
// Only redis:// and rediss:// (TLS) URLs are accepted.
//
// Healthcheck wraps a ping for readiness probes. Errors are sentinel values
// (ErrEmptyConnectionURL, ErrFailedToParseRedisConnString, ErrRedisNotReady,
// ErrHealthcheckFailed) to be matched with errors.Is.
package redis
