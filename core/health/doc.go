// Package health runs dependency probes for readiness checks.
//
// Probes follow the func(context.Context) error signature returned by the
// Healthcheck helpers of the integration/database packages:
//
//	err := health.Readiness(ctx, log,
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	)
//	if errors.Is(err, health.ErrNotReady) {
//		// at least one dependency is down
//	}
package health
