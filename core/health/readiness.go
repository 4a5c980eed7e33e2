package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/sessionattrs/core/logger"
)

// Check is a named dependency probe, e.g. redis.Healthcheck(client).
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Readiness runs every check and reports all failures at once.
//
//	err := health.Readiness(ctx, log,
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//		health.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	)
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) error {
	var errs []error
	for _, c := range checks {
		if c.Fn == nil {
			continue
		}
		if err := c.Fn(ctx); err != nil {
			log.ErrorContext(ctx, "readiness check failed", logger.Component(c.Name), logger.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(ErrNotReady, errors.Join(errs...))
	}
	return nil
}
