package attributes

import (
	"log/slog"
	"time"
)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Expiry is computed at second granularity.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for purge and lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}
