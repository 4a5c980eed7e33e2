package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager handles session lifecycle including creation, retrieval, regeneration and expiration.
// The touchInterval determines how often sessions are automatically extended on save,
// reducing write operations to the store.
type Manager[Data any] struct {
	store         Store[Data]
	ttl           time.Duration
	touchInterval time.Duration
}

// NewManager creates a session manager with the specified store, time-to-live duration,
// and touch interval.
func NewManager[Data any](store Store[Data], ttl, touchInterval time.Duration) *Manager[Data] {
	return &Manager[Data]{
		store:         store,
		ttl:           ttl,
		touchInterval: touchInterval,
	}
}

// NewFromConfig creates a session manager from cfg, applying opts on top.
// A zero TTL falls back to the default.
func NewFromConfig[Data any](store Store[Data], cfg Config, opts ...Option) (*Manager[Data], error) {
	if store == nil {
		return nil, ErrNoStore
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	if cfg.TouchInterval < 0 {
		cfg.TouchInterval = 0
	}

	return NewManager(store, cfg.TTL, cfg.TouchInterval), nil
}

// Start resumes the session identified by token, or creates a new one when the token
// is empty, unknown or expired. A new session is not persisted until Store is called.
func (m *Manager[Data]) Start(ctx context.Context, token string) (Session[Data], error) {
	if token != "" {
		sess, err := m.GetByToken(ctx, token)
		switch {
		case err == nil:
			return sess, nil
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired):
		default:
			return Session[Data]{}, err
		}
	}

	return New[Data](m.ttl)
}

// GetByID retrieves a session by ID and validates expiration.
func (m *Manager[Data]) GetByID(ctx context.Context, id uuid.UUID) (Session[Data], error) {
	session, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session[Data]{}, err
	}

	if session.IsExpired() {
		return Session[Data]{}, ErrExpired
	}

	return *session, nil
}

// GetByToken retrieves a session by token and validates expiration.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	session, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}

	if session.IsExpired() {
		return Session[Data]{}, ErrExpired
	}

	return *session, nil
}

// Store handles all session persistence based on session state.
// When a session is deleted, returns ErrDestroyed to signal the caller to drop the token.
func (m *Manager[Data]) Store(ctx context.Context, sess Session[Data]) error {
	return m.Persist(ctx, &sess)
}

// Persist is Store for a session the caller keeps using: the extended expiry is
// written back to sess and it is marked clean after a successful save.
// An unmodified session inside the touch interval is not written.
func (m *Manager[Data]) Persist(ctx context.Context, sess *Session[Data]) error {
	if sess.IsDeleted() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return errors.Join(ErrDeleteSession, err)
		}
		return ErrDestroyed
	}

	sess.Touch(m.ttl, m.touchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, sess); err != nil {
			return errors.Join(ErrSaveSession, err)
		}
		sess.isModified = false
	}

	return nil
}

// Regenerate issues a new session ID and token carrying the data of sess, and persists it.
// When deleteOld is true the previous record is removed, so its token stops resolving.
func (m *Manager[Data]) Regenerate(ctx context.Context, sess Session[Data], deleteOld bool) (Session[Data], error) {
	fresh, err := New[Data](m.ttl)
	if err != nil {
		return Session[Data]{}, err
	}
	fresh.Data = sess.Data
	if !sess.CreatedAt.IsZero() {
		fresh.CreatedAt = sess.CreatedAt
	}

	if err := m.store.Save(ctx, &fresh); err != nil {
		return Session[Data]{}, errors.Join(ErrSaveSession, err)
	}
	fresh.isModified = false

	if deleteOld && !sess.IsZero() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return Session[Data]{}, errors.Join(ErrDeleteSession, err)
		}
	}

	return fresh, nil
}

// CleanupExpired removes all expired sessions from the store.
// Should be called periodically to prevent session table growth.
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// GetTTL returns the session time-to-live duration.
func (m *Manager[Data]) GetTTL() time.Duration {
	return m.ttl
}
