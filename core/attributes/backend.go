package attributes

import (
	"context"
	"errors"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionattrs/core/logger"
	"github.com/dmitrymomot/sessionattrs/core/session"
)

// Backend is the session mechanism a Store is layered on.
type Backend interface {
	// EnsureStarted begins a session if none is active. It is idempotent.
	EnsureStarted(ctx context.Context) error
	// Attributes returns the live, mutable mapping. It must never return nil.
	Attributes() Map
	// ClearAttributes empties the mapping and keeps the session identity.
	ClearAttributes(ctx context.Context) error
	// DestroySession empties the mapping and ends the session identity.
	DestroySession(ctx context.Context) error
	// RegenerateSessionID issues a new session identifier for the same mapping.
	RegenerateSessionID(ctx context.Context, deleteOld bool) error
	// Flush persists the mapping.
	Flush(ctx context.Context) error
}

// SessionBackend implements Backend on top of a session.Manager whose data is the attribute Map.
// It is scoped to one client session and is not meant to be shared between requests.
type SessionBackend struct {
	manager *session.Manager[Map]
	token   string
	sess    session.Session[Map]
	data    Map
	// saved is the mapping as last loaded or persisted; Flush compares against it.
	saved   Map
	started bool
	log     *slog.Logger
}

// BackendOption configures a SessionBackend.
type BackendOption func(*SessionBackend)

// WithBackendLogger sets the logger for session lifecycle events.
func WithBackendLogger(log *slog.Logger) BackendOption {
	return func(b *SessionBackend) {
		if log != nil {
			b.log = log
		}
	}
}

// NewSessionBackend returns a backend that resumes the session identified by token,
// or starts a new one when token is empty, unknown or expired.
func NewSessionBackend(manager *session.Manager[Map], token string, opts ...BackendOption) *SessionBackend {
	b := &SessionBackend{
		manager: manager,
		token:   token,
		data:    Map{},
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Token returns the token of the current session, or "" when no session is active.
// Callers hand it back to the client after Flush.
func (b *SessionBackend) Token() string {
	return b.token
}

// SessionID returns the ID of the current session, or uuid.Nil when no session is active.
func (b *SessionBackend) SessionID() uuid.UUID {
	return b.sess.ID
}

// Active reports whether a session is currently started.
func (b *SessionBackend) Active() bool {
	return b.started
}

func (b *SessionBackend) EnsureStarted(ctx context.Context) error {
	if b.started {
		return nil
	}

	sess, err := b.manager.Start(ctx, b.token)
	if err != nil {
		return err
	}
	// The working mapping is a private copy; stores may hand out shared maps.
	data := sess.Data.Clone()
	// Writes made while no session was active carry over into the new one.
	for k, e := range b.data {
		data[k] = e
	}

	b.sess = sess
	b.data = data
	b.saved = sess.Data.Clone()
	b.token = sess.Token
	b.started = true

	b.log.DebugContext(ctx, "session started", logger.SessionID(sess.ID.String()))
	return nil
}

func (b *SessionBackend) Attributes() Map {
	return b.data
}

func (b *SessionBackend) ClearAttributes(ctx context.Context) error {
	b.data = Map{}
	if !b.started {
		return nil
	}

	b.sess.SetData(Map{})
	if err := b.manager.Persist(ctx, &b.sess); err != nil {
		return err
	}
	b.saved = Map{}
	return nil
}

func (b *SessionBackend) DestroySession(ctx context.Context) error {
	if b.started {
		b.sess.Logout()
		if err := b.manager.Persist(ctx, &b.sess); err != nil && !errors.Is(err, session.ErrDestroyed) {
			return err
		}
		b.log.DebugContext(ctx, "session destroyed", logger.SessionID(b.sess.ID.String()))
	}

	b.sess = session.Session[Map]{}
	b.data = Map{}
	b.saved = nil
	b.token = ""
	b.started = false
	return nil
}

func (b *SessionBackend) RegenerateSessionID(ctx context.Context, deleteOld bool) error {
	if err := b.EnsureStarted(ctx); err != nil {
		return err
	}

	b.sess.Data = b.data.Clone()
	fresh, err := b.manager.Regenerate(ctx, b.sess, deleteOld)
	if err != nil {
		return err
	}

	b.log.DebugContext(ctx, "session regenerated",
		logger.SessionID(fresh.ID.String()),
		logger.Key("previous_session_id", b.sess.ID.String()),
	)

	b.sess = fresh
	b.saved = fresh.Data.Clone()
	b.token = fresh.Token
	return nil
}

// Flush persists the mapping. After DestroySession, a non-empty mapping starts a new session;
// an empty one is not persisted.
//
// An unchanged mapping is only written when the session is new or its idle
// timeout is due for extension.
func (b *SessionBackend) Flush(ctx context.Context) error {
	if !b.started {
		if len(b.data) == 0 {
			return nil
		}
		if err := b.EnsureStarted(ctx); err != nil {
			return err
		}
	}

	if !reflect.DeepEqual(b.data, b.saved) {
		b.sess.SetData(b.data.Clone())
	}
	if err := b.manager.Persist(ctx, &b.sess); err != nil {
		return err
	}
	b.saved = b.sess.Data.Clone()
	return nil
}
