package attributes

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dmitrymomot/sessionattrs/core/logger"
)

// Store is a key-value overlay with optional per-key expiry on top of a session backend.
// Expiry is enforced lazily: an expired entry stays in the mapping until Get reads it
// or PurgeExpired, Remove, ExpireAll or RemoveAll drop it.
//
// Map operations never fail and only touch the in-memory mapping; Commit persists it.
type Store struct {
	mu      sync.Mutex
	backend Backend
	now     func() time.Time
	log     *slog.Logger
}

// New starts the backend session (if not already active) and returns a store over it.
func New(ctx context.Context, backend Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}

	s := &Store{
		backend: backend,
		now:     time.Now,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := backend.EnsureStarted(ctx); err != nil {
		return nil, errors.Join(ErrStart, err)
	}

	return s, nil
}

// Add stores value under key with no expiry, overwriting any existing entry.
func (s *Store) Add(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backend.Attributes()[key] = Entry{Value: value}
}

// AddWithExpiry stores value under key, expiring minutes from now.
// Overwrites any existing entry and resets its expiry.
func (s *Store) AddWithExpiry(key string, value any, minutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backend.Attributes()[key] = Entry{
		Value:     value,
		ExpiresAt: s.unix() + int64(minutes)*60,
	}
}

// Update replaces the value of an existing entry and keeps its expiry.
// The entry's liveness is not checked. Absent keys are left absent.
func (s *Store) Update(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.backend.Attributes()
	if e, ok := m[key]; ok {
		e.Value = value
		m[key] = e
	}
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(key)
}

// Expire is an alias for Remove.
func (s *Store) Expire(key string) {
	s.Remove(key)
}

// Get returns the value stored under key. An entry whose expiry is in the past is
// removed and reported as not found.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.backend.Attributes()[key]
	if !ok {
		return nil, false
	}
	if e.Expired(s.unix()) {
		s.removeLocked(key)
		s.log.Debug("expired attribute purged on read",
			logger.Attribute(key),
			logger.ExpiresAt(e.ExpiresAt),
		)
		return nil, false
	}
	return e.Value, true
}

// IsActive reports whether key is present in the mapping. It does not look at the
// expiry, so an expired entry that Get has not yet purged still counts as active.
// Use IsLive for an expiry-aware check.
func (s *Store) IsActive(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.backend.Attributes()[key]
	return ok
}

// IsLive reports whether key is present and not expired. Unlike Get it never purges.
func (s *Store) IsLive(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.backend.Attributes()[key]
	return ok && !e.Expired(s.unix())
}

// GetAll returns a copy of the raw mapping, expired entries included.
func (s *Store) GetAll() Map {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.backend.Attributes().Clone()
}

// GetExpiredDetails returns the values of every entry whose expiry is in the past.
// Nothing is removed.
func (s *Store) GetExpiredDetails() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.unix()
	expired := make(map[string]any)
	for k, e := range s.backend.Attributes() {
		if e.Expired(now) {
			expired[k] = e.Value
		}
	}
	return expired
}

// PurgeExpired removes every expired entry and returns how many were removed.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.unix()
	m := s.backend.Attributes()
	n := 0
	for k, e := range m {
		if e.Expired(now) {
			delete(m, k)
			n++
		}
	}
	if n > 0 {
		s.log.Debug("expired attributes purged", logger.Count("purged", n))
	}
	return n
}

// Len returns the number of entries in the mapping, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.backend.Attributes())
}

// ExpireAll removes every entry but keeps the session alive.
func (s *Store) ExpireAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.ClearAttributes(ctx); err != nil {
		return err
	}
	s.log.DebugContext(ctx, "session attributes cleared", logger.Action("expire_all"))
	return nil
}

// RemoveAll removes every entry and ends the session. The next persisted write
// starts a new session with a new identifier.
func (s *Store) RemoveAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.DestroySession(ctx); err != nil {
		return err
	}
	s.log.DebugContext(ctx, "session destroyed", logger.Action("remove_all"))
	return nil
}

// RegenerateID issues a new session identifier, keeps the attributes and drops the old session.
func (s *Store) RegenerateID(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.RegenerateSessionID(ctx, true); err != nil {
		return err
	}
	s.log.DebugContext(ctx, "session id regenerated", logger.Action("regenerate_id"))
	return nil
}

// Commit persists the mapping through the backend.
func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Flush(ctx); err != nil {
		return errors.Join(ErrFlush, err)
	}
	return nil
}

func (s *Store) removeLocked(key string) {
	delete(s.backend.Attributes(), key)
}

func (s *Store) unix() int64 {
	return s.now().Unix()
}

// GetAs reads key with Get semantics and converts the value to T.
// It reports false when the key is missing, expired, or its value does not decode into T.
func GetAs[T any](s *Store, key string) (T, bool) {
	var zero T

	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}

	out, err := Decode[T](v)
	if err != nil {
		s.log.Debug("attribute type mismatch", logger.Attribute(key), logger.Error(err))
		return zero, false
	}
	return out, true
}

// Decode converts a stored value to T. Values that went through a JSON round trip
// (numbers as float64, structs as map[string]any) are re-encoded and decoded into T.
func Decode[T any](v any) (T, error) {
	if out, ok := v.(T); ok {
		return out, nil
	}

	var out T
	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		return out, errors.Join(ErrDecode, err)
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &out); err != nil {
		return out, errors.Join(ErrDecode, err)
	}
	return out, nil
}
