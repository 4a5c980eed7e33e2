package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionattrs/core/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxSaveRetries bounds optimistic retries of Save under contention.
const maxSaveRetries = 10

// Store implements session.Store on Redis. Each session is one JSON value under
// "<prefix>id:<id>" plus a "<prefix>token:<token>" pointer, both expiring with the session.
type Store[Data any] struct {
	client goredis.UniversalClient
	prefix string
}

// Option configures a Store.
type Option func(*options)

type options struct {
	prefix string
}

// WithPrefix sets the key prefix. Default "sessattr:".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// New creates a Redis-backed session store.
func New[Data any](client goredis.UniversalClient, opts ...Option) *Store[Data] {
	o := options{prefix: "sessattr:"}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[Data]{client: client, prefix: o.prefix}
}

func (s *Store[Data]) idKey(id uuid.UUID) string {
	return s.prefix + "id:" + id.String()
}

func (s *Store[Data]) tokenKey(token string) string {
	return s.prefix + "token:" + token
}

func (s *Store[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	return s.load(ctx, s.client.Get, id)
}

// load reads a session through get, which is either the client or a watching transaction.
func (s *Store[Data]) load(ctx context.Context, get func(context.Context, string) *goredis.StringCmd, id uuid.UUID) (*session.Session[Data], error) {
	raw, err := get(ctx, s.idKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var rec session.Record[Data]
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return rec.Session(), nil
}

func (s *Store[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	raw, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("redis get token: %w", err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, session.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Save writes the session with a TTL matching its expiry. A session that has
// already expired is removed instead.
func (s *Store[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		if err := s.Delete(ctx, sess.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
			return err
		}
		return nil
	}

	raw, err := json.Marshal(session.RecordOf(*sess))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	// The previous token is read under WATCH so a concurrent save of the same
	// session cannot leave its token pointer behind.
	save := func(tx *goredis.Tx) error {
		prev, err := s.load(ctx, tx.Get, sess.ID)
		if err != nil && !errors.Is(err, session.ErrNotFound) {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			if prev != nil && prev.Token != sess.Token {
				pipe.Del(ctx, s.tokenKey(prev.Token))
			}
			pipe.Set(ctx, s.idKey(sess.ID), raw, ttl)
			pipe.Set(ctx, s.tokenKey(sess.Token), sess.ID.String(), ttl)
			return nil
		})
		return err
	}

	for range maxSaveRetries {
		err := s.client.Watch(ctx, save, s.idKey(sess.ID))
		if err == nil {
			return nil
		}
		if !errors.Is(err, goredis.TxFailedErr) {
			return fmt.Errorf("redis save session: %w", err)
		}
	}
	return ErrSaveConflict
}

func (s *Store[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, s.idKey(id), s.tokenKey(sess.Token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires keys on its own.
func (s *Store[Data]) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
