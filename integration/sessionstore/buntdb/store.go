package buntdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/buntdb"

	"github.com/dmitrymomot/sessionattrs/core/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	idPrefix    = "session:id:"
	tokenPrefix = "session:token:"
)

// Store implements session.Store on an embedded buntdb database.
type Store[Data any] struct {
	db *buntdb.DB
}

// New wraps an open buntdb database.
func New[Data any](db *buntdb.DB) *Store[Data] {
	return &Store[Data]{db: db}
}

// Open opens (or creates) the database file at path and returns a store over it.
// Use ":memory:" for a non-persistent database.
func Open[Data any](path string) (*Store[Data], error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, errors.Join(ErrOpen, err)
	}
	return New[Data](db), nil
}

// Close closes the underlying database.
func (s *Store[Data]) Close() error {
	return s.db.Close()
}

func (s *Store[Data]) GetByID(_ context.Context, id uuid.UUID) (*session.Session[Data], error) {
	var sess *session.Session[Data]
	err := s.db.View(func(tx *buntdb.Tx) error {
		var err error
		sess, err = getByID[Data](tx, id.String())
		return err
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store[Data]) GetByToken(_ context.Context, token string) (*session.Session[Data], error) {
	var sess *session.Session[Data]
	err := s.db.View(func(tx *buntdb.Tx) error {
		id, err := tx.Get(tokenPrefix + token)
		if err != nil {
			return mapErr(err)
		}
		sess, err = getByID[Data](tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Save writes the session and its token pointer with a TTL matching its expiry.
// A previous token for the same ID is dropped. An already expired session is removed.
func (s *Store[Data]) Save(_ context.Context, sess *session.Session[Data]) error {
	raw, err := json.Marshal(session.RecordOf(*sess))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Until(sess.ExpiresAt)
	id := sess.ID.String()

	return s.db.Update(func(tx *buntdb.Tx) error {
		prev, err := getByID[Data](tx, id)
		if err != nil && !errors.Is(err, session.ErrNotFound) {
			return err
		}
		if prev != nil && (prev.Token != sess.Token || ttl <= 0) {
			if _, err := tx.Delete(tokenPrefix + prev.Token); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
				return errors.Join(ErrWrite, err)
			}
		}

		if ttl <= 0 {
			if _, err := tx.Delete(idPrefix + id); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
				return errors.Join(ErrWrite, err)
			}
			return nil
		}

		opts := &buntdb.SetOptions{Expires: true, TTL: ttl}
		if _, _, err := tx.Set(idPrefix+id, string(raw), opts); err != nil {
			return errors.Join(ErrWrite, err)
		}
		if _, _, err := tx.Set(tokenPrefix+sess.Token, id, opts); err != nil {
			return errors.Join(ErrWrite, err)
		}
		return nil
	})
}

func (s *Store[Data]) Delete(_ context.Context, id uuid.UUID) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		sess, err := getByID[Data](tx, id.String())
		if err != nil {
			return err
		}
		if _, err := tx.Delete(idPrefix + id.String()); err != nil {
			return mapErr(err)
		}
		if _, err := tx.Delete(tokenPrefix + sess.Token); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
			return errors.Join(ErrWrite, err)
		}
		return nil
	})
}

// DeleteExpired runs a shrink of the append-only file. Expired keys are evicted
// by buntdb itself, so the count is always zero.
func (s *Store[Data]) DeleteExpired(context.Context) (int64, error) {
	if err := s.db.Shrink(); err != nil && !errors.Is(err, buntdb.ErrShrinkInProcess) {
		return 0, errors.Join(ErrWrite, err)
	}
	return 0, nil
}

func getByID[Data any](tx *buntdb.Tx, id string) (*session.Session[Data], error) {
	raw, err := tx.Get(idPrefix + id)
	if err != nil {
		return nil, mapErr(err)
	}

	var rec session.Record[Data]
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	return rec.Session(), nil
}

func mapErr(err error) error {
	if errors.Is(err, buntdb.ErrNotFound) {
		return session.ErrNotFound
	}
	return err
}
