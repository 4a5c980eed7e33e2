package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sessionattrs/core/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultCollection is the collection used when none is given.
const DefaultCollection = "sessions"

// document is the stored shape. Data is kept as JSON text so values decode the
// same way as in the other stores.
type document struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	Data      string    `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store implements session.Store on a MongoDB collection.
type Store[Data any] struct {
	coll *mongo.Collection
}

// New returns a store on db's collection. An empty name selects DefaultCollection.
func New[Data any](db *mongo.Database, collection string) *Store[Data] {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store[Data]{coll: db.Collection(collection)}
}

// EnsureIndexes creates the unique token index and a TTL index on expires_at,
// which lets the server reap expired sessions in the background.
func (s *Store[Data]) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("token_unique"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
		},
	})
	if err != nil {
		return errors.Join(ErrCreateIndexes, err)
	}
	return nil
}

func (s *Store[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (s *Store[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	return s.findOne(ctx, bson.D{{Key: "token", Value: token}})
}

func (s *Store[Data]) findOne(ctx context.Context, filter bson.D) (*session.Session[Data], error) {
	var doc document
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	rec := session.Record[Data]{
		ID:        id,
		Token:     doc.Token,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if err := json.UnmarshalFromString(doc.Data, &rec.Data); err != nil {
		return nil, fmt.Errorf("decode session data: %w", err)
	}
	return rec.Session(), nil
}

func (s *Store[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	data, err := json.MarshalToString(sess.Data)
	if err != nil {
		return fmt.Errorf("encode session data: %w", err)
	}

	doc := document{
		ID:        sess.ID.String(),
		Token:     sess.Token,
		Data:      data,
		ExpiresAt: sess.ExpiresAt,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
	_, err = s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Join(ErrTokenConflict, err)
		}
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return session.ErrNotFound
	}
	return nil
}

// DeleteExpired removes expired sessions the TTL monitor has not reaped yet.
func (s *Store[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: time.Now()}}}})
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.DeletedCount, nil
}
