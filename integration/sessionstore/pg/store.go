package pg

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sessionattrs/core/session"
	pgdb "github.com/dmitrymomot/sessionattrs/integration/database/pg"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationsTable records applied schema versions of the session table.
const MigrationsTable = "sessattr_migrations"

// Migrate creates or upgrades the sessions table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	return pgdb.MigrateFS(ctx, pool, migrations, "migrations", MigrationsTable, log)
}

// Store implements session.Store on PostgreSQL. When the context carries a
// transaction (pgdb.WithTx) statements run inside it.
type Store[Data any] struct {
	db pgdb.Querier
}

// New creates a store on top of a pool or transaction. Run Migrate first.
func New[Data any](db pgdb.Querier) *Store[Data] {
	return &Store[Data]{db: db}
}

const selectColumns = `SELECT id::text, token, data, expires_at, created_at, updated_at FROM sessions`

func (s *Store[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	return s.getOne(ctx, selectColumns+` WHERE id = $1`, id.String())
}

func (s *Store[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	return s.getOne(ctx, selectColumns+` WHERE token = $1`, token)
}

func (s *Store[Data]) getOne(ctx context.Context, query string, arg any) (*session.Session[Data], error) {
	var (
		rawID string
		raw   []byte
		rec   session.Record[Data]
	)
	err := pgdb.QuerierFrom(ctx, s.db).QueryRow(ctx, query, arg).
		Scan(&rawID, &rec.Token, &raw, &rec.ExpiresAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if pgdb.IsNotFoundError(err) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("select session: %w", err)
	}

	if rec.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	if err := json.Unmarshal(raw, &rec.Data); err != nil {
		return nil, fmt.Errorf("decode session data: %w", err)
	}
	return rec.Session(), nil
}

// Save upserts the session by ID. A token collision with another session is
// reported as ErrTokenConflict.
func (s *Store[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	raw, err := json.Marshal(sess.Data)
	if err != nil {
		return fmt.Errorf("encode session data: %w", err)
	}

	_, err = pgdb.QuerierFrom(ctx, s.db).Exec(ctx, `
		INSERT INTO sessions (id, token, data, expires_at, created_at, updated_at)
		VALUES ($1::uuid, $2, $3::jsonb, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at`,
		sess.ID.String(), sess.Token, string(raw), sess.ExpiresAt, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		if pgdb.IsDuplicateKeyError(err) {
			return errors.Join(ErrTokenConflict, err)
		}
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *Store[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := pgdb.QuerierFrom(ctx, s.db).Exec(ctx, `DELETE FROM sessions WHERE id = $1::uuid`, id.String())
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (s *Store[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := pgdb.QuerierFrom(ctx, s.db).Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
