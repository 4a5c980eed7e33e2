package session

import (
	"time"

	"github.com/google/uuid"
)

// Record is the serialized form of a Session used by persistent stores.
type Record[Data any] struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	Data      Data      `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordOf converts a session to its stored form. Deletion and modification state are dropped.
func RecordOf[Data any](s Session[Data]) Record[Data] {
	return Record[Data]{
		ID:        s.ID,
		Token:     s.Token,
		Data:      s.Data,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Session rebuilds an unmodified session from a stored record.
func (r Record[Data]) Session() *Session[Data] {
	return &Session[Data]{
		ID:        r.ID,
		Token:     r.Token,
		Data:      r.Data,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
