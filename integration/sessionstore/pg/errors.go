package pg

import "errors"

var (
	// ErrTokenConflict is returned by Save when the token is already used by another session.
	ErrTokenConflict = errors.New("session token already belongs to another session")
)
