package mongo

import "errors"

var (
	// ErrCreateIndexes is returned by EnsureIndexes when index creation fails.
	ErrCreateIndexes = errors.New("failed to create session indexes")
	// ErrTokenConflict is returned by Save when the token is already used by another session.
	ErrTokenConflict = errors.New("session token already belongs to another session")
)
