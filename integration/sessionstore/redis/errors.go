package redis

import "errors"

var (
	// ErrSaveConflict is returned when Save keeps losing the optimistic lock to
	// concurrent writers of the same session.
	ErrSaveConflict = errors.New("session changed concurrently, save not applied")
)
