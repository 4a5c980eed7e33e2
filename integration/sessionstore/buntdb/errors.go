package buntdb

import "errors"

var (
	// ErrOpen is returned when the database file cannot be opened.
	ErrOpen = errors.New("failed to open session database")
	// ErrWrite wraps a failed write or delete.
	ErrWrite = errors.New("failed to write session")
	// ErrDecode is returned when a stored record is not valid JSON for the session type.
	ErrDecode = errors.New("failed to decode session")
)
