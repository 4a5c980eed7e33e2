package main

import "errors"

var (
	// ErrUnknownBackend is returned when SESSATTR_BACKEND names no supported storage.
	ErrUnknownBackend = errors.New("unknown session backend")
)
