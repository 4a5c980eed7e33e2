package attributes

import "errors"

var (
	// ErrNoBackend is returned by New when no backend is given.
	ErrNoBackend = errors.New("attributes: session backend is required")
	// ErrStart wraps a backend failure to start the session.
	ErrStart = errors.New("attributes: failed to start session")
	// ErrFlush wraps a backend failure to persist attributes.
	ErrFlush = errors.New("attributes: failed to persist attributes")
	// ErrDecode is returned by GetAs when a stored value cannot be converted to the requested type.
	ErrDecode = errors.New("attributes: value does not decode into requested type")
)
