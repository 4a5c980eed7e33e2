package health

import "errors"

var (
	// ErrNotReady is returned by Readiness when at least one check fails.
	ErrNotReady = errors.New("dependency check failed")
)
