package mongo

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("empty mongodb connection URL, use MONGODB_URL env var")
	ErrFailedToConnect    = errors.New("failed to connect to mongodb")
	ErrHealthcheckFailed  = errors.New("mongodb healthcheck failed")
)
