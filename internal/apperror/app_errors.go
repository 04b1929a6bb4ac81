package apperror

import "errors"

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrSessionRequired    = errors.New("session id is required")
	ErrConcurrentUpdate   = errors.New("game was modified concurrently")
	ErrMalformedRequest   = errors.New("malformed request")
	ErrUnknownAction      = errors.New("unknown action")
	ErrUnsupportedStorage = errors.New("unsupported storage")
)
