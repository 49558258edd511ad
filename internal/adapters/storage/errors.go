package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrClosed   = errors.New("storage is closed")
	ErrBadKey   = errors.New("invalid storage key")
	ErrDataRoot = errors.New("storage data directory unavailable")
)
