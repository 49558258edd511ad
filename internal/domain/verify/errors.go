package verify

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotImplemented  = errors.New("wikipedia search provider not implemented")
	ErrUnknownProvider = errors.New("unknown search provider")
)
