package search

import "errors"

// Sentinel kinds for search errors.
var (
	ErrRequest = errors.New("petscan request failed")
	ErrDecode  = errors.New("petscan response decode failed")
)
