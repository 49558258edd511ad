// Package storage defines the key-value persistence port and its
// in-memory and file-backed implementations. State written here must
// survive restarts but is never treated as guaranteed-durable.
package storage

import "context"

// KeyPrefix namespaces every key written by this application.
const KeyPrefix = "riddle_rush_"

// Store provides namespaced key-value access to JSON-serialized state.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set writes the value for key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear deletes every key in this application's namespace.
	Clear(ctx context.Context) error
}
