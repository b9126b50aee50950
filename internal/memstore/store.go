// Package memstore provides durable backends for the similarity-memory list.
// The pipeline treats the store as one named, ordered string list; any backend
// that can load and replace that list atomically will do.
package memstore

import "context"

// Store persists one bounded, ordered list of remembered persona text blobs.
type Store interface {
	// Load returns the remembered entries, oldest first. A store with no
	// prior state returns an empty slice, not an error.
	Load(ctx context.Context) ([]string, error)
	// Save replaces the remembered entries wholesale.
	Save(ctx context.Context, entries []string) error
	// Close releases any resources held by the store.
	Close() error
}
