// Package kvstore provides the key-value persistence layer. Three
// backends implement the same Store interface: an in-memory map, a
// SQLite database, and a cloud-synced HTTP store with last-writer-wins
// semantics.
package kvstore

import "context"

// Store is the minimal key-value contract the rest of the system
// depends on.
type Store interface {
	// Get returns the value for key; the bool reports presence.
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	// Delete is a no-op for a missing key.
	Delete(key string) error
}

// Watcher is implemented by backends that can observe remote changes.
// onChange fires after another writer modified the store.
type Watcher interface {
	Watch(ctx context.Context, onChange func())
}
