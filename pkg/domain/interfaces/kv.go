package interfaces

import "context"

// KVStore is the durable key-value storage behind the persistence adapter.
// Each key holds one serialized blob.
type KVStore interface {
	// Get returns the blob stored under key.
	// Returns nil, nil if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the blob under key. Implementations never leave a
	// partially written value behind: on error the previous value remains.
	Put(ctx context.Context, key string, data []byte) error

	// Close releases the underlying client
	Close() error
}
