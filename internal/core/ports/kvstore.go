package ports

import "context"

// KVStore persists small string values.
//
//go:generate mockgen -source=kvstore.go -destination=mocks/mock_kvstore.go -package=mocks
type KVStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
