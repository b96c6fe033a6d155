package ports

import (
	"context"
)

// MutateFunc receives the current encoded collection and returns the encoded
// collection to persist. Returning an error aborts the write.
type MutateFunc func(current []byte) ([]byte, error)

// CollectionRepository persists whole collections as JSON documents keyed by name.
// Implementations never expose a partially written collection to readers.
type CollectionRepository interface {
	// Load returns the stored collection. When nothing is stored under name yet,
	// defaults is persisted and returned.
	Load(ctx context.Context, name string, defaults []byte) ([]byte, error)

	// Save overwrites the stored collection.
	Save(ctx context.Context, name string, data []byte) error

	// Mutate runs a load-transform-save cycle while holding exclusive access
	// to the named collection.
	Mutate(ctx context.Context, name string, defaults []byte, fn MutateFunc) error

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
