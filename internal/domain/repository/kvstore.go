// Package repository defines the persistence contracts the use cases
// depend on. Implementations live under internal/infra.
package repository

import (
	"context"

	"sapa/internal/errors"
)

// Sentinel errors returned by KeyValueStore implementations.
var (
	// ErrKeyNotFound is returned by Get when the key has never been
	// written or has been deleted.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStorageUnavailable is returned when the underlying storage
	// cannot be reached at all. Callers degrade to an empty state
	// rather than fail hard.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// KeyValueStore is the opaque blob store both data stores persist to.
// Values are whole-collection JSON snapshots rewritten on every
// mutation; there are no partial updates and no transactional guarantee
// across keys.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key. Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, key string) error
}
