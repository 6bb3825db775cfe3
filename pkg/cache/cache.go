// Package cache stores rendered artifacts so repeated renders of the same
// records with the same options are served without rebuilding the plot.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: shared cache with a TTL index
//   - [MemoryCache]: process-local map, mostly for tests
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// A [Keyer] derives artifact keys from the hash of the input records and
// the render options. Wrap it in [NewScopedKeyer] to give a deployment or
// tenant its own namespace.
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.HashRecords(records), cache.ArtifactKeyOpts{Format: "svg", Width: 1200})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (ok == false), not an error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
