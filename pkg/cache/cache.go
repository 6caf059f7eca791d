// Package cache stores built graphs and rendered export artifacts.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries on disk, used by the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are produced by a [Keyer]. Dataset keys are derived from the content
// hash of the input file plus everything that changes how it is turned into
// a graph; artifact keys from the hash of the graph's JSON export plus the
// render options. Identical inputs therefore always hit the same entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiration.
// A miss is reported by ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default entry lifetimes.
const (
	TTLGraph    = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)
