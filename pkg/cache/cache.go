// Package cache provides the key-value stores holocron keeps API data in.
//
// Two kinds of store exist:
//
//   - [Cache]: a byte-oriented store with per-entry TTL, used for raw HTTP
//     responses keyed by request URL. Backends: [MemoryCache] (default),
//     [FileCache], [RedisCache] and [NullCache].
//   - [Map]: an in-process typed store with a fixed TTL that hands back the
//     exact value that was stored, used for derived graph nodes.
//
// Stores carry no invalidation: entries leave only by TTL expiry, explicit
// deletion, or a full [Cache.Flush] / [Map.Flush].
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached API data. The remote data set is near-static.
const (
	DefaultResponseTTL = 24 * time.Hour
	DefaultNodeTTL     = time.Hour
)

// Cache is a byte-oriented key-value store with TTL-based expiry.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the data stored under key. A miss (including an expired
	// entry) returns hit=false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Flush removes every entry owned by this cache.
	Flush(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}
