package cache

import (
	"context"
	"time"
)

// MemoryCache is the default [Cache] backend: an in-process store that lives
// as long as the process.
//
// Entries carry their own expiry so per-call TTLs are honoured; the
// underlying [Map] only bounds the number of entries.
type MemoryCache struct {
	entries *Map[memoryEntry]
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache holding at most maxEntries
// entries (zero means unbounded).
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{entries: NewMap[memoryEntry](maxEntries, 0)}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.entries.Delete(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a copy of data in the cache.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.entries.Set(key, e)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

// Flush removes every entry.
func (c *MemoryCache) Flush(ctx context.Context) error {
	c.entries.Flush()
	return nil
}

// Len returns the number of stored entries, including ones that have expired
// but were not read since.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}

// Close does nothing for the memory cache.
func (c *MemoryCache) Close() error {
	return nil
}

var _ Cache = (*MemoryCache)(nil)
