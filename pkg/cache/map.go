package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Map is an in-process typed store with a fixed TTL for every entry.
//
// Unlike [Cache] it keeps values as-is: a hit returns exactly the value that
// was stored, so pointer identity survives a round trip. Map is safe for
// concurrent use.
type Map[V any] struct {
	lru *expirable.LRU[string, V]
}

// NewMap creates a Map holding at most size entries, each expiring ttl after
// it was last set. A size of zero means unbounded; a ttl of zero disables
// expiry.
func NewMap[V any](size int, ttl time.Duration) *Map[V] {
	return &Map[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	return m.lru.Get(key)
}

// Set stores value under key, replacing any previous value and restarting its
// TTL.
func (m *Map[V]) Set(key string, value V) {
	m.lru.Add(key, value)
}

// Delete removes key.
func (m *Map[V]) Delete(key string) {
	m.lru.Remove(key)
}

// Flush removes every entry.
func (m *Map[V]) Flush() {
	m.lru.Purge()
}

// Keys returns the live keys, oldest first.
func (m *Map[V]) Keys() []string {
	return m.lru.Keys()
}

// Len returns the number of live entries.
func (m *Map[V]) Len() int {
	return m.lru.Len()
}
