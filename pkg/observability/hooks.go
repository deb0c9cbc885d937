// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in holocron emit events through the registered hooks without
// depending on any particular observability backend. The CLI registers
// implementations at startup; everything else sees no-op defaults.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Explorer().OnSeedStart(ctx, "people")
//	// ... page through the collection ...
//	observability.Explorer().OnSeedComplete(ctx, "people", nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Cache kinds reported to [CacheHooks].
const (
	CacheResponse = "response"
	CacheNode     = "node"
)

// =============================================================================
// Explorer Hooks
// =============================================================================

// ExplorerHooks receives events from search and seeding.
type ExplorerHooks interface {
	// Search events. matched is the matched entity's name, "" on no match.
	OnSearchStart(ctx context.Context, query string)
	OnSearchComplete(ctx context.Context, query, matched string, related int, duration time.Duration, err error)

	// Seed events, one pair per entity type.
	OnSeedStart(ctx context.Context, entityType string)
	OnSeedComplete(ctx context.Context, entityType string, nodeCount int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, kind string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, kind string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, kind string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExplorerHooks is a no-op implementation of ExplorerHooks.
type NoopExplorerHooks struct{}

func (NoopExplorerHooks) OnSearchStart(context.Context, string) {}
func (NoopExplorerHooks) OnSearchComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopExplorerHooks) OnSeedStart(context.Context, string)                                {}
func (NoopExplorerHooks) OnSeedComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	explorerHooks ExplorerHooks = NoopExplorerHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetExplorerHooks registers custom explorer hooks.
// This should be called once at application startup.
func SetExplorerHooks(h ExplorerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		explorerHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Explorer returns the registered explorer hooks.
func Explorer() ExplorerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return explorerHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	explorerHooks = NoopExplorerHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
