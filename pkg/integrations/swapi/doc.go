// Package swapi is a client for the Star Wars API (https://swapi.dev).
//
// Entities are read as [Node] values: a [NodeKey] derived from the entity's
// own url, a display name, and an ordered list of [Edge] references found
// by scanning the payload for resource URLs. [Client] caches raw responses
// in a [cache.Cache] and converted nodes in a [NodeCache]; both are injected
// so callers decide their lifetime and backend.
//
//	transport := integrations.NewClient(integrations.DefaultTimeout, nil)
//	client := swapi.NewClient(transport, cache.NewMemoryCache(0), nil, swapi.Config{})
//	node, err := client.SearchByQuery(ctx, "kenobi")
//
// [cache.Cache]: github.com/matzehuels/holocron/pkg/cache.Cache
package swapi
