// Package pkg provides the libraries behind holocron, a terminal explorer
// for the Star Wars API.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [integrations/swapi] - API client: URL parsing, node conversion, paging, search
//  2. [explorer] - Orchestration (search, neighborhoods, cache seeding)
//  3. [cache] - Response stores (memory, file, redis) and the in-memory node map
//  4. [render/nodelink] - Node-link diagrams of an entity's neighborhood
//  5. [config], [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through holocron:
//
//	free-text query
//	       ↓
//	  [explorer.Explorer.Search]
//	       ↓
//	  [swapi.Client.SearchByQuery] (every collection at once)
//	       ↓
//	  raw JSON → [swapi.ConvertToNode] → node with edges
//	       ↓
//	  [swapi.Client.FetchObject] per edge (node cache, then response cache)
//	       ↓
//	  matched name + related names
//
// # Quick Start
//
//	transport := integrations.NewClient(integrations.DefaultTimeout, nil)
//	client := swapi.NewClient(transport, cache.NewMemoryCache(0), nil, swapi.Config{})
//	ex := explorer.New(client, nil)
//
//	res, err := ex.Search(ctx, "kenobi", []swapi.EntityType{swapi.People})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Message, res.Names)
//
// # Caching
//
// Two layers keep repeated lookups local. The response cache stores raw
// bodies by URL with a TTL and can be shared between runs (file, redis).
// The node cache holds converted nodes for the life of the process.
//
// [integrations/swapi]: github.com/matzehuels/holocron/pkg/integrations/swapi
// [explorer]: github.com/matzehuels/holocron/pkg/explorer
// [cache]: github.com/matzehuels/holocron/pkg/cache
// [render/nodelink]: github.com/matzehuels/holocron/pkg/render/nodelink
// [config]: github.com/matzehuels/holocron/pkg/config
// [errors]: github.com/matzehuels/holocron/pkg/errors
// [observability]: github.com/matzehuels/holocron/pkg/observability
// [buildinfo]: github.com/matzehuels/holocron/pkg/buildinfo
package pkg
