package explorer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/holocron/pkg/integrations/swapi"
	"github.com/matzehuels/holocron/pkg/observability"
)

// Result is the answer to a search: the matched entity's name (or a
// no-match message) and the names of its related entities.
type Result struct {
	Message string   `json:"message"`
	Names   []string `json:"names"`
}

// NoMatchMessage is the Result message for a query nothing matched.
func NoMatchMessage(query string) string {
	return "No entity found for query " + query
}

// Search finds the entity matching query and resolves the names of the
// entities it references whose type is in related. Names keep edge order.
//
// A query that matches nothing is not an error: the Result carries
// [NoMatchMessage] and no names. Every other failure is returned.
func (e *Explorer) Search(ctx context.Context, query string, related []swapi.EntityType) (*Result, error) {
	hooks := observability.Explorer()
	hooks.OnSearchStart(ctx, query)
	start := time.Now()

	node, err := e.Source.SearchByQuery(ctx, query)
	if errors.Is(err, swapi.ErrSearchResultEmpty) {
		e.Logger.Debug("no match", "query", query)
		hooks.OnSearchComplete(ctx, query, "", 0, time.Since(start), nil)
		return &Result{Message: NoMatchMessage(query), Names: []string{}}, nil
	}
	if err != nil {
		hooks.OnSearchComplete(ctx, query, "", 0, time.Since(start), err)
		return nil, err
	}

	nodes, err := e.resolve(ctx, node.EdgesOf(related...))
	if err != nil {
		hooks.OnSearchComplete(ctx, query, node.Name, 0, time.Since(start), err)
		return nil, err
	}

	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	e.Logger.Debug("search resolved",
		"query", query,
		"match", node.Key.CacheKey(),
		"related", len(names),
		"duration", time.Since(start))
	hooks.OnSearchComplete(ctx, query, node.Name, len(names), time.Since(start), nil)

	return &Result{Message: node.Name, Names: names}, nil
}

// Neighborhood is a matched node and the nodes it references.
type Neighborhood struct {
	Center    *swapi.Node
	Neighbors []*swapi.Node
}

// Neighborhood finds the entity matching query and resolves its edges whose
// type is in related, or every edge when related is empty. Each referenced
// entity appears once, in first-edge order. A query that matches nothing
// fails with [swapi.ErrSearchResultEmpty].
func (e *Explorer) Neighborhood(ctx context.Context, query string, related []swapi.EntityType) (*Neighborhood, error) {
	node, err := e.Source.SearchByQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	edges := node.Edges
	if len(related) > 0 {
		edges = node.EdgesOf(related...)
	}
	seen := make(map[swapi.Edge]bool, len(edges))
	unique := make([]swapi.Edge, 0, len(edges))
	for _, edge := range edges {
		if !seen[edge] {
			seen[edge] = true
			unique = append(unique, edge)
		}
	}

	neighbors, err := e.resolve(ctx, unique)
	if err != nil {
		return nil, err
	}
	return &Neighborhood{Center: node, Neighbors: neighbors}, nil
}

// resolve fetches every edge concurrently and returns the nodes in edge
// order. All fetches run to completion; the first failure is returned.
func (e *Explorer) resolve(ctx context.Context, edges []swapi.Edge) ([]*swapi.Node, error) {
	nodes := make([]*swapi.Node, len(edges))

	var g errgroup.Group
	for i, edge := range edges {
		g.Go(func() error {
			n, err := e.Source.FetchObject(ctx, edge.Key())
			if err != nil {
				return fmt.Errorf("resolve %s: %w", edge.Key(), err)
			}
			nodes[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return nodes, nil
}
