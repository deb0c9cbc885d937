package swapi

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	errs "github.com/matzehuels/holocron/pkg/errors"
)

// EntityType is a SWAPI resource category.
type EntityType string

// Entity types, in the order searches scan them.
const (
	People    EntityType = "people"
	Planets   EntityType = "planets"
	Films     EntityType = "films"
	Vehicles  EntityType = "vehicles"
	Starships EntityType = "starships"
	Species   EntityType = "species"
)

// EntityTypes lists every entity type in declaration order.
var EntityTypes = []EntityType{People, Planets, Films, Vehicles, Starships, Species}

// Valid reports whether t is one of [EntityTypes].
func (t EntityType) Valid() bool {
	for _, et := range EntityTypes {
		if t == et {
			return true
		}
	}
	return false
}

func (t EntityType) String() string { return string(t) }

// ParseEntityType parses s (case-insensitive, surrounding space ignored)
// into an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", errs.New(errs.ErrCodeInvalidEntityType, "unknown entity type %q (want one of %s)", s, joinTypes(EntityTypes))
	}
	return t, nil
}

// ParseEntityTypes parses every element of ss, failing on the first unknown
// type. Duplicates are kept.
func ParseEntityTypes(ss []string) ([]EntityType, error) {
	out := make([]EntityType, 0, len(ss))
	for _, s := range ss {
		t, err := ParseEntityType(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func joinTypes(ts []EntityType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// NodeKey identifies an entity instance. ID is empty for collection
// resources.
type NodeKey struct {
	Type EntityType `json:"type"`
	ID   string     `json:"id,omitempty"`
}

// CacheKey returns the node-cache key "type/id".
func (k NodeKey) CacheKey() string {
	return fmt.Sprintf("%s/%s", k.Type, k.ID)
}

func (k NodeKey) String() string { return k.CacheKey() }

// Edge is a reference from one node to another entity, resolved lazily
// with [Client.FetchObject].
type Edge NodeKey

// Key returns the key of the referenced entity.
func (e Edge) Key() NodeKey { return NodeKey(e) }

// Node is the uniform graph view of an entity.
type Node struct {
	Key   NodeKey `json:"key"`
	Name  string  `json:"name"`
	Edges []Edge  `json:"edges"`
}

// EdgesOf returns the node's edges whose type is in types, in edge order.
func (n *Node) EdgesOf(types ...EntityType) []Edge {
	var out []Edge
	for _, e := range n.Edges {
		for _, t := range types {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// RawEntity is an entity payload as returned by the API, with field order
// preserved.
type RawEntity = orderedmap.OrderedMap[string, any]

// SearchResult is one page of a collection or search listing.
type SearchResult struct {
	Count    int          `json:"count"`
	Next     string       `json:"next"`
	Previous string       `json:"previous"`
	Results  []*RawEntity `json:"results"`
}
