package swapi

import (
	"fmt"
)

// ConvertToNode builds a [Node] from a raw entity payload.
//
// The key comes from the payload's own "url" field, which must be present
// and parse with [ParseURL]. The name is the first non-empty string among
// "name" and "title". Every other field is scanned in declaration order:
// strings, and string elements of arrays, that parse as resource URLs
// become edges. Everything else is skipped.
func ConvertToNode(raw *RawEntity) (*Node, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty entity", ErrMalformedURL)
	}

	v, ok := raw.Get("url")
	if !ok {
		return nil, fmt.Errorf("%w: entity has no url field", ErrMalformedURL)
	}
	rawURL, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: url field is %T, not a string", ErrMalformedURL, v)
	}
	key, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	node := &Node{Key: key, Name: entityName(raw)}
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "url" {
			continue
		}
		switch val := pair.Value.(type) {
		case string:
			if e, ok := CreateEdge(val); ok {
				node.Edges = append(node.Edges, e)
			}
		case []any:
			for _, elem := range val {
				s, ok := elem.(string)
				if !ok {
					continue
				}
				if e, ok := CreateEdge(s); ok {
					node.Edges = append(node.Edges, e)
				}
			}
		}
	}
	return node, nil
}

// CreateEdge returns the edge a value refers to, or false when the value
// is not a resource URL.
func CreateEdge(value string) (Edge, bool) {
	key, err := ParseURL(value)
	if err != nil {
		return Edge{}, false
	}
	return Edge(key), true
}

func entityName(raw *RawEntity) string {
	for _, field := range []string{"name", "title"} {
		if v, ok := raw.Get(field); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
