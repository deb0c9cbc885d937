package swapi

import (
	"fmt"
	"net/url"
	"strings"
)

// apiPrefix is the path prefix every resource URL carries after its host.
const apiPrefix = "/api/"

// ParseURL extracts the entity type and optional id from a resource URL
// such as https://swapi.dev/api/people/1/.
//
// raw must be absolute with a scheme and a host. The type is not checked
// against [EntityTypes]. Query parameters are ignored.
func ParseURL(raw string) (NodeKey, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return NodeKey{}, fmt.Errorf("%w: %q: %v", ErrMalformedURL, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return NodeKey{}, fmt.Errorf("%w: %q", ErrMalformedURL, raw)
	}

	path, ok := strings.CutPrefix(u.Path, apiPrefix)
	if !ok {
		path = strings.TrimPrefix(u.Path, "/")
	}
	segs := strings.Split(path, "/")

	key := NodeKey{Type: EntityType(segs[0])}
	if len(segs) > 1 {
		key.ID = segs[1]
	}
	return key, nil
}
