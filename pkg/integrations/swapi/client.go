package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/holocron/pkg/cache"
	errs "github.com/matzehuels/holocron/pkg/errors"
	"github.com/matzehuels/holocron/pkg/observability"
)

// DefaultRootURL is the public SWAPI root.
const DefaultRootURL = "https://swapi.dev/api"

// Fetcher performs a single HTTP GET and returns the response body.
// [integrations.Client] is the production implementation.
//
// [integrations.Client]: github.com/matzehuels/holocron/pkg/integrations.Client
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// NodeCache stores converted nodes by "type/id". Hits must return the
// stored pointer unchanged. *cache.Map[*Node] satisfies it.
type NodeCache interface {
	Get(key string) (*Node, bool)
	Set(key string, node *Node)
	Flush()
}

// Config holds client settings. Zero values select the defaults.
type Config struct {
	RootURL     string        // API root, DefaultRootURL when empty
	ResponseTTL time.Duration // response cache TTL, cache.DefaultResponseTTL when zero
}

// Client reads the Star Wars API through two caches: raw responses keyed
// by request URL, and converted nodes keyed by "type/id".
//
// Client is safe for concurrent use as long as its caches are.
type Client struct {
	fetcher   Fetcher
	responses cache.Cache
	nodes     NodeCache
	root      string
	ttl       time.Duration
}

// NewClient creates a Client. A nil responses cache disables response
// caching; a nil nodes cache is replaced by a fresh in-memory one.
func NewClient(fetcher Fetcher, responses cache.Cache, nodes NodeCache, cfg Config) *Client {
	if responses == nil {
		responses = cache.NewNullCache()
	}
	if nodes == nil {
		nodes = cache.NewMap[*Node](0, cache.DefaultNodeTTL)
	}
	root := strings.TrimRight(cfg.RootURL, "/")
	if root == "" {
		root = DefaultRootURL
	}
	ttl := cfg.ResponseTTL
	if ttl <= 0 {
		ttl = cache.DefaultResponseTTL
	}
	return &Client{
		fetcher:   fetcher,
		responses: responses,
		nodes:     nodes,
		root:      root,
		ttl:       ttl,
	}
}

// RootURL returns the API root the client builds URLs from.
func (c *Client) RootURL() string { return c.root }

// ObjectURL returns the URL of a single entity.
func (c *Client) ObjectURL(key NodeKey) string {
	u := c.root + "/" + url.PathEscape(string(key.Type)) + "/"
	if key.ID != "" {
		u += url.PathEscape(key.ID) + "/"
	}
	return u
}

// PageURL returns the URL of one listing page of t.
func (c *Client) PageURL(t EntityType, page int) string {
	return c.root + "/" + url.PathEscape(string(t)) + "/?page=" + strconv.Itoa(page)
}

// SearchURL returns the URL searching t for query.
func (c *Client) SearchURL(t EntityType, query string) string {
	return c.root + "/" + url.PathEscape(string(t)) + "/?search=" + url.QueryEscape(query)
}

// FetchData returns the body at url, from the response cache when
// possible. Fetched bodies are cached under url. Transport errors are
// returned as-is.
func (c *Client) FetchData(ctx context.Context, url string) ([]byte, error) {
	hooks := observability.Cache()

	data, hit, err := c.responses.Get(ctx, url)
	if err == nil && hit {
		hooks.OnCacheHit(ctx, observability.CacheResponse)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, observability.CacheResponse)

	data, err = c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.responses.Set(ctx, url, data, c.ttl); err == nil {
		hooks.OnCacheSet(ctx, observability.CacheResponse, len(data))
	}
	return data, nil
}

// FetchObject returns the node for key, from the node cache when possible.
func (c *Client) FetchObject(ctx context.Context, key NodeKey) (*Node, error) {
	hooks := observability.Cache()
	ck := key.CacheKey()

	if node, ok := c.nodes.Get(ck); ok {
		hooks.OnCacheHit(ctx, observability.CacheNode)
		return node, nil
	}
	hooks.OnCacheMiss(ctx, observability.CacheNode)

	u := c.ObjectURL(key)
	data, err := c.FetchData(ctx, u)
	if err != nil {
		return nil, err
	}
	raw := orderedmap.New[string, any]()
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s", u)
	}
	node, err := ConvertToNode(raw)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", u, err)
	}

	c.nodes.Set(ck, node)
	hooks.OnCacheSet(ctx, observability.CacheNode, 1)
	return node, nil
}

// GetPage returns one listing page of t. Pages start at 1.
func (c *Client) GetPage(ctx context.Context, t EntityType, page int) (*SearchResult, error) {
	return c.getListing(ctx, c.PageURL(t, page))
}

// GetAll walks every listing page of t, following Next links one at a
// time, and returns the converted nodes in page order. Each node is stored
// in the node cache under its own key.
func (c *Client) GetAll(ctx context.Context, t EntityType) ([]*Node, error) {
	var nodes []*Node
	for next := c.PageURL(t, 1); next != ""; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := c.getListing(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Results {
			node, err := ConvertToNode(raw)
			if err != nil {
				return nil, fmt.Errorf("convert %s result: %w", t, err)
			}
			c.nodes.Set(node.Key.CacheKey(), node)
			nodes = append(nodes, node)
		}
		next = page.Next
	}
	return nodes, nil
}

// SearchByQuery searches every entity type at once and waits for all of
// them. It returns the first result of the first type, in [EntityTypes]
// order, that reported matches. With no matches it fails with
// [ErrSearchResultEmpty].
//
// The matched node is not stored in the node cache.
func (c *Client) SearchByQuery(ctx context.Context, query string) (*Node, error) {
	pages := make([]*SearchResult, len(EntityTypes))

	var g errgroup.Group
	for i, t := range EntityTypes {
		g.Go(func() error {
			page, err := c.getListing(ctx, c.SearchURL(t, query))
			if err != nil {
				return fmt.Errorf("search %s: %w", t, err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, page := range pages {
		if page.Count == 0 || len(page.Results) == 0 {
			continue
		}
		return ConvertToNode(page.Results[0])
	}
	return nil, fmt.Errorf("%w: %q", ErrSearchResultEmpty, query)
}

// FlushCache empties the node cache. The response cache is left alone.
func (c *Client) FlushCache() {
	c.nodes.Flush()
}

func (c *Client) getListing(ctx context.Context, url string) (*SearchResult, error) {
	data, err := c.FetchData(ctx, url)
	if err != nil {
		return nil, err
	}
	var page SearchResult
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s", url)
	}
	return &page, nil
}
