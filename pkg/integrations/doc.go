// Package integrations provides the HTTP transport shared by API clients.
//
// # Overview
//
// [Client] wraps a net/http client with default headers (including a
// holocron User-Agent), a request timeout, and status mapping:
//
//   - 200 succeeds
//   - 404 fails with [ErrNotFound]
//   - anything else, and every transport failure, fails with [ErrNetwork]
//
// Requests are attempted once. Retry and rate limiting are left to callers.
// Every request emits [observability.HTTPHooks] events.
//
// The Star Wars API client lives in the [swapi] subpackage and takes a
// *Client as its fetcher:
//
//	transport := integrations.NewClient(integrations.DefaultTimeout, nil)
//	client := swapi.NewClient(transport, responses, nodes, swapi.Config{})
//
// [swapi]: github.com/matzehuels/holocron/pkg/integrations/swapi
// [observability.HTTPHooks]: github.com/matzehuels/holocron/pkg/observability.HTTPHooks
package integrations
