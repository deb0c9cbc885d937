package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/holocron/pkg/buildinfo"
	"github.com/matzehuels/holocron/pkg/observability"
)

// Client provides the shared HTTP transport for API clients: default
// headers, status mapping and request hooks. It performs exactly one
// attempt per call.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given request timeout and default
// headers. Headers are applied to all requests made through this client.
// A User-Agent is added unless headers already carry one.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	h := make(map[string]string, len(headers)+1)
	h["User-Agent"] = buildinfo.UserAgent()
	for k, v := range headers {
		h[k] = v
	}
	return &Client{
		http:    NewHTTPClient(timeout),
		headers: h,
	}
}

// WithHTTPClient replaces the underlying *http.Client and returns c.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

// Fetch performs an HTTP GET and returns the full response body.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := c.doRequest(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	return data, nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := splitURL(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		// Cancellation stays visible to callers as context.Canceled.
		if ctxErr := ctx.Err(); ctxErr != nil {
			hooks.OnError(ctx, req.Method, host, path, ctxErr)
			return nil, fmt.Errorf("%w: %w", ErrNetwork, ctxErr)
		}
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch code {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func splitURL(u *url.URL) (host, path string) {
	path = u.Path
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return u.Host, path
}
