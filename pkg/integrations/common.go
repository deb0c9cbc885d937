package integrations

import (
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single API request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the API answers 404 for a resource.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// unexpected status codes, unreadable bodies).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given request timeout.
// A timeout of zero disables it; callers still bound requests via context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
