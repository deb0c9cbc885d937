package errors

import (
	"strings"
	"unicode"
)

// MaxQueryLength bounds free-text search queries.
const MaxQueryLength = 256

// ValidateQuery validates a free-text search query before it is sent to the API.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only queries
//   - No control characters (including null bytes)
//   - Maximum length of [MaxQueryLength] bytes
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return New(ErrCodeInvalidInput, "query cannot be empty")
	}

	if len(query) > MaxQueryLength {
		return New(ErrCodeInvalidInput, "query too long (max %d characters)", MaxQueryLength)
	}

	for _, r := range query {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "query contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	return nil
}
