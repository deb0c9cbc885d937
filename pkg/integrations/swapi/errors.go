package swapi

import (
	errs "github.com/matzehuels/holocron/pkg/errors"
)

var (
	// ErrMalformedURL is returned when a string is not an absolute resource
	// URL.
	ErrMalformedURL = errs.New(errs.ErrCodeInvalidURL, "malformed resource URL")

	// ErrSearchResultEmpty is returned by [Client.SearchByQuery] when no
	// entity type matched the query.
	ErrSearchResultEmpty = errs.New(errs.ErrCodeNoResults, "no entity matched the query")
)
