package history

import "errors"

var (
	errMalformedMetadata = errors.New("history: malformed metadata payload")

	// ErrNotFound is returned by Store.Lookup when no provenance entry
	// (or only a forgotten one) exists for the given patch path.
	ErrNotFound = errors.New("history: no entry for patch")
)
