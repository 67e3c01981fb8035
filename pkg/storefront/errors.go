package storefront

import "errors"

// Fetch error taxonomy. Callers distinguish the three failure classes with
// errors.Is: a transport failure (non-success status, connection error, empty
// body), a body that is not valid JSON, and valid JSON missing the expected
// nested structure.
var (
	ErrTransport       = errors.New("storefront: transport failure")
	ErrMalformedBody   = errors.New("storefront: malformed response body")
	ErrUnexpectedShape = errors.New("storefront: unexpected response shape")
)
