package customerrors

import "errors"

var (
	// ErrInvalidID is returned by backend client guards when a required numeric
	// identifier is missing, zero or negative. No network call was made.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrMissingField is returned when a required string field is empty.
	// No network call was made.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidEntityType is returned when a promotion targets neither a
	// product nor a service.
	ErrInvalidEntityType = errors.New("entity type must be product or service")

	// ErrUpstream is wrapped around 5xx responses from the commerce backend.
	ErrUpstream = errors.New("upstream backend error")

	// ErrSessionNotFound means the session id from the cookie has no live
	// session in the store (expired, logged out or never existed).
	ErrSessionNotFound = errors.New("session not found")

	// ErrCleanupIncomplete marks a cascade delete that stopped short of
	// removing the parent because one or more dependent deletes failed.
	ErrCleanupIncomplete = errors.New("cleanup incomplete")
)
