package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrProviderUnavailable indicates the catalogue provider could not be reached
	// or is not configured.
	ErrProviderUnavailable = errors.New("catalogue provider unavailable")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthRequired indicates the provider needs a token but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrBrowserClosed indicates the browsing session has been closed.
	ErrBrowserClosed = errors.New("browser closed")
)
