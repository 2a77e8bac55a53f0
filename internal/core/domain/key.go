package domain

import "fmt"

// Key is the composite (page, query) pair observed by the result coordinator.
// Any change to either component is a new key.
type Key struct {
	// Page is the zero-based page index requested from the provider.
	Page int

	// Query is the free-text filter typed by the user.
	Query string
}

// Searching reports whether the key carries a non-blank query.
func (k Key) Searching() bool {
	return !IsBlank(k.Query)
}

// String returns a compact representation for logs.
func (k Key) String() string {
	return fmt.Sprintf("page=%d query=%q", k.Page, k.Query)
}

// Snapshot is a point-in-time view of a browsing session.
type Snapshot struct {
	// Key is the most recently observed key.
	Key Key

	// Status is the published fetch status.
	Status FetchStatus

	// Items is the published, filtered list.
	Items []Item

	// SearchActive reports whether search mode is on.
	SearchActive bool

	// LastPage reports whether the query-less pagination is exhausted.
	LastPage bool
}
