// Package domain defines the core business entities for the catalogue browser.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Item: A catalogue entry with a stable identifier and display name
//   - Key: The (page, query) pair that drives one coordination cycle
//   - FetchStatus: Idle, Loading or Error for the authoritative fetch
//   - Snapshot: A point-in-time view of a browsing session
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
