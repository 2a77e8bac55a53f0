// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - FetchProvider: Yields the cumulative item list for a page index
//   - ConfigStore: Application configuration
//
// # Adapter-facing Interfaces
//
// These are not consumed by core services directly but let adapters be
// composed from smaller parts:
//
//   - PageSource: Fetches exactly one page; wrapped into a FetchProvider
//   - ItemStore: Local catalogue persistence for the sqlite provider
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
