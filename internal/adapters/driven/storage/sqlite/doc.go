// Package sqlite provides the SQLite-backed local catalogue.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A single Store owns the connection and hands out port
// implementations through wrapper types:
//
//   - ItemStore: catalogue items in insertion order
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.catalogue/data/catalogue.db
package sqlite
