// Package provider adapts page-oriented catalogue backends to the
// driven.FetchProvider port.
//
// Backends implement driven.PageSource and return one page at a time.
// Accumulator turns a PageSource into a cumulative FetchProvider: a request
// for page n yields the items of pages 0 through n, fetching each backend
// page at most once per session.
//
// Sub-packages hold the backends:
//   - store: any driven.ItemStore (built-in catalogue, SQLite)
//   - pokeapi: the public PokeAPI
//   - github: repositories of a GitHub user or organisation
//   - drive: files in Google Drive
//   - filesystem: entries of a local directory
package provider
