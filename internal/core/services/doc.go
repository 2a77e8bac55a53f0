// Package services implements the driving port interfaces.
//
// The browsing core lives here: observable state holders (PageCursor,
// QueryChannel, LastPageFlag), the SearchController that mutates them from
// user commands, and the ResultCoordinator that turns key changes into
// fetches and publishes the filtered list and fetch status.
//
// Services are pure Go and only talk to adapters through driven ports.
package services
