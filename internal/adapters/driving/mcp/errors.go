// Package mcp exposes a catalogue browsing session over the Model Context
// Protocol so assistants can page through and filter the catalogue.
package mcp

import "errors"

// ErrMissingBrowser is returned when no browsing session is provided.
var ErrMissingBrowser = errors.New("mcp: catalogue browser is required")
