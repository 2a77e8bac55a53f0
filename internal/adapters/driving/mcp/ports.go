package mcp

import (
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Browser is the browsing session the tools operate on.
	Browser driving.CatalogueBrowser

	// Settings exposes the effective configuration. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Browser == nil {
		return ErrMissingBrowser
	}
	return nil
}
