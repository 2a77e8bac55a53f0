package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for catalogue resources.
const uriScheme = "catalogue://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "items",
		Name:        "items",
		Description: "Items currently visible in the browsing session",
		MIMEType:    "application/json",
	}, s.handleItemsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective browse and provider settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

func (s *Server) handleItemsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	out := toOutput(s.ports.Browser.Snapshot(), 0)
	return jsonResource(req.Params.URI, out.Items)
}

// handleSettingsResource never includes access tokens.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	type settingsInfo struct {
		PageSize    int    `json:"page_size"`
		GraceWindow string `json:"grace_window"`
		Provider    string `json:"provider"`
		HasToken    bool   `json:"has_token"`
		ConfigPath  string `json:"config_path"`
	}

	return jsonResource(req.Params.URI, settingsInfo{
		PageSize:    settings.Browse.PageSize,
		GraceWindow: settings.Browse.GraceWindow.String(),
		Provider:    settings.Provider.Kind.String(),
		HasToken:    settings.Provider.Token != "",
		ConfigPath:  s.ports.Settings.ConfigPath(),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
