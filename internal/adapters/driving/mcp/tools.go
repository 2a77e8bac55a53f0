package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

// SnapshotInput is the input schema for the snapshot tool.
type SnapshotInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of items to return (default all)"`
}

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"text to filter item names by; empty clears the filter"`
}

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// SnapshotOutput is the state of the browsing session after a tool ran.
type SnapshotOutput struct {
	Page         int          `json:"page"`
	Query        string       `json:"query"`
	SearchActive bool         `json:"search_active"`
	LastPage     bool         `json:"last_page"`
	Status       string       `json:"status"`
	Error        string       `json:"error,omitempty"`
	Count        int          `json:"count"`
	Items        []ItemOutput `json:"items"`
}

// ItemOutput represents a single catalogue item.
type ItemOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "catalogue_snapshot",
		Description: "Show the current page, filter, status and visible items",
	}, s.handleSnapshot)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "catalogue_next_page",
		Description: "Load the next page of the catalogue (ignored while filtering or on the last page)",
	}, s.handleNextPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "catalogue_query",
		Description: "Filter the loaded items by name; an empty query restarts from the first page",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "catalogue_toggle_search",
		Description: "Turn search mode on or off; turning it off clears the filter",
	}, s.handleToggleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "catalogue_retry",
		Description: "Retry the last fetch after an error",
	}, s.handleRetry)
}

func (s *Server) handleSnapshot(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SnapshotInput,
) (*mcp.CallToolResult, SnapshotOutput, error) {
	return nil, toOutput(s.settle(ctx), input.Limit), nil
}

func (s *Server) handleNextPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, SnapshotOutput, error) {
	s.ports.Browser.AdvancePage()
	return nil, toOutput(s.settle(ctx), 0), nil
}

// handleQuery turns search mode on before applying a non-blank query.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, SnapshotOutput, error) {
	if !domain.IsBlank(input.Query) && !s.ports.Browser.Snapshot().SearchActive {
		s.ports.Browser.ToggleSearchActive()
	}
	s.ports.Browser.UpdateQuery(input.Query)
	return nil, toOutput(s.settle(ctx), 0), nil
}

func (s *Server) handleToggleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, SnapshotOutput, error) {
	s.ports.Browser.ToggleSearchActive()
	return nil, toOutput(s.settle(ctx), 0), nil
}

func (s *Server) handleRetry(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, SnapshotOutput, error) {
	s.ports.Browser.Retry()
	return nil, toOutput(s.settle(ctx), 0), nil
}

func toOutput(snap domain.Snapshot, limit int) SnapshotOutput {
	items := snap.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	out := SnapshotOutput{
		Page:         snap.Key.Page,
		Query:        snap.Key.Query,
		SearchActive: snap.SearchActive,
		LastPage:     snap.LastPage,
		Status:       snap.Status.State.String(),
		Error:        snap.Status.Message,
		Count:        len(snap.Items),
		Items:        make([]ItemOutput, len(items)),
	}
	for i, item := range items {
		out.Items[i] = ItemOutput{ID: item.ID, Name: item.Name, URL: item.URL}
	}
	return out
}
