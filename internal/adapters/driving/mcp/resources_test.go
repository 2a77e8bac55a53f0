package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleItemsResource(t *testing.T) {
	browser := &mockBrowser{snapshot: domain.Snapshot{
		Items: []domain.Item{{ID: "25", Name: "Pikachu"}},
	}}
	server := newTestServer(t, browser)

	result, err := server.handleItemsResource(context.Background(), makeReadResourceRequest("catalogue://items"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, `"name": "Pikachu"`)
}

func TestServer_handleItemsResource_Empty(t *testing.T) {
	server := newTestServer(t, &mockBrowser{})

	result, err := server.handleItemsResource(context.Background(), makeReadResourceRequest("catalogue://items"))

	require.NoError(t, err)
	assert.Equal(t, "[]", result.Contents[0].Text)
}

func TestServer_handleSettingsResource(t *testing.T) {
	ctx := context.Background()
	req := makeReadResourceRequest("catalogue://settings")

	t.Run("nil settings service returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockBrowser{})

		_, err := server.handleSettingsResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("hides tokens", func(t *testing.T) {
		settings := &domain.AppSettings{
			Browse:   domain.BrowseSettings{PageSize: 30, GraceWindow: 2 * time.Second},
			Provider: domain.ProviderSettings{Kind: domain.ProviderGitHub, Owner: "octocat", Token: "ghp_secret"},
		}
		server, err := NewServer(&Ports{Browser: &mockBrowser{}, Settings: &mockSettingsService{settings: settings}})
		require.NoError(t, err)

		result, err := server.handleSettingsResource(ctx, req)

		require.NoError(t, err)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"page_size": 30`)
		assert.Contains(t, text, `"grace_window": "2s"`)
		assert.Contains(t, text, `"provider": "github"`)
		assert.Contains(t, text, `"has_token": true`)
		assert.NotContains(t, text, "ghp_secret")
	})

	t.Run("returns error on settings failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Browser:  &mockBrowser{},
			Settings: &mockSettingsService{err: errors.New("config unreadable")},
		})
		require.NoError(t, err)

		_, err = server.handleSettingsResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading settings")
	})
}
