package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

func TestDefaultTheme_ColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[string]bool)
	for _, c := range []string{
		string(theme.Primary), string(theme.Secondary), string(theme.Success),
		string(theme.Warning), string(theme.Error),
	} {
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	require.NotNil(t, NewStyles(nil))
}

func TestStyles_Status(t *testing.T) {
	st := NewStyles(nil)

	assert.Contains(t, st.Status(domain.StatusIdle()), "idle")
	assert.Contains(t, st.Status(domain.StatusLoading()), "loading")
	assert.Contains(t, st.Status(domain.StatusError("timeout")), "error: timeout")
}

func TestRenderSnapshot(t *testing.T) {
	buf := new(bytes.Buffer)
	snap := domain.Snapshot{
		Key:          domain.Key{Page: 1, Query: "saur"},
		Status:       domain.StatusIdle(),
		Items:        []domain.Item{{ID: "1", Name: "bulbasaur"}, {ID: "2", Name: "ivysaur"}},
		SearchActive: true,
		LastPage:     true,
	}

	renderSnapshot(buf, NewStyles(nil), snap)

	out := buf.String()
	assert.Contains(t, out, "Page 2")
	assert.Contains(t, out, `search "saur"`)
	assert.Contains(t, out, "2 items")
	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "ivysaur")
	assert.Contains(t, out, "(end of catalogue)")
}

func TestRenderSnapshot_SearchInactive(t *testing.T) {
	buf := new(bytes.Buffer)

	renderSnapshot(buf, NewStyles(nil), domain.Snapshot{Status: domain.StatusLoading()})

	assert.Contains(t, buf.String(), "Page 1")
	assert.Contains(t, buf.String(), "0 items")
	assert.NotContains(t, buf.String(), "search")
}
