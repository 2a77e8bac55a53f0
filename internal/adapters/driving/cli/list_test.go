package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_FirstPage(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Page 1")
	assert.Contains(t, out, "bulbasaur")
	assert.Contains(t, out, "ivysaur")
	assert.NotContains(t, out, "venusaur")
	assert.NotContains(t, out, "end of catalogue")
}

func TestListCmd_AllPages(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "list", "--pages", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "Page 3")
	assert.Contains(t, out, "charmeleon")
	assert.Contains(t, out, "(end of catalogue)")
}

func TestListCmd_Query(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "list", "--pages", "3", "--query", "CHAR")

	require.NoError(t, err)
	assert.Contains(t, out, `search "CHAR"`)
	assert.Contains(t, out, "charmander")
	assert.Contains(t, out, "charmeleon")
	assert.NotContains(t, out, "bulbasaur")
}

func TestListCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "list", "--pages", "2", "--json")

	require.NoError(t, err)
	var items []listItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 4)
	assert.Equal(t, listItem{ID: "bulbasaur", Name: "bulbasaur"}, items[0])
}

func TestListCmd_InvalidPages(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "list", "--pages", "0")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--pages")
}

func TestListCmd_NotConfigured(t *testing.T) {
	Configure(Config{})

	_, err := execute(t, "", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestListCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"pages", "query", "json", "wait"} {
		assert.NotNil(t, listCmd.Flags().Lookup(name), "missing flag %s", name)
	}
}
