package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/catalogue"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/provider"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/provider/store"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
	"github.com/custodia-labs/catalogue-cli/internal/core/services"
)

var testNames = []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon"}

// setupTestServices wires real services over in-memory stores with a page
// size of two.
func setupTestServices(t *testing.T) *memory.ItemStore {
	t.Helper()

	itemStore := memory.NewItemStore()
	items := make([]domain.Item, len(testNames))
	for i, name := range testNames {
		items[i] = domain.Item{ID: name, Name: name}
	}
	require.NoError(t, itemStore.SaveItems(context.Background(), items))

	Configure(Config{
		Settings: services.NewSettingsService(memory.NewConfigStore()),
		OpenBrowser: func(context.Context) (driving.CatalogueBrowser, func() error, error) {
			acc := provider.NewAccumulator(store.NewSource("test", itemStore, 2))
			browser := services.NewBrowser(acc, domain.BrowseSettings{PageSize: 2})
			return browser, func() error { browser.Close(); return nil }, nil
		},
		OpenImporter: func(context.Context, string) (driving.CatalogueImporter, func() error, error) {
			return services.NewImportService(itemStore, catalogue.ReadFile), func() error { return nil }, nil
		},
	})
	t.Cleanup(func() { Configure(Config{}) })
	return itemStore
}

// resetFlags restores flag variables; cobra keeps them between executions.
func resetFlags() {
	verbose = false
	listPages = 1
	listQuery = ""
	listJSON = false
	listWait = browseWaitDefault
	browseWait = browseWaitDefault
	importReplace = false
	importDataDir = ""
	providerFlags = struct {
		dataDir     string
		baseURL     string
		owner       string
		token       string
		promptToken bool
		folder      string
		root        string
	}{}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
