// Command catalogue browses paginated catalogues from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/catalogue"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/provider"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
	"github.com/custodia-labs/catalogue-cli/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	settings := services.NewSettingsService(configStore)

	cli.SetVersion(version)
	cli.Configure(cli.Config{
		Settings:     settings,
		OpenBrowser:  browserOpener(settings),
		OpenImporter: openImporter,
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func browserOpener(settings *services.SettingsService) cli.BrowserOpener {
	return func(ctx context.Context) (driving.CatalogueBrowser, func() error, error) {
		cfg, err := settings.Get()
		if err != nil {
			return nil, nil, err
		}
		prov, err := provider.New(ctx, *cfg)
		if err != nil {
			return nil, nil, err
		}
		browser := services.NewBrowser(prov, cfg.Browse)
		return browser, func() error {
			browser.Close()
			return prov.Close()
		}, nil
	}
}

func openImporter(_ context.Context, dataDir string) (driving.CatalogueImporter, func() error, error) {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite catalogue: %w", err)
	}
	return services.NewImportService(store.ItemStore(), catalogue.ReadFile), store.Close, nil
}
