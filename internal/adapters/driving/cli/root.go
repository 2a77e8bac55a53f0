// Package cli implements the catalogue command line using cobra.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

var verbose bool

// BrowserOpener starts a browsing session with the configured provider.
// The returned function releases the session and its provider.
type BrowserOpener func(ctx context.Context) (driving.CatalogueBrowser, func() error, error)

// ImporterOpener opens the local catalogue store in dataDir for importing.
// An empty dataDir selects the default location.
type ImporterOpener func(ctx context.Context, dataDir string) (driving.CatalogueImporter, func() error, error)

// Config holds the services the commands run against.
type Config struct {
	Settings     driving.SettingsService
	OpenBrowser  BrowserOpener
	OpenImporter ImporterOpener
}

var (
	settingsService driving.SettingsService
	openBrowser     BrowserOpener
	openImporter    ImporterOpener
)

var rootCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "Browse paginated catalogues",
	Long: `Catalogue browses a paginated list of items page by page and filters
the loaded items by name.

Items come from the configured provider: the built-in list, a local SQLite
catalogue, PokeAPI, GitHub repositories, Google Drive files or a directory.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output")
}

// Configure sets the services used by commands.
func Configure(cfg Config) {
	settingsService = cfg.Settings
	openBrowser = cfg.OpenBrowser
	openImporter = cfg.OpenImporter
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
