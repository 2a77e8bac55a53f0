package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

var (
	importReplace bool
	importDataDir string
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a catalogue file into the local SQLite catalogue",
	Long: `Import items from a TOML catalogue file into the local SQLite catalogue
used by the sqlite provider.

The file lists items as an array of tables:

  [[items]]
  id = "25"
  name = "Pikachu"
  url = "https://pokeapi.co/api/v2/pokemon/25/"

Items with an existing id are replaced in place; new items are appended.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "remove existing items first")
	importCmd.Flags().StringVar(&importDataDir, "data-dir", "", "catalogue data directory (default: configured or ~/.catalogue/data)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if openImporter == nil {
		return errors.New("catalogue store not configured")
	}

	dataDir := importDataDir
	if dataDir == "" && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			dataDir = settings.Provider.DataDir
		}
	}

	importer, release, err := openImporter(cmd.Context(), dataDir)
	if err != nil {
		return fmt.Errorf("failed to open catalogue store: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("closing catalogue store: %v", err)
		}
	}()

	count, err := importer.ImportFile(cmd.Context(), args[0], importReplace)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %s: catalogue now holds %d items.\n", args[0], count)
	return nil
}
