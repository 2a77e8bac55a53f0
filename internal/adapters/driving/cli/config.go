package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage catalogue settings",
	Long: `View and change browse and provider settings.

Settings are stored in ~/.catalogue/config.toml. Tokens missing from the file
are read from GITHUB_TOKEN and GOOGLE_DRIVE_TOKEN.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a browse setting",
	Long: `Set a browse setting.

Keys:
  page_size      items requested per page (1-500)
  grace_window   how long fetching continues after the last observer leaves,
                 as a duration such as 5s or 500ms`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configProviderCmd = &cobra.Command{
	Use:   "provider KIND",
	Short: "Select the catalogue provider",
	Long: `Select the catalogue provider.

Kinds:
  builtin      the catalogue compiled into the binary
  sqlite       local catalogue filled with 'catalogue import' (--data-dir)
  pokeapi      PokeAPI species list (--base-url)
  github       repositories of a user or organisation (--owner, --token, --base-url)
  drive        Google Drive files (--token, --folder)
  filesystem   entries of a directory (--root)

Use --prompt-token to type the token without echoing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigProvider,
}

var providerFlags struct {
	dataDir     string
	baseURL     string
	owner       string
	token       string
	promptToken bool
	folder      string
	root        string
}

func init() {
	f := configProviderCmd.Flags()
	f.StringVar(&providerFlags.dataDir, "data-dir", "", "SQLite data directory")
	f.StringVar(&providerFlags.baseURL, "base-url", "", "API endpoint override")
	f.StringVar(&providerFlags.owner, "owner", "", "GitHub user or organisation")
	f.StringVar(&providerFlags.token, "token", "", "access token")
	f.BoolVar(&providerFlags.promptToken, "prompt-token", false, "read the access token from the terminal")
	f.StringVar(&providerFlags.folder, "folder", "", "Google Drive folder ID")
	f.StringVar(&providerFlags.root, "root", "", "directory to list")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configProviderCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[Browse]")
	cmd.Printf("  Page size: %d\n", settings.Browse.PageSize)
	cmd.Printf("  Grace window: %s\n", settings.Browse.GraceWindow)
	cmd.Println()

	p := settings.Provider
	cmd.Println("[Provider]")
	cmd.Printf("  Kind: %s (%s)\n", p.Kind, p.Kind.Description())
	printIfSet(cmd, "Data dir", p.DataDir)
	printIfSet(cmd, "Base URL", p.BaseURL)
	printIfSet(cmd, "Owner", p.Owner)
	printIfSet(cmd, "Folder", p.FolderID)
	printIfSet(cmd, "Root", p.Root)
	if p.Kind == domain.ProviderGitHub || p.Kind == domain.ProviderDrive {
		if p.Token != "" {
			cmd.Printf("  Token: %s\n", maskToken(p.Token))
		} else {
			cmd.Println("  Token: (not set)")
		}
	}
	cmd.Println()

	if err := p.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	switch key {
	case "page_size":
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: page_size must be a number", domain.ErrInvalidInput)
		}
		if err := settingsService.SetPageSize(size); err != nil {
			return fmt.Errorf("failed to set page size: %w", err)
		}
	case "grace_window":
		if err := settingsService.SetGraceWindow(value); err != nil {
			return fmt.Errorf("failed to set grace window: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

func runConfigProvider(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	token := providerFlags.token
	if providerFlags.promptToken {
		cmd.Print("Enter token: ")
		token = readPassword(cmd.InOrStdin())
		cmd.Println()
	}

	p := domain.ProviderSettings{
		Kind:     domain.ProviderKind(strings.ToLower(args[0])),
		DataDir:  providerFlags.dataDir,
		BaseURL:  providerFlags.baseURL,
		Owner:    providerFlags.owner,
		Token:    token,
		FolderID: providerFlags.folder,
		Root:     providerFlags.root,
	}
	if err := settingsService.SetProvider(p); err != nil {
		return fmt.Errorf("failed to set provider: %w", err)
	}

	cmd.Printf("Provider set to: %s\n", p.Kind.Description())
	return nil
}

func printIfSet(cmd *cobra.Command, label, value string) {
	if value != "" {
		cmd.Printf("  %s: %s\n", label, value)
	}
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
