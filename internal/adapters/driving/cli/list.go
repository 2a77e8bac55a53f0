package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/services"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

var (
	listPages int
	listQuery string
	listJSON  bool
	listWait  time.Duration
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print catalogue items",
	Long: `Load the first pages of the catalogue and print the items.

With --query the loaded items are filtered by name, ignoring case.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listPages, "pages", "p", 1, "number of pages to load")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "filter items by name")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output items as JSON")
	listCmd.Flags().DurationVar(&listWait, "wait", browseWaitDefault, "how long to wait for each page")
	rootCmd.AddCommand(listCmd)
}

type listItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	if openBrowser == nil {
		return errors.New("catalogue provider not configured")
	}
	if listPages < 1 {
		return fmt.Errorf("%w: --pages must be at least 1", domain.ErrInvalidInput)
	}

	ctx := cmd.Context()
	browser, release, err := openBrowser(ctx)
	if err != nil {
		return fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("closing catalogue: %v", err)
		}
	}()

	unsubscribe := browser.SubscribeList(func([]domain.Item) {})
	defer unsubscribe()

	snap := services.Settle(ctx, browser, listWait)
	// Each advance is retried at most a few times in case it raced a load.
	for attempts := 0; snap.Key.Page < listPages-1 && attempts < listPages*3; attempts++ {
		if snap.LastPage || snap.Status.IsError() {
			break
		}
		browser.AdvancePage()
		snap = services.Settle(ctx, browser, listWait)
	}

	if listQuery != "" {
		browser.ToggleSearchActive()
		browser.UpdateQuery(listQuery)
		snap = services.Settle(ctx, browser, listWait)
	}

	if snap.Status.IsError() {
		return fmt.Errorf("fetch failed: %s", snap.Status.Message)
	}

	if listJSON {
		return outputListJSON(cmd, snap.Items)
	}
	renderSnapshot(cmd.OutOrStdout(), NewStyles(nil), snap)
	return nil
}

func outputListJSON(cmd *cobra.Command, items []domain.Item) error {
	out := make([]listItem, len(items))
	for i, item := range items {
		out[i] = listItem{ID: item.ID, Name: item.Name, URL: item.URL}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
