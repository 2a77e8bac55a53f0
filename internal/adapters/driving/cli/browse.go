package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
	"github.com/custodia-labs/catalogue-cli/internal/core/services"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

const browseHelp = `Commands:
  next, n          load the next page
  search, s        toggle search mode
  query TEXT, q    filter the loaded items by name
  clear            clear the filter and start again from the first page
  retry, r         retry after an error
  show             print the current page
  help             show this help
  quit, exit       leave
`

const browseWaitDefault = 15 * time.Second

var browseWait time.Duration

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalogue interactively",
	Long: `Start a browsing session reading one command per line.

` + browseHelp + `
Loading the next page is ignored while a page is loading, while a filter is
active and once the end of the catalogue was reached.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().DurationVar(&browseWait, "wait", browseWaitDefault, "how long to wait for a page to load")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if openBrowser == nil {
		return errors.New("catalogue provider not configured")
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

	unsubscribe := browser.SubscribeStatus(func(status domain.FetchStatus) {
		logger.Debug("browse: status %s", status)
	})
	defer unsubscribe()

	session := &browseSession{
		browser: browser,
		out:     cmd.OutOrStdout(),
		styles:  NewStyles(nil),
		wait:    browseWait,
	}
	session.show(ctx)
	return session.run(ctx, cmd.InOrStdin(), isTerminal(cmd.InOrStdin()))
}

type browseSession struct {
	browser driving.CatalogueBrowser
	out     io.Writer
	styles  *Styles
	wait    time.Duration
}

// run reads commands until quit or end of input. The prompt is only printed
// when reading from a terminal.
func (s *browseSession) run(ctx context.Context, in io.Reader, interactive bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(s.out, s.styles.Muted.Render("> "))
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if s.handle(ctx, scanner.Text()) {
			return nil
		}
	}
}

// handle executes one command line and reports whether the session should end.
func (s *browseSession) handle(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch strings.ToLower(name) {
	case "":
		return false
	case "next", "n":
		s.browser.AdvancePage()
	case "search", "s":
		s.browser.ToggleSearchActive()
	case "query", "q":
		if !domain.IsBlank(arg) && !s.browser.Snapshot().SearchActive {
			s.browser.ToggleSearchActive()
		}
		s.browser.UpdateQuery(arg)
	case "clear":
		s.browser.UpdateQuery("")
	case "retry", "r":
		s.browser.Retry()
	case "show":
	case "help", "?":
		fmt.Fprint(s.out, browseHelp)
		return false
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.out, "unknown command %q, type help for a list\n", name)
		return false
	}

	s.show(ctx)
	return false
}

func (s *browseSession) show(ctx context.Context) {
	renderSnapshot(s.out, s.styles, services.Settle(ctx, s.browser, s.wait))
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
