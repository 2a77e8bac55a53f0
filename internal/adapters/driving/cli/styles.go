package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

// Theme defines the colour palette for command output.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains the lipgloss styles used by the commands.
type Styles struct {
	Title   lipgloss.Style
	Query   lipgloss.Style
	Index   lipgloss.Style
	Muted   lipgloss.Style
	Loading lipgloss.Style
	Idle    lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Query:   lipgloss.NewStyle().Foreground(theme.Secondary),
		Index:   lipgloss.NewStyle().Foreground(theme.Muted).Width(5).Align(lipgloss.Right),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Loading: lipgloss.NewStyle().Foreground(theme.Warning),
		Idle:    lipgloss.NewStyle().Foreground(theme.Success),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
	}
}

// Status renders a fetch status.
func (s *Styles) Status(status domain.FetchStatus) string {
	switch status.State {
	case domain.StateLoading:
		return s.Loading.Render(status.String())
	case domain.StateError:
		return s.Error.Render(status.String())
	default:
		return s.Idle.Render(status.String())
	}
}

// renderSnapshot writes a header line followed by the numbered items.
func renderSnapshot(w io.Writer, st *Styles, snap domain.Snapshot) {
	header := []string{
		st.Title.Render(fmt.Sprintf("Page %d", snap.Key.Page+1)),
		st.Status(snap.Status),
	}
	if snap.SearchActive {
		header = append(header, st.Query.Render(fmt.Sprintf("search %q", snap.Key.Query)))
	}
	header = append(header, st.Muted.Render(fmt.Sprintf("%d items", len(snap.Items))))
	fmt.Fprintln(w, strings.Join(header, "  "))

	for i, item := range snap.Items {
		fmt.Fprintf(w, "%s  %s\n", st.Index.Render(fmt.Sprintf("%d.", i+1)), item.Name)
	}
	if snap.LastPage {
		fmt.Fprintln(w, st.Muted.Render("(end of catalogue)"))
	}
}
