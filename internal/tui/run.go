package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evgfitil/cargo-query/internal/picker"
)

// Selector is an inline picker.Backend that draws below the prompt instead of
// taking the whole screen, sized by the request's height hint.
type Selector struct {
	theme Theme
}

// NewSelector creates a Selector with the given theme.
func NewSelector(theme Theme) *Selector {
	return &Selector{theme: theme.Merge(DefaultTheme())}
}

// openTTY opens /dev/tty for writing and creates a lipgloss renderer from it.
// Falls back to os.Stderr so stdout stays clean for the selection.
// The caller must close the returned file when tty != os.Stderr.
func openTTY(theme Theme) (*os.File, Theme) {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr, theme.WithRenderer(lipgloss.NewRenderer(os.Stderr))
	}
	return tty, theme.WithRenderer(lipgloss.NewRenderer(tty))
}

// Select implements picker.Backend.
func (s *Selector) Select(req picker.Request) ([]int, error) {
	if req.SelectOne && len(req.Items) == 1 {
		return []int{0}, nil
	}

	tty, theme := openTTY(s.theme)
	if tty != os.Stderr {
		defer tty.Close() //nolint:errcheck
	}

	m := newModel(req, theme)
	p := tea.NewProgram(m, tea.WithOutput(tty), tea.WithInputTTY())

	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("selector error: %w", err)
	}

	model, ok := result.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type: %T", result)
	}
	return model.Selection()
}
