package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual appearance of the selector.
type Theme struct {
	Pointer    string `mapstructure:"pointer"`
	Marker     string `mapstructure:"marker"`
	SelectedFg string `mapstructure:"selected_fg"`
	MatchFg    string `mapstructure:"match_fg"`
	TextFg     string `mapstructure:"text_fg"`
	MutedFg    string `mapstructure:"muted_fg"`
	Border     string `mapstructure:"border"`
	BorderFg   string `mapstructure:"border_fg"`
	renderer   *lipgloss.Renderer
}

// WithRenderer returns a copy of the theme with the given renderer set.
// The renderer determines which output the styles render to, ensuring colors
// work correctly even when stdout is captured by $(cargo query ...).
func (t Theme) WithRenderer(r *lipgloss.Renderer) Theme {
	t.renderer = r
	return t
}

// newStyle creates a new lipgloss.Style using the theme's renderer if set,
// falling back to the default renderer otherwise.
func (t Theme) newStyle() lipgloss.Style {
	if t.renderer != nil {
		return t.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// DefaultTheme returns an fzf-like theme.
func DefaultTheme() Theme {
	return Theme{
		Pointer:    "▌",
		Marker:     "+",
		SelectedFg: "170",
		MatchFg:    "205",
		TextFg:     "252",
		MutedFg:    "241",
		Border:     "rounded",
		BorderFg:   "240",
	}
}

// Merge fills empty fields of t from fallback.
func (t Theme) Merge(fallback Theme) Theme {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	t.Pointer = pick(t.Pointer, fallback.Pointer)
	t.Marker = pick(t.Marker, fallback.Marker)
	t.SelectedFg = pick(t.SelectedFg, fallback.SelectedFg)
	t.MatchFg = pick(t.MatchFg, fallback.MatchFg)
	t.TextFg = pick(t.TextFg, fallback.TextFg)
	t.MutedFg = pick(t.MutedFg, fallback.MutedFg)
	t.Border = pick(t.Border, fallback.Border)
	t.BorderFg = pick(t.BorderFg, fallback.BorderFg)
	return t
}

// SelectedStyle returns the style for the item under the cursor.
func (t Theme) SelectedStyle() lipgloss.Style {
	return t.newStyle().Foreground(lipgloss.Color(t.SelectedFg)).Bold(true)
}

// NormalStyle returns the style for other items.
func (t Theme) NormalStyle() lipgloss.Style {
	return t.newStyle().Foreground(lipgloss.Color(t.TextFg))
}

// MatchStyle returns the style for characters that matched the filter.
func (t Theme) MatchStyle() lipgloss.Style {
	return t.newStyle().Foreground(lipgloss.Color(t.MatchFg)).Underline(true)
}

// MutedStyle returns the style for secondary text like the counter.
func (t Theme) MutedStyle() lipgloss.Style {
	return t.newStyle().Foreground(lipgloss.Color(t.MutedFg))
}

// PromptStyle returns the style for the input prompt.
func (t Theme) PromptStyle() lipgloss.Style {
	return t.newStyle().Foreground(lipgloss.Color(t.MatchFg))
}

// MarkerStyle returns the style for the multi-select marker.
func (t Theme) MarkerStyle() lipgloss.Style {
	return t.newStyle().Foreground(lipgloss.Color(t.MatchFg)).Bold(true)
}

// BorderStyle returns the lipgloss border style based on the theme's border type.
func (t Theme) BorderStyle() lipgloss.Style {
	return t.newStyle().
		Border(t.borderType()).
		BorderForeground(lipgloss.Color(t.BorderFg))
}

func (t Theme) borderType() lipgloss.Border {
	switch t.Border {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
