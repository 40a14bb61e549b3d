package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/evgfitil/cargo-query/internal/picker"
)

// match is one visible row: the candidate index and the byte offsets that
// matched the filter.
type match struct {
	index   int
	matched []int
}

// Model is the selector state machine.
type Model struct {
	theme    Theme
	input    textarea.Model
	items    []string
	filtered []match
	cursor   int
	offset   int
	multi    bool
	marked   []int
	height   picker.Height
	width    int
	rows     int
	accepted bool
	quitting bool
}

func newTextArea(prompt string, promptStyle lipgloss.Style) textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 256
	ta.Prompt = prompt
	ta.Placeholder = "filter..."
	ta.MaxHeight = 1
	ta.SetHeight(1)
	ta.FocusedStyle.Prompt = promptStyle
	ta.FocusedStyle.Text = lipgloss.NewStyle()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys())
	ta.KeyMap.LineNext = key.NewBinding(key.WithKeys())
	ta.KeyMap.LinePrevious = key.NewBinding(key.WithKeys())
	ta.Focus()
	return ta
}

func newModel(req picker.Request, theme Theme) Model {
	m := Model{
		theme:  theme,
		input:  newTextArea(req.Prompt, theme.PromptStyle()),
		items:  req.Items,
		multi:  req.Multi,
		height: req.Height,
		rows:   picker.MinHeight,
	}
	return m.refilter()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.rows = m.height.Rows(msg.Height, len(m.items))
		m.input.SetWidth(max(msg.Width-2, 1))
		return m.scroll(), nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			return m.handleEnter()

		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
			return m.scroll(), nil

		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m.scroll(), nil

		case tea.KeyTab:
			if m.multi {
				return m.toggleMark(), nil
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m = m.refilter()
	}
	return m, cmd
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.multi && len(m.marked) > 0 {
		m.accepted = true
		m.quitting = true
		return m, tea.Quit
	}
	if len(m.filtered) == 0 {
		return m, nil
	}
	m.marked = []int{m.filtered[m.cursor].index}
	m.accepted = true
	m.quitting = true
	return m, tea.Quit
}

// toggleMark marks or unmarks the item under the cursor and moves down.
func (m Model) toggleMark() Model {
	if len(m.filtered) == 0 {
		return m
	}
	idx := m.filtered[m.cursor].index
	if pos := slices.Index(m.marked, idx); pos >= 0 {
		m.marked = slices.Delete(slices.Clone(m.marked), pos, pos+1)
	} else {
		m.marked = append(slices.Clone(m.marked), idx)
	}
	if m.cursor < len(m.filtered)-1 {
		m.cursor++
	}
	return m.scroll()
}

// refilter ranks items against the current input. An empty filter keeps
// discovery order.
func (m Model) refilter() Model {
	pattern := m.input.Value()
	if pattern == "" {
		m.filtered = make([]match, len(m.items))
		for i := range m.items {
			m.filtered[i] = match{index: i}
		}
	} else {
		found := fuzzy.Find(pattern, m.items)
		m.filtered = make([]match, len(found))
		for i, f := range found {
			m.filtered[i] = match{index: f.Index, matched: f.MatchedIndexes}
		}
	}
	m.cursor = 0
	m.offset = 0
	return m
}

// visibleItemCount returns how many candidate rows fit between the prompt and the counter.
func (m Model) visibleItemCount() int {
	return max(m.rows-picker.ReservedLines, 1)
}

func (m Model) scroll() Model {
	visible := m.visibleItemCount()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	return m
}

// Selection returns the chosen indexes in the order they were marked, or
// picker.ErrAborted if the user left without choosing.
func (m Model) Selection() ([]int, error) {
	if !m.accepted || len(m.marked) == 0 {
		return nil, picker.ErrAborted
	}
	return slices.Clone(m.marked), nil
}
