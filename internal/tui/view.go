package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content strings.Builder
	content.WriteString(m.input.View())
	content.WriteString("\n")

	end := min(m.offset+m.visibleItemCount(), len(m.filtered))

	pointerWidth := lipgloss.Width(m.theme.Pointer)
	padding := strings.Repeat(" ", pointerWidth)

	for i := m.offset; i < end; i++ {
		row := m.filtered[i]

		pointer := padding
		if i == m.cursor {
			pointer = m.theme.Pointer
		}

		marker := " "
		if m.multi && slices.Contains(m.marked, row.index) {
			marker = m.theme.MarkerStyle().Render(m.theme.Marker)
		}

		content.WriteString(pointer + marker + " " + m.renderItem(row, i == m.cursor))
		content.WriteString("\n")
	}

	counter := fmt.Sprintf("%d/%d", len(m.filtered), len(m.items))
	if m.multi && len(m.marked) > 0 {
		counter += fmt.Sprintf(" (%d)", len(m.marked))
	}
	content.WriteString(m.theme.MutedStyle().Render(counter))

	borderStyle := m.theme.BorderStyle()
	if m.width > 0 {
		borderStyle = borderStyle.Width(m.width - 2)
	}
	return borderStyle.Render(content.String()) + "\n"
}

// renderItem highlights the characters that matched the filter.
func (m Model) renderItem(row match, current bool) string {
	base := m.theme.NormalStyle()
	if current {
		base = m.theme.SelectedStyle()
	}

	text := m.items[row.index]
	if len(row.matched) == 0 {
		return base.Render(text)
	}

	hl := m.theme.MatchStyle()
	var b strings.Builder
	for offset, r := range text {
		if slices.Contains(row.matched, offset) {
			b.WriteString(hl.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
