package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/wincnc-tools/cnchist/internal/history"
)

// linesPerItem is the number of terminal lines each session occupies.
const linesPerItem = 2

// renderList renders the left panel: the session list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.filtered) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No sessions")
	}

	var lines []string
	for i, idx := range m.filtered {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatSessionItem(&m.sessions[idx], width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatSessionItem formats one session as two lines:
//
//	line 1: [>] start-stamp  N cmds  span
//	line 2:     relative age, last status (dimmed, errors red)
func formatSessionItem(s *history.Session, width int, selected bool) []string {
	stamp := styleListStamp.Render(history.FormatStamp(s.Begin(), false))

	line1 := fmt.Sprintf("%s  %d cmds  %s",
		stamp, len(s.Records), history.FormatDuration(s.Duration, true))
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	// Truncate before styling so ANSI codes never count against the width.
	prefix := humanize.Time(s.End()) + ", last: "
	status := s.LastStatus()
	max := width - 4 - runewidth.StringWidth(prefix)
	if max < 0 {
		max = 0
	}
	if runewidth.StringWidth(status) > max {
		status = runewidth.Truncate(status, max, "")
	}
	if s.HasError() {
		status = styleListError.Render(status)
	} else {
		status = styleListDim.Render(status)
	}
	line2 := "    " + styleListDim.Render(prefix) + status

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
