package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wincnc-tools/cnchist/internal/history"
)

// model is the bubbletea model: a filterable session list on the left and a
// record detail viewport on the right.
type model struct {
	sessions []history.Session
	human    bool

	// filtered holds indexes into sessions, newest session first.
	filtered   []int
	cursor     int
	listOffset int

	filterInput textinput.Model
	detail      viewport.Model
	detailIdx   int // sessions index currently rendered in the detail panel

	width    int
	height   int
	ready    bool
	quitting bool
	notice   string
}

func initialModel(sessions []history.Session, human bool) model {
	ti := textinput.New()
	ti.Placeholder = "Filter by file or command..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	m := model{
		sessions:    sessions,
		human:       human,
		filterInput: ti,
		detail:      viewport.New(0, 0),
		detailIdx:   -1,
	}
	m.applyFilter("")
	return m
}

// Run starts the TUI and blocks until the user quits.
func Run(sessions []history.Session, human bool) error {
	p := tea.NewProgram(initialModel(sessions, human), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.detail = viewport.New(m.detailWidth(), m.panelHeight())
		m.detailIdx = -1
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if s := m.selected(); s != nil {
				m.notice = m.copySummary(s)
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				m.refreshDetail()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				m.refreshDetail()
			}
			return m, nil

		case key.Matches(msg, keys.DetailUp):
			m.detail.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.DetailDn):
			m.detail.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.detail.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.detail.LineDown(m.panelHeight())
			return m, nil
		}

		// Remaining keys edit the filter.
		var cmd tea.Cmd
		prev := m.filterInput.Value()
		m.filterInput, cmd = m.filterInput.Update(msg)
		if q := m.filterInput.Value(); q != prev {
			m.applyFilter(q)
			m.refreshDetail()
		}
		return m, cmd

	case tea.MouseMsg:
		if !m.ready || len(m.filtered) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			visibleItems := m.panelHeight() / linesPerItem
			maxOffset := len(m.filtered) - visibleItems
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.filtered) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				m.refreshDetail()
			}
			return m, nil

		case region == regionDetail && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}

		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	detailW := m.detailWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.detail.Width = detailW
	m.detail.Height = panelH
	detailPanel := styleActiveBorder.
		Width(detailW).
		Height(panelH).
		Render(m.detail.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

// selected returns the session under the cursor, nil when the list is empty.
func (m *model) selected() *history.Session {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return &m.sessions[m.filtered[m.cursor]]
}

// applyFilter rebuilds the visible list, newest session first. A session
// matches when any of its records' names contain the query.
func (m *model) applyFilter(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	m.filtered = m.filtered[:0]
	for i := len(m.sessions) - 1; i >= 0; i-- {
		if query == "" || sessionMatches(&m.sessions[i], query) {
			m.filtered = append(m.filtered, i)
		}
	}
	m.cursor = 0
	m.listOffset = 0
	m.notice = ""
}

func sessionMatches(s *history.Session, query string) bool {
	for _, r := range s.Records {
		if strings.Contains(r.Name, query) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(history.FormatStamp(s.Begin(), false)), query)
}

// refreshDetail re-renders the detail panel for the current selection.
func (m *model) refreshDetail() {
	s := m.selected()
	if s == nil {
		m.detail.SetContent("")
		m.detailIdx = -1
		return
	}
	idx := m.filtered[m.cursor]
	if idx == m.detailIdx {
		return
	}
	m.detail.SetContent(renderSessionDetail(s, m.detailWidth(), m.human))
	m.detail.GotoTop()
	m.detailIdx = idx
}

// copySummary puts a one-line session summary on the clipboard and returns
// the status notice to show. Falls back to showing the summary when the
// clipboard is unavailable (headless terminals).
func (m *model) copySummary(s *history.Session) string {
	summary := fmt.Sprintf("%s  %d commands  span %s  machine %s",
		history.FormatStamp(s.Begin(), m.human),
		len(s.Records),
		history.FormatDuration(s.Duration, true),
		history.FormatDuration(s.RunTime, true),
	)
	if err := clipboard.WriteAll(summary); err != nil {
		return summary
	}
	return "copied: " + summary
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) detailWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionDetail
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		itemIndex := m.listOffset + (relY / linesPerItem)
		return regionList, itemIndex
	}

	if x > listBoxRight+1 {
		return regionDetail, -1
	}

	return regionNone, -1
}

func (m model) statusBar() string {
	if m.notice != "" {
		return styleStatusBar.Render(m.notice)
	}
	parts := []string{
		fmt.Sprintf("%d of %d sessions", len(m.filtered), len(m.sessions)),
		"click/up/dn navigate",
		"scroll/C-u/C-d detail",
		"Enter copy summary",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
