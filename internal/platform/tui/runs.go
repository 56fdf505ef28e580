package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Run browser layout constants
const (
	maxRuns         = 200 // Max runs to load
	statsPanelWidth = 24
	minWidthForPane = 90 // Minimum width to show the stats panel
)

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Delete, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing the run journal.
type RunsModel struct {
	runs      []storage.RunSummary
	stats     storage.RunStats
	table     table.Model
	help      help.Model
	keys      RunsKeyMap
	width     int
	height    int
	selected  int64 // Run chosen for replay, 0 if none
	status    string
	quitting  bool
	showStats bool

	deleteRun func(id int64) error // Nil disables deletion
}

// NewRunsModel creates a run browser over already loaded runs.
func NewRunsModel(runs []storage.RunSummary, stats storage.RunStats, width, height int) RunsModel {
	h := help.New()
	h.Width = width

	m := RunsModel{
		runs:      runs,
		stats:     stats,
		help:      h,
		keys:      DefaultRunsKeyMap(),
		width:     width,
		height:    height,
		showStats: width >= minWidthForPane,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Pilot", Width: 8},
		{Title: "Best", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Ticks", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(m.height)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// tableHeight leaves room for the title, borders and help line.
func tableHeight(termHeight int) int {
	if h := termHeight - 8; h > 3 {
		return h
	}
	return 3
}

// updateTableRows fills the table from the loaded runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Pilot,
			fmt.Sprintf("%d", r.Best),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Frames),
			r.StartedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.runs) {
				m.selected = m.runs[i].ID
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showStats = m.width >= minWidthForPane
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// deleteSelected removes the run under the cursor from the journal and
// the table.
func (m *RunsModel) deleteSelected() {
	i := m.table.Cursor()
	if m.deleteRun == nil || i < 0 || i >= len(m.runs) {
		return
	}

	id := m.runs[i].ID
	if err := m.deleteRun(id); err != nil {
		m.status = fmt.Sprintf("Delete failed: %v", err)
		return
	}

	m.runs = append(m.runs[:i:i], m.runs[i+1:]...)
	m.stats.Runs--
	m.updateTableRows()
	if i >= len(m.runs) {
		i = len(m.runs) - 1
	}
	if i > 0 {
		m.table.SetCursor(i)
	}
	m.status = fmt.Sprintf("Deleted run #%d", id)
}

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RECORDED RUNS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := boxStyle.Render(m.renderTableContent())
	if m.showStats {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", boxStyle.Width(statsPanelWidth).Render(m.renderStats()))
	}
	b.WriteString(content)

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the aggregate panel.
func (m RunsModel) renderStats() string {
	return fmt.Sprintf("Stats\n%s\nRuns:   %d\nBest:   %d\nAvg:    %.1f\nTicks:  %d",
		strings.Repeat("-", statsPanelWidth-4),
		m.stats.Runs, m.stats.Best, m.stats.AvgBest, m.stats.TotalTicks)
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay with --record to keep one!")
	}
	return m.table.View()
}

// Selected returns the run chosen for replay, or 0.
func (m RunsModel) Selected() int64 {
	return m.selected
}

// BrowseRuns shows the run journal and returns the run the user picked
// for replay, or 0 if they quit.
func BrowseRuns(store *storage.Store, width, height int) (int64, error) {
	runs, err := store.Runs(maxRuns)
	if err != nil {
		return 0, err
	}
	stats, err := store.Stats()
	if err != nil {
		return 0, err
	}

	m := NewRunsModel(runs, stats, width, height)
	m.deleteRun = store.DeleteRun

	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	picked, ok := final.(RunsModel)
	if !ok {
		return 0, nil
	}
	return picked.Selected(), nil
}
