package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// statusTTL is how long a status line stays visible.
const statusTTL = 2 * time.Second

// Options configures the terminal frontend.
type Options struct {
	Width         int    // Initial terminal width, before the first resize
	Height        int    // Initial terminal height
	ScreenshotDir string // Defaults to ~/.flappy/screenshots
	Logger        *log.Logger

	copyToClipboard func(string) error
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	driver   *sim.Driver
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	opts     Options
	logger   *log.Logger
	termH    int
	last     time.Time // Time of the previous tick message
	status   string
	statusAt time.Time
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given driver.
func NewModel(driver *sim.Driver, opts Options) Model {
	if opts.Width <= 0 || opts.Height <= 0 {
		cfg := core.DefaultConfig()
		opts.Width, opts.Height = cfg.ScreenW, cfg.ScreenH
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join(os.Getenv("HOME"), ".flappy", "screenshots")
	}
	if opts.copyToClipboard == nil {
		opts.copyToClipboard = clipboard.WriteAll
	}

	h := help.New()
	h.Width = opts.Width

	return Model{
		driver: driver,
		screen: core.NewScreen(opts.Width, opts.Height-1),
		termH:  opts.Height,
		keys:   DefaultKeyMap(),
		help:   h,
		opts:   opts,
		logger: opts.Logger,
	}
}

// layout sizes the game screen to leave room for the footer.
func (m *Model) layout(width int) {
	footer := 1
	if m.help.ShowAll {
		for _, col := range m.keys.FullHelp() {
			footer = core.Max(footer, len(col))
		}
	}
	m.screen.Resize(width, core.Max(m.termH-footer, 1))
	m.help.Width = width
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.driver.Interval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyScreen()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout(m.screen.Width())
		return m, nil
	}

	m.driver.Send(m.keys.Command(msg))
	return m, nil
}

// handleResize processes window resize events. The world keeps its
// logical size; only the cell scale changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.termH = msg.Height
	m.layout(msg.Width)
	return m, nil
}

// handleTick runs as many fixed ticks as the wall clock covers.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.last.IsZero() {
		m.driver.Step()
	} else {
		m.driver.Advance(now.Sub(m.last))
	}
	m.last = now

	if m.status != "" && now.Sub(m.statusAt) > statusTTL {
		m.status = ""
	}

	return m, tickCmd(m.driver.Interval())
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusAt = time.Now()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	flappy.Render(m.driver.Snapshot(), m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.logger.Error("screenshot", "error", err)
		m.setStatus("screenshot failed: %v", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("flappy_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("screenshot", "error", err)
		m.setStatus("screenshot failed: %v", err)
		return
	}

	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("saved %s", path)
}

// copyScreen puts the current screen as plain text on the system clipboard.
func (m *Model) copyScreen() {
	flappy.Render(m.driver.Snapshot(), m.screen)

	if err := m.opts.copyToClipboard(m.screen.String()); err != nil {
		m.logger.Warn("clipboard unavailable", "error", err)
		m.setStatus("clipboard unavailable")
		return
	}
	m.setStatus("screen copied")
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	flappy.Render(m.driver.Snapshot(), m.screen)

	footer := helpStyle.Render(m.help.View(m.keys))
	if m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(driver *sim.Driver, opts Options) error {
	model := NewModel(driver, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
