// ABOUTME: Bubbletea model for the A/B comparison TUI
// ABOUTME: Polls the transport snapshot and maps keys to transport mutations
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abaudio/abplay-go/internal/audio"
	"github.com/abaudio/abplay-go/internal/transport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pollInterval is how often the control loop re-snapshots the transport.
const pollInterval = 50 * time.Millisecond

const progressWidth = 40

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	playStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("84"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model holds the TUI state. The displayed active/paused/pos values are a
// consistent transport snapshot taken once per tick; the transport itself
// is never read field by field from the view.
type Model struct {
	state *transport.State
	pair  *audio.BufferPair

	active int
	paused bool
	pos    int

	width    int
	height   int
	quitting bool
	quitChan chan struct{}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// NewModel creates the TUI model. Playback starts paused, on buffer A.
func NewModel(state *transport.State, pair *audio.BufferPair, quitChan chan struct{}) Model {
	m := Model{
		state:    state,
		pair:     pair,
		quitChan: quitChan,
	}
	m.active, m.paused, m.pos = state.Snapshot()
	return m
}

// Init starts the poll ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		if m.state.QuitRequested() {
			return m.quit()
		}
		m.active, m.paused, m.pos = m.state.Snapshot()
		return m, tick()
	}

	return m, nil
}

// handleKey maps one keystroke to at most one transport mutation.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.state.RequestQuit()
		return m.quit()
	case " ":
		m.state.TogglePause()
	case "tab":
		m.state.Toggle()
	case "left":
		m.state.SeekBy(-1)
	case "right":
		m.state.SeekBy(1)
	case "h", "H":
		m.state.SeekBy(-5)
	case "l", "L":
		m.state.SeekBy(5)
	}

	return m, nil
}

// quit signals main and stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	select {
	case m.quitChan <- struct{}{}:
	default:
	}
	return m, tea.Quit
}

// View renders the status panel.
func (m Model) View() string {
	if m.quitting {
		return "Stopping...\n"
	}

	label := "A"
	name := m.pair.NameA
	if m.active == 1 {
		label = "B"
		name = m.pair.NameB
	}

	status := playStyle.Render("PLAYING")
	if m.paused {
		status = pausedStyle.Render("PAUSED")
	}

	current := float64(m.pos) / float64(m.pair.SampleRate)

	var b strings.Builder
	b.WriteString(titleStyle.Render("A/B Playback") + "\n\n")
	b.WriteString(fmt.Sprintf("  Active:   %s %s\n", activeStyle.Render("["+label+"]"), name))
	b.WriteString(fmt.Sprintf("  Status:   %s\n", status))
	b.WriteString(fmt.Sprintf("  Position: %6.1fs / %.1fs\n\n", current, m.pair.Duration()))
	b.WriteString(fmt.Sprintf("  [%s]\n\n", renderProgress(m.pos, m.pair.Frames, progressWidth)))
	b.WriteString(helpStyle.Render("  space: play/pause   tab: toggle A/B\n"))
	b.WriteString(helpStyle.Render("  ←/→: seek ±1s       h/l: seek ±5s\n"))
	b.WriteString(helpStyle.Render("  q: quit\n"))

	return b.String()
}

// renderProgress draws a filled bar for pos out of total frames.
func renderProgress(pos, total, width int) string {
	filled := 0
	if total > 0 {
		filled = pos * width / total
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
