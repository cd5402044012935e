// ABOUTME: Tests for the TUI model
// ABOUTME: Covers key-to-mutation mapping, tick snapshots and quit handling
package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/abaudio/abplay-go/internal/audio"
	"github.com/abaudio/abplay-go/internal/transport"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel() (Model, *transport.State) {
	pair := &audio.BufferPair{
		A: make([]float64, 48000), B: make([]float64, 48000),
		Frames:     48000,
		Channels:   1,
		SampleRate: 48000,
		NameA:      "original.wav",
		NameB:      "filtered.wav",
	}
	state := transport.New(pair.Frames, pair.SampleRate)
	return NewModel(state, pair, make(chan struct{}, 1)), state
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	m, state := newTestModel()

	m.Update(key(" "))
	if _, paused, _ := state.Snapshot(); paused {
		t.Error("expected space to unpause")
	}

	m.Update(key(" "))
	if _, paused, _ := state.Snapshot(); !paused {
		t.Error("expected second space to pause again")
	}
}

func TestTabTogglesActiveKeepsPosition(t *testing.T) {
	m, state := newTestModel()
	state.SeekBy(1)
	_, _, before := state.Snapshot()

	m.Update(key("tab"))

	active, _, pos := state.Snapshot()
	if active != 1 {
		t.Errorf("expected active 1 after tab, got %d", active)
	}
	if pos != before {
		t.Errorf("tab moved position from %d to %d", before, pos)
	}
}

func TestArrowKeysSeekOneSecond(t *testing.T) {
	m, state := newTestModel()

	m.Update(key("right"))
	if _, _, pos := state.Snapshot(); pos != 47999 {
		t.Errorf("expected right to seek forward 1s (clamped to 47999), got %d", pos)
	}

	m.Update(key("left"))
	if _, _, pos := state.Snapshot(); pos != 0 {
		t.Errorf("expected left to seek back to 0, got %d", pos)
	}

	m.Update(key("left"))
	if _, _, pos := state.Snapshot(); pos != 0 {
		t.Errorf("expected left at start to clamp to 0, got %d", pos)
	}
}

func TestHLSeekFiveSeconds(t *testing.T) {
	m, state := newTestModel()

	m.Update(key("l"))
	if _, _, pos := state.Snapshot(); pos != 47999 {
		t.Errorf("expected l to clamp to 47999, got %d", pos)
	}

	m.Update(key("h"))
	if _, _, pos := state.Snapshot(); pos != 0 {
		t.Errorf("expected h to clamp back to 0, got %d", pos)
	}
}

func TestQuitKey(t *testing.T) {
	m, state := newTestModel()

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !state.QuitRequested() {
		t.Error("expected q to request quit on the transport")
	}
	select {
	case <-m.quitChan:
	default:
		t.Error("expected quit signal on the quit channel")
	}
}

func TestTickRefreshesSnapshot(t *testing.T) {
	m, state := newTestModel()
	state.Toggle()
	state.SeekBy(1)

	updated, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected tick to schedule the next tick")
	}

	got := updated.(Model)
	if got.active != 1 {
		t.Errorf("expected snapshot active 1, got %d", got.active)
	}
	if got.pos != 47999 {
		t.Errorf("expected snapshot position 47999, got %d", got.pos)
	}
}

func TestTickObservesQuit(t *testing.T) {
	m, state := newTestModel()
	state.RequestQuit()

	updated, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
	if !updated.(Model).quitting {
		t.Error("expected model to be quitting after observing quit")
	}
}

func TestViewShowsActiveAndStatus(t *testing.T) {
	m, state := newTestModel()

	view := m.View()
	if !strings.Contains(view, "original.wav") {
		t.Error("expected view to show file A name")
	}
	if !strings.Contains(view, "PAUSED") {
		t.Error("expected view to show PAUSED initially")
	}

	state.Toggle()
	state.SetPaused(false)
	updated, _ := m.Update(tickMsg(time.Now()))

	view = updated.(Model).View()
	if !strings.Contains(view, "filtered.wav") {
		t.Error("expected view to show file B name after toggle")
	}
	if !strings.Contains(view, "PLAYING") {
		t.Error("expected view to show PLAYING")
	}
}

func TestProgressBar(t *testing.T) {
	bar := renderProgress(0, 100, 10)
	if bar != strings.Repeat("░", 10) {
		t.Errorf("expected empty bar, got %q", bar)
	}

	bar = renderProgress(50, 100, 10)
	if bar != strings.Repeat("█", 5)+strings.Repeat("░", 5) {
		t.Errorf("expected half-filled bar, got %q", bar)
	}

	bar = renderProgress(100, 100, 10)
	if bar != strings.Repeat("█", 10) {
		t.Errorf("expected full bar, got %q", bar)
	}
}
