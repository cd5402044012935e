// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the comparison player
package ui

import (
	"github.com/abaudio/abplay-go/internal/audio"
	"github.com/abaudio/abplay-go/internal/transport"
	tea "github.com/charmbracelet/bubbletea"
)

// Run builds the TUI program. The returned channel receives one value
// when the user quits; the caller owns running and joining the program.
func Run(state *transport.State, pair *audio.BufferPair) (*tea.Program, chan struct{}) {
	quitChan := make(chan struct{}, 1)
	p := tea.NewProgram(NewModel(state, pair, quitChan), tea.WithAltScreen())
	return p, quitChan
}
