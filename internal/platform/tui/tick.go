// Package tui provides the Bubble Tea integration for the memory game.
// It handles the terminal UI loop, input mapping, and session flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-memory/internal/game"
)

// TickMsg is sent periodically to refresh the board and clock display.
type TickMsg time.Time

// uiTickInterval is the UI refresh rate. The game clock runs on its own
// driver inside the engine; this only repaints.
const uiTickInterval = 250 * time.Millisecond

// tickCmd returns a Bubble Tea command that sends the next TickMsg.
func tickCmd() tea.Cmd {
	return tea.Tick(uiTickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// EventMsg wraps a game engine event for the Bubble Tea loop.
type EventMsg struct {
	Event game.Event
}

// waitForEvent returns a command that blocks until the engine emits the
// next event. Re-issue it after handling each EventMsg.
func waitForEvent(ch <-chan game.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return EventMsg{Event: ev}
	}
}
