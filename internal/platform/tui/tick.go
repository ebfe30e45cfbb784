// Package tui provides the Bubble Tea host for On The Run.
// It runs the tick loop, maps keys to input frames, and saves sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to advance the simulation by one frame.
type TickMsg time.Time

// frameInterval converts a tick rate into the delay between frames.
// Rates below one are treated as one frame per second.
func frameInterval(tickRate int) time.Duration {
	return time.Second / time.Duration(max(tickRate, 1))
}

// tickCmd schedules the next frame.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
