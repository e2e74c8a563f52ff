// Package tui provides the Bubble Tea frontend: the play screen, the mode
// menu, the replay browser and the SSH server that serves them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollInterval is how often the play screen polls the driver. The driver
// decides whether a game tick is due.
const pollInterval = 5 * time.Millisecond

// TickMsg is sent to trigger a driver poll.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
