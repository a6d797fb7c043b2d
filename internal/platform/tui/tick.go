// Package tui runs games in the terminal with Bubble Tea: the fixed-rate tick
// loop, key mapping, screen rendering, the variant menu, the replay browser
// and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// NewSeed returns a time-based randomizer seed.
func NewSeed() uint32 {
	n := time.Now().UnixNano()
	return uint32(n) ^ uint32(n>>32)
}
