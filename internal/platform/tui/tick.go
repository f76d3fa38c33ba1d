// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// game model whose loop scheduled it; ticks of a finished model are dropped.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var tickGens atomic.Uint64

// nextGen returns a fresh tick generation.
func nextGen() uint64 {
	return tickGens.Add(1)
}

// tickCmd schedules the next tick at the given rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
