package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

// Keys handled by the platform rather than the games.
const (
	keyScreenshot = "ctrl+s"
	keyScoreboard = "tab"
	keyTheme      = "t"
	keyAudio      = "m"
)

// feedKey passes a key press to the mapper and returns the intent it
// triggered.
func feedKey(m *core.Mapper, msg tea.KeyMsg, now time.Time) core.Action {
	return m.Press(msg.String(), now)
}

// feedMouse turns mouse events into pointer drags on the mapper. Cell
// coordinates are used directly as pointer coordinates.
func feedMouse(m *core.Mapper, msg tea.MouseMsg) {
	x, y := float64(msg.X), float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.PointerUp()
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionTheme
	MenuActionAudio
)

// menuAction translates a key to a menu action using the game bindings.
func menuAction(m *core.Mapper, msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case keyScoreboard:
		return MenuActionScoreboard
	case keyTheme:
		return MenuActionTheme
	case keyAudio:
		return MenuActionAudio
	}
	switch m.Lookup(msg.String()) {
	case core.ActionUp:
		return MenuActionUp
	case core.ActionDown:
		return MenuActionDown
	case core.ActionConfirm, core.ActionFire:
		return MenuActionSelect
	case core.ActionBack:
		return MenuActionBack
	case core.ActionQuit:
		return MenuActionQuit
	}
	return MenuActionNone
}
