package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/scores"
	"github.com/vovakirdan/mini-arcade/internal/settings"
)

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []registry.Info
	cursor         int
	width          int
	height         int
	svc            Services
	config         core.RuntimeConfig
	mapper         *core.Mapper
	quitting       bool
	selected       *registry.Info // Set when user selects a game
	openScoreboard bool           // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(svc Services, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:  registry.List(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		svc:    svc,
		config: cfg,
		mapper: svc.newMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch menuAction(m.mapper, msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionTheme:
		if m.svc.Settings != nil {
			next := nextTheme(m.svc.Settings.Theme())
			if err := m.svc.Settings.SetTheme(next); err != nil {
				m.svc.logger().Warn("cannot change theme", "theme", next, "err", err)
			}
		}

	case MenuActionAudio:
		if m.svc.Settings != nil {
			m.svc.Settings.SetAudioEnabled(!m.svc.Settings.AudioEnabled())
		}
	}
	return m, nil
}

func nextTheme(current string) string {
	i := slices.Index(settings.Themes, current)
	return settings.Themes[(i+1)%len(settings.Themes)]
}

// FormatScore renders a score in the unit of its game.
func FormatScore(order scores.Order, v int) string {
	if order == scores.LowerIsBetter {
		return fmt.Sprintf("%ds", v)
	}
	return fmt.Sprintf("%d", v)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  A R C A D E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		best := "-"
		if v, ok := m.svc.best(item.ID); ok {
			best = FormatScore(item.Order, v)
		}
		line := fmt.Sprintf("%s%-26s best %6s", cursor, item.Title, best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	audio := "off"
	if m.svc.audio() {
		audio = "on"
	}
	b.WriteString("\n")
	b.WriteString(centerText(dim.Render(fmt.Sprintf("Theme: %s  |  Sound: %s", m.svc.theme(), audio)), m.width))
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  T: Theme  |  M: Sound  |  Q: Quit"
	b.WriteString(centerText(dim.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected game, or nil if none selected.
func (m MenuModel) Selected() *registry.Info {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
