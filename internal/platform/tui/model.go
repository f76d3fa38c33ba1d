package tui

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// statusTTL is how long a platform message stays on the bottom row.
const statusTTL = 2 * time.Second

// GameModel is the Bubble Tea model for one running game.
type GameModel struct {
	game   registry.Game
	info   registry.Info
	svc    Services
	screen *core.Screen
	mapper *core.Mapper
	config core.RuntimeConfig
	state  core.GameState
	gen    uint64

	standalone bool // Back quits the program instead of returning to a menu
	recorded   bool // Whether the finished run was saved
	bell       bool
	status     string
	statusAt   time.Time
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A zero seed is replaced by the
// current time.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	info, _ := registry.Lookup(game.ID())
	return GameModel{
		game:   game,
		info:   info,
		svc:    svc,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		mapper: svc.newMapper(),
		config: cfg,
		gen:    nextGen(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TicksPerSecond(), m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		feedMouse(m.mapper, msg)
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.At)
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyScreenshot {
		m.saveScreenshot()
		return m, nil
	}

	switch feedKey(m.mapper, msg, time.Now()) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.state.GameOver() || m.state.Paused() {
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
			m.backToMenu = true
		}
	}
	return m, nil
}

// handleResize resizes the screen. A run that has not stepped yet restarts
// to fit the new size. A run in progress keeps its world and is paused.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	switch {
	case m.state.GameOver() || m.state.Paused():
	case m.state.Tick == 0:
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.mapper.Reset()
	default:
		m.mapper.Reset()
		m.mapper.Inject(core.ActionPause)
	}
	return m, nil
}

func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	frame := m.mapper.Frame(now)
	start := time.Now()
	result := m.game.Step(frame)
	m.svc.Metrics.ObserveTick(time.Since(start))

	wasOver := m.state.GameOver()
	m.state = result.State
	if wasOver && !m.state.GameOver() {
		m.recorded = false
	}
	if m.state.GameOver() && !m.recorded {
		m.svc.RecordRun(m.info, m.state)
		m.recorded = true
	}

	m.bell = m.svc.audio() && (result.Has(core.EventScore) || result.Has(core.EventLifeLost) || result.Has(core.EventNewBest))
	if m.status != "" && now.Sub(m.statusAt) > statusTTL {
		m.status = ""
	}
	return m, tickCmd(m.config.TicksPerSecond(), m.gen)
}

func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.svc.ScreenshotDir
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	path, err := SaveScreenshot(m.screen, dir, m.info.Slug, time.Now())
	if err != nil {
		m.svc.logger().Error("screenshot failed", "err", err)
		m.setStatus("Screenshot failed")
		return
	}
	m.svc.logger().Info("screenshot saved", "path", path)
	m.setStatus("Saved " + filepath.Base(path))
}

func (m *GameModel) setStatus(text string) {
	m.status = text
	m.statusAt = time.Now()
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawText(1, m.screen.Height()-1, m.status)
	}
	out := RenderScreen(m.screen, PaletteFor(m.svc.theme()))
	if m.bell {
		out = "\a" + out
	}
	return out
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame plays a single game in the terminal until the player quits.
func RunGame(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, svc, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
