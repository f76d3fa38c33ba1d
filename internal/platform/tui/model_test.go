package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mini-arcade/internal/core"
	_ "github.com/vovakirdan/mini-arcade/internal/games/snake"
	"github.com/vovakirdan/mini-arcade/internal/scores"
	"github.com/vovakirdan/mini-arcade/internal/settings"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

// stubGame ends as lost after endAfter playing steps.
type stubGame struct {
	endAfter int
	steps    int
	resets   int
	run      core.RunState
}

func (g *stubGame) ID() int       { return 990 }
func (g *stubGame) Slug() string  { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.run = core.NewRunState(1)
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.run.TogglePause()
	}
	var events []core.Event
	if g.run.Active() {
		g.steps++
		g.run.Tick++
		if g.steps == 1 {
			g.run.Score += 5
			events = append(events, core.Event{Kind: core.EventScore, Points: 5})
		}
		if g.steps >= g.endAfter {
			g.run.Finish(core.PhaseLost)
		}
	}
	return core.StepResult{State: g.State(), Events: events}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return core.StateOf(g.run, false) }

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testServices(t *testing.T) Services {
	t.Helper()
	runs, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { runs.Close() })
	return Services{
		Scores:   scores.New(&scores.MemoryBlob{}),
		Runs:     runs,
		Settings: settings.New(runs, nil),
		Logger:   log.New(io.Discard),
	}
}

func startGame(t *testing.T, g *stubGame, svc Services) GameModel {
	t.Helper()
	m := NewGameModel(g, svc, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, Seed: 1})
	m.Init()
	return m
}

func tick(t *testing.T, m GameModel, at time.Time) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg{At: at, Gen: m.gen})
	return next.(GameModel)
}

func TestTickStepsGameAndSavesRunOnce(t *testing.T) {
	svc := testServices(t)
	g := &stubGame{endAfter: 3}
	m := startGame(t, g, svc)

	now := time.Now()
	for i := 0; i < 6; i++ {
		m = tick(t, m, now.Add(time.Duration(i)*time.Millisecond))
	}

	if g.steps != 3 {
		t.Errorf("steps = %d, expected 3", g.steps)
	}
	if !m.State().GameOver() {
		t.Fatal("game not over")
	}
	runs, err := svc.Runs.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved runs = %d, expected 1", len(runs))
	}
	if runs[0].GameID != 990 || runs[0].Score != 5 || runs[0].Phase != "lost" {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestStaleTickIgnored(t *testing.T) {
	g := &stubGame{endAfter: 100}
	m := startGame(t, g, testServices(t))

	next, cmd := m.Update(TickMsg{At: time.Now(), Gen: m.gen + 1000})
	if cmd != nil {
		t.Error("stale tick scheduled another tick")
	}
	if next.(GameModel).State().Tick != 0 || g.steps != 0 {
		t.Error("stale tick stepped the game")
	}
}

func TestQuitKey(t *testing.T) {
	m := startGame(t, &stubGame{endAfter: 100}, testServices(t))
	next, cmd := m.Update(keyPress("q"))
	if !next.(GameModel).IsQuitting() {
		t.Error("q did not quit")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestBackOnlyWhenPausedOrOver(t *testing.T) {
	g := &stubGame{endAfter: 100}
	m := startGame(t, g, testServices(t))

	next, _ := m.Update(keyPress("esc"))
	m = next.(GameModel)
	if m.BackToMenu() {
		t.Fatal("back accepted while playing")
	}

	next, _ = m.Update(keyPress("p"))
	m = tick(t, next.(GameModel), time.Now())
	if !m.State().Paused() {
		t.Fatalf("Phase = %v, expected paused", m.State().Phase)
	}

	next, _ = m.Update(keyPress("b"))
	if !next.(GameModel).BackToMenu() {
		t.Error("back ignored while paused")
	}
}

func TestResizeBeforeFirstStepRestarts(t *testing.T) {
	g := &stubGame{endAfter: 100}
	m := startGame(t, g, testServices(t))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(GameModel)
	if g.resets != 2 {
		t.Errorf("resets = %d, expected 2", g.resets)
	}
	if m.config.ScreenW != 60 || m.config.ScreenH != 20 {
		t.Errorf("config size = %dx%d, expected 60x20", m.config.ScreenW, m.config.ScreenH)
	}
}

func TestResizeDuringRunPausesInsteadOfRestarting(t *testing.T) {
	g := &stubGame{endAfter: 100}
	m := startGame(t, g, testServices(t))
	now := time.Now()
	m = tick(t, m, now)
	m = tick(t, m, now.Add(time.Millisecond))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = tick(t, next.(GameModel), now.Add(2*time.Millisecond))

	if g.resets != 1 {
		t.Fatalf("resets = %d, run was restarted by resize", g.resets)
	}
	if !m.State().Paused() {
		t.Errorf("Phase = %v, expected paused", m.State().Phase)
	}
	if m.State().Score != 5 || g.steps != 2 {
		t.Errorf("score = %d steps = %d, expected the run to survive", m.State().Score, g.steps)
	}

	// A second resize while paused must not unpause.
	next, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	m = tick(t, next.(GameModel), now.Add(3*time.Millisecond))
	if !m.State().Paused() || g.resets != 1 {
		t.Errorf("Phase = %v resets = %d after resize while paused", m.State().Phase, g.resets)
	}
}

func TestBellOnScoreWhenAudioEnabled(t *testing.T) {
	svc := testServices(t)
	m := startGame(t, &stubGame{endAfter: 100}, svc)

	m = tick(t, m, time.Now())
	if !strings.HasPrefix(m.View(), "\a") {
		t.Error("no bell on score event")
	}
	m = tick(t, m, time.Now())
	if strings.HasPrefix(m.View(), "\a") {
		t.Error("bell repeated without event")
	}

	svc.Settings.SetAudioEnabled(false)
	m = startGame(t, &stubGame{endAfter: 100}, svc)
	m = tick(t, m, time.Now())
	if strings.HasPrefix(m.View(), "\a") {
		t.Error("bell rang with audio disabled")
	}
}

func TestMenuActionMapping(t *testing.T) {
	mapper := core.NewMapper(nil, 0, 0)
	tests := []struct {
		key  string
		want MenuAction
	}{
		{"w", MenuActionUp},
		{"j", MenuActionDown},
		{"enter", MenuActionSelect},
		{"esc", MenuActionBack},
		{"q", MenuActionQuit},
		{"ctrl+c", MenuActionQuit},
		{"tab", MenuActionScoreboard},
		{"t", MenuActionTheme},
		{"m", MenuActionAudio},
		{"x", MenuActionNone},
	}
	for _, tt := range tests {
		if got := menuAction(mapper, keyPress(tt.key)); got != tt.want {
			t.Errorf("menuAction(%q) = %v, expected %v", tt.key, got, tt.want)
		}
	}
}

func TestRenderScreenMonoIsPlain(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hi")
	s.SetColored(0, 1, '#', core.ColorRed)

	got := RenderScreen(s, PaletteFor(settings.ThemeMono))
	if got != s.String() {
		t.Errorf("mono render = %q, expected %q", got, s.String())
	}
}

func TestPaletteFallback(t *testing.T) {
	if len(PaletteFor("nope")) != len(PaletteFor(settings.ThemeClassic)) {
		t.Error("unknown theme did not fall back to classic")
	}
}

func TestMenuThemeCycles(t *testing.T) {
	svc := testServices(t)
	m := NewMenuModel(svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	next, _ := m.Update(keyPress("t"))
	if got := svc.Settings.Theme(); got != settings.ThemeMono {
		t.Errorf("theme = %q, expected mono", got)
	}
	next, _ = next.(MenuModel).Update(keyPress("m"))
	if svc.Settings.AudioEnabled() {
		t.Error("audio still enabled after toggle")
	}
	if !strings.Contains(next.(MenuModel).View(), "Sound: off") {
		t.Error("menu does not show sound state")
	}
}

func TestSessionFlow(t *testing.T) {
	svc := testServices(t)
	m := NewSessionModel(svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "tester")

	next, _ := m.Update(keyPress("enter"))
	m = next.(SessionModel)
	if m.Screen() != "game" {
		t.Fatalf("screen = %s, expected game", m.Screen())
	}
	if m.gameModel.info.Slug != "snake" {
		t.Errorf("started %s, expected snake", m.gameModel.info.Slug)
	}

	next, _ = m.Update(keyPress("p"))
	m = next.(SessionModel)
	next, _ = m.Update(TickMsg{At: time.Now(), Gen: m.gameModel.gen})
	m = next.(SessionModel)
	next, _ = m.Update(keyPress("esc"))
	m = next.(SessionModel)
	if m.Screen() != "menu" {
		t.Fatalf("screen = %s, expected menu", m.Screen())
	}

	next, _ = m.Update(keyPress("tab"))
	m = next.(SessionModel)
	if m.Screen() != "scores" {
		t.Fatalf("screen = %s, expected scores", m.Screen())
	}
	next, _ = m.Update(keyPress("esc"))
	if next.(SessionModel).Screen() != "menu" {
		t.Error("back from scoreboard did not return to menu")
	}
}
