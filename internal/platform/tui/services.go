package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/metrics"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/scores"
	"github.com/vovakirdan/mini-arcade/internal/settings"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

// Services bundles the collaborators shared by every screen of a session.
// Only Scores is required; the rest degrade gracefully when nil.
type Services struct {
	Scores   *scores.Store
	Runs     *storage.Store
	Settings *settings.Settings
	Metrics  *metrics.Metrics
	Logger   *log.Logger

	HoldTimeout   time.Duration // Key hold window for terminals without key-up events, 0 for the default
	Deadzone      float64       // Pointer drag deadzone in cells
	ScreenshotDir string
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// Deps returns the game collaborators. Nil handles are left unset so the
// registry defaults apply.
func (s Services) Deps() registry.Deps {
	var d registry.Deps
	if s.Scores != nil {
		d.Scores = s.Scores
	}
	if s.Settings != nil {
		d.Settings = s.Settings
	}
	return d
}

func (s Services) theme() string {
	if s.Settings == nil {
		return settings.ThemeClassic
	}
	return s.Settings.Theme()
}

func (s Services) audio() bool {
	return s.Settings != nil && s.Settings.AudioEnabled()
}

// newMapper creates an input mapper. A zero HoldTimeout uses the default.
func (s Services) newMapper() *core.Mapper {
	hold := s.HoldTimeout
	if hold <= 0 {
		hold = core.DefaultHoldTimeout
	}
	return core.NewMapper(core.DefaultBindings(), hold, s.Deadzone)
}

// best returns the stored best of a game.
func (s Services) best(gameID int) (int, bool) {
	if s.Scores == nil {
		return 0, false
	}
	return s.Scores.Best(gameID)
}

// RecordRun appends a finished run to the history and updates metrics.
func (s Services) RecordRun(info registry.Info, st core.GameState) {
	s.Metrics.RunFinished(info.Slug, st.Phase.String(), st.NewBest)
	logger := s.logger()
	logger.Info("run finished",
		"game", info.Slug,
		"result", st.Phase,
		"score", st.Score,
		"ticks", st.Tick,
		"new_best", st.NewBest,
	)
	if s.Runs == nil {
		return
	}
	if _, err := s.Runs.SaveRun(info.ID, st.Score, st.Phase.String(), st.Tick); err != nil {
		logger.Error("cannot save run", "game", info.Slug, "err", err)
	}
}
