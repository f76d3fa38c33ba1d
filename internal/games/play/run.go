// Package play holds the run bookkeeping shared by the arcade games: pause,
// scoring events, life loss and the single high-score commit at the end of
// a run.
package play

import (
	"fmt"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// Run wraps core.RunState with the collaborators of one game instance.
type Run struct {
	core.RunState

	gameID  int
	deps    registry.Deps
	newBest bool
	events  []core.Event
}

// NewRun creates the run bookkeeping for gameID.
func NewRun(gameID int, deps registry.Deps) *Run {
	return &Run{gameID: gameID, deps: deps.WithDefaults()}
}

// Begin starts a fresh playing run with the given lives.
func (r *Run) Begin(lives int) {
	r.RunState = core.NewRunState(lives)
	r.newBest = false
	r.events = r.events[:0]
}

// Settings returns the injected preferences.
func (r *Run) Settings() core.SettingsReader {
	return r.deps.Settings
}

// Control applies the pause toggle and reports whether the simulation
// should advance this tick. The tick counter only moves while playing.
func (r *Run) Control(in core.InputFrame) bool {
	if in.Has(core.ActionPause) {
		r.TogglePause()
	}
	if !r.Active() {
		return false
	}
	r.Tick++
	return true
}

// WantsRestart reports whether the player asked for a new run after the
// previous one ended.
func (r *Run) WantsRestart(in core.InputFrame) bool {
	return r.Terminal() && in.Has(core.ActionRestart)
}

// AddScore adds points and emits a score event.
func (r *Run) AddScore(points int) {
	if points == 0 {
		return
	}
	r.Score += points
	r.events = append(r.events, core.Event{Kind: core.EventScore, Points: points})
}

// LoseLife removes a life and ends the run as lost when none remain.
// It returns true when the run ended.
func (r *Run) LoseLife() bool {
	return r.LoseLifeWith(r.Score, true)
}

// LoseLifeWith is LoseLife with the final commit of EndWith. The life lost
// event always precedes the game over event.
func (r *Run) LoseLifeWith(value int, commit bool) bool {
	r.events = append(r.events, core.Event{Kind: core.EventLifeLost})
	if r.RunState.LoseLife() {
		r.EndWith(core.PhaseLost, value, commit)
		return true
	}
	return false
}

// End finishes the run and commits the score. Only the first call has an
// effect.
func (r *Run) End(phase core.Phase) {
	r.EndWith(phase, r.Score, true)
}

// EndWith finishes the run and, when commit is true, records value instead
// of the score. Only the first call has an effect.
func (r *Run) EndWith(phase core.Phase, value int, commit bool) {
	if !r.Finish(phase) {
		return
	}
	kind := core.EventGameOver
	if phase == core.PhaseWon {
		kind = core.EventWin
	}
	r.events = append(r.events, core.Event{Kind: kind})

	if commit && r.deps.Scores.Record(r.gameID, value) {
		r.newBest = true
		r.events = append(r.events, core.Event{Kind: core.EventNewBest, Points: value})
	}
}

// NewBest reports whether the end of this run improved the stored best.
func (r *Run) NewBest() bool {
	return r.newBest
}

// State returns the public game state.
func (r *Run) State() core.GameState {
	return core.StateOf(r.RunState, r.newBest)
}

// Result returns the step result and clears the pending events.
func (r *Run) Result() core.StepResult {
	res := core.StepResult{State: r.State()}
	if len(r.events) > 0 {
		res.Events = append([]core.Event(nil), r.events...)
		r.events = r.events[:0]
	}
	return res
}

// DrawHUD writes the status line and a separator on the top two rows.
func DrawHUD(dst *core.Screen, text string) {
	dst.DrawText(1, 0, text)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// HUDHeight is the number of rows DrawHUD uses.
const HUDHeight = 2

// DrawOverlay draws the pause or end-of-run message for the current phase.
func (r *Run) DrawOverlay(dst *core.Screen, wonText string) {
	switch r.Phase {
	case core.PhasePaused:
		dst.DrawMessage("Paused", "Press P to continue")
	case core.PhaseWon:
		dst.DrawMessage(wonText+r.bestSuffix(), "Press R to play again")
	case core.PhaseLost:
		dst.DrawMessage(fmt.Sprintf("Game Over - Score %d%s", r.Score, r.bestSuffix()), "Press R to restart")
	}
}

func (r *Run) bestSuffix() string {
	if r.newBest {
		return " - New best!"
	}
	return ""
}

// TooSmall draws the resize hint and reports whether the screen is smaller
// than w x h.
func TooSmall(dst *core.Screen, w, h int) bool {
	if dst.Width() >= w && dst.Height() >= h {
		return false
	}
	dst.DrawMessage("Window too small", fmt.Sprintf("Need %dx%d", w, h))
	return true
}
