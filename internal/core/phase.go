package core

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is returned when a phase change is not allowed.
var ErrIllegalTransition = errors.New("core: illegal phase transition")

// Phase is the discrete state of a game run.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseWon
	PhaseLost
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// CanTransition reports whether moving from p to next is allowed.
func (p Phase) CanTransition(next Phase) bool {
	switch p {
	case PhaseMenu:
		return next == PhasePlaying
	case PhasePlaying:
		return next == PhasePaused || next == PhaseWon || next == PhaseLost || next == PhaseMenu
	case PhasePaused:
		return next == PhasePlaying || next == PhaseMenu
	case PhaseWon, PhaseLost:
		return next == PhaseMenu || next == PhasePlaying
	}
	return false
}

// RunState is the per-run state shared by all arcade games.
// It is created on game start, mutated every tick and reset on restart.
type RunState struct {
	Score int
	Lives int
	Phase Phase
	Tick  uint64
}

// NewRunState returns a run that is already playing with the given lives.
func NewRunState(lives int) RunState {
	return RunState{Lives: lives, Phase: PhasePlaying}
}

// Transition moves the run to next, or returns ErrIllegalTransition and
// leaves the phase unchanged.
func (r *RunState) Transition(next Phase) error {
	if !r.Phase.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.Phase, next)
	}
	r.Phase = next
	return nil
}

// TogglePause flips between playing and paused. Other phases are unaffected.
func (r *RunState) TogglePause() {
	switch r.Phase {
	case PhasePlaying:
		r.Phase = PhasePaused
	case PhasePaused:
		r.Phase = PhasePlaying
	}
}

// Finish moves a playing run to a terminal phase. It returns true only for
// the call that performed the transition, so callers can commit scores once.
func (r *RunState) Finish(terminal Phase) bool {
	if !terminal.Terminal() || r.Phase.Terminal() {
		return false
	}
	return r.Transition(terminal) == nil
}

// Terminal reports whether the run has ended.
func (r RunState) Terminal() bool {
	return r.Phase.Terminal()
}

// Active reports whether the simulation should advance this tick.
func (r RunState) Active() bool {
	return r.Phase == PhasePlaying
}

// LoseLife decrements lives and reports whether none remain.
func (r *RunState) LoseLife() bool {
	if r.Lives > 0 {
		r.Lives--
	}
	return r.Lives == 0
}
