package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	ConfigPath string // Custom game config file, empty for the search path
	Difficulty string // Difficulty preset name, empty for the configured one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TicksPerSecond returns the tick rate, falling back to 60.
func (c RuntimeConfig) TicksPerSecond() int {
	if c.TickRate <= 0 {
		return 60
	}
	return c.TickRate
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score   int
	Lives   int
	Phase   Phase
	Tick    uint64
	NewBest bool // The terminal commit improved the stored best
}

// GameOver reports whether the run reached won or lost.
func (s GameState) GameOver() bool {
	return s.Phase.Terminal()
}

// Paused reports whether the run is paused.
func (s GameState) Paused() bool {
	return s.Phase == PhasePaused
}

// StateOf builds a GameState from a run.
func StateOf(r RunState, newBest bool) GameState {
	return GameState{
		Score:   r.Score,
		Lives:   r.Lives,
		Phase:   r.Phase,
		Tick:    r.Tick,
		NewBest: newBest,
	}
}

// EventKind identifies what happened during a tick.
type EventKind int

const (
	EventScore EventKind = iota
	EventLifeLost
	EventGameOver
	EventWin
	EventNewBest
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventScore:
		return "score"
	case EventLifeLost:
		return "life_lost"
	case EventGameOver:
		return "game_over"
	case EventWin:
		return "win"
	case EventNewBest:
		return "new_best"
	default:
		return "unknown"
	}
}

// Event is a scoring or life-loss notification produced by a step.
type Event struct {
	Kind   EventKind
	Points int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of kind k occurred.
func (r StepResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// ScoreRecorder commits a finished run's score. Record returns true when the
// stored best improved.
type ScoreRecorder interface {
	Record(gameID int, value int) bool
}

// SettingsReader exposes the read-only preferences consumed by games.
type SettingsReader interface {
	Theme() string
	AudioEnabled() bool
}

// NopRecorder discards every score.
type NopRecorder struct{}

// Record implements ScoreRecorder.
func (NopRecorder) Record(int, int) bool { return false }

// StaticSettings is a fixed SettingsReader, handy for tests and headless runs.
type StaticSettings struct {
	ThemeName string
	Audio     bool
}

// Theme implements SettingsReader.
func (s StaticSettings) Theme() string {
	if s.ThemeName == "" {
		return "classic"
	}
	return s.ThemeName
}

// AudioEnabled implements SettingsReader.
func (s StaticSettings) AudioEnabled() bool { return s.Audio }
