package snake

import "github.com/vovakirdan/mini-arcade/internal/core"

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      Mode
	Phase     core.Phase
	Score     int
	SnakeLen  int
	Head      Point
	Vel       Point
	Food      Point
	MoveEvery int
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.run.Tick,
		Mode:      g.mode,
		Phase:     g.run.Phase,
		Score:     g.run.Score,
		SnakeLen:  len(g.snake),
		Head:      g.snake[0],
		Vel:       g.vel,
		Food:      g.food,
		MoveEvery: g.moveEvery,
	}
}
