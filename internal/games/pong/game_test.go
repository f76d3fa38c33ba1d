package pong

import (
	"math"
	"testing"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/scores"
	"github.com/vovakirdan/mini-arcade/internal/sim"
)

func newTestGame(t *testing.T, store *scores.Store) *Game {
	t.Helper()
	deps := registry.Deps{}
	if store != nil {
		deps.Scores = store
	}
	g := New(deps)
	cfg := config.DefaultPongConfig()
	cfg.Gameplay.ServeDelay = 0
	cfg.Gameplay.WinScore = 2
	cfg.Difficulty.Enabled = false
	g.configure(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 26}, cfg)
	return g
}

func TestBallBouncesOffTopWall(t *testing.T) {
	g := newTestGame(t, nil)
	ball := g.world.Get(g.ball)
	ball.Pos = core.V(40, 0.5)
	ball.Vel = core.V(-0.5, -0.3)

	g.Step(core.NewInputFrame())

	ball = g.world.Get(g.ball)
	if ball.Vel.Y != 0.3 {
		t.Errorf("Vel.Y = %v, expected 0.3", ball.Vel.Y)
	}
	if ball.Vel.X != -0.5 {
		t.Errorf("Vel.X = %v, expected unchanged -0.5", ball.Vel.X)
	}
	if ball.Pos.Y < ball.Radius {
		t.Errorf("ball left the field: %v", ball.Pos)
	}
}

func TestLeftWallReflection(t *testing.T) {
	ball := &sim.Entity{Pos: core.V(0, 5), Vel: core.V(-1.25, 0.4)}
	hitX, hitY := sim.ReflectWalls(ball, 80, 24, sim.AllWalls)
	if !hitX || hitY {
		t.Fatalf("ReflectWalls() = (%v, %v)", hitX, hitY)
	}
	if ball.Vel != core.V(1.25, 0.4) {
		t.Errorf("Vel = %v, expected (1.25, 0.4)", ball.Vel)
	}
}

func TestPaddleReturnsBall(t *testing.T) {
	g := newTestGame(t, nil)
	paddle := g.world.Get(g.player)
	ball := g.world.Get(g.ball)
	ball.Pos = core.V(paddle.Pos.X+paddle.W+0.7, paddle.Pos.Y+paddle.H/2)
	ball.Vel = core.V(-0.5, 0)

	res := g.Step(core.NewInputFrame())

	ball = g.world.Get(g.ball)
	if ball.Vel.X <= 0 {
		t.Fatalf("Vel.X = %v, expected the ball to head right", ball.Vel.X)
	}
	if math.Abs(ball.Vel.X-0.51) > 1e-9 {
		t.Errorf("Vel.X = %v, expected 0.51 after the speed-up", ball.Vel.X)
	}
	if !res.Has(core.EventScore) || res.State.Score != ReturnPoints {
		t.Errorf("result = %+v", res)
	}
}

func TestPaddleClampsToField(t *testing.T) {
	g := newTestGame(t, nil)
	for i := 0; i < 100; i++ {
		g.Step(core.FrameOf(core.ActionUp))
		if g.run.Terminal() {
			break
		}
	}
	if p := g.world.Get(g.player); p.Pos.Y != 0 {
		t.Errorf("paddle Y = %v, expected pinned at 0", p.Pos.Y)
	}
}

func TestCPUGoalsLoseMatch(t *testing.T) {
	store := scores.New(&scores.MemoryBlob{})
	g := newTestGame(t, store)
	g.run.Score = 40

	var res core.StepResult
	for goal := 0; goal < 2; goal++ {
		ball := g.world.Get(g.ball)
		ball.Pos = core.V(0.2, 1)
		ball.Vel = core.V(-0.5, 0)
		g.world.Get(g.player).Pos.Y = 15
		res = g.Step(core.NewInputFrame())
	}

	if res.State.Phase != core.PhaseLost {
		t.Fatalf("Phase = %v, expected lost", res.State.Phase)
	}
	if best, _ := store.Best(GameID); best != 40 {
		t.Errorf("Best() = %d, expected 40", best)
	}
}

func TestPlayerGoalsWinMatch(t *testing.T) {
	g := newTestGame(t, nil)

	var res core.StepResult
	for goal := 0; goal < 2; goal++ {
		ball := g.world.Get(g.ball)
		ball.Pos = core.V(g.world.Width-0.2, 1)
		ball.Vel = core.V(0.5, 0)
		g.world.Get(g.cpu).Pos.Y = 15
		res = g.Step(core.NewInputFrame())
	}

	if res.State.Phase != core.PhaseWon {
		t.Fatalf("Phase = %v, expected won", res.State.Phase)
	}
	if res.State.Score != 2*GoalPoints {
		t.Errorf("Score = %d, expected %d", res.State.Score, 2*GoalPoints)
	}
}

func TestServeDelayHoldsBall(t *testing.T) {
	g := New(registry.Deps{})
	cfg := config.DefaultPongConfig()
	cfg.Gameplay.ServeDelay = 3
	g.configure(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 26}, cfg)
	start := g.world.Get(g.ball).Pos

	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())
	if g.world.Get(g.ball).Pos != start {
		t.Error("ball moved during the serve delay")
	}
	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())
	if g.world.Get(g.ball).Pos == start {
		t.Error("ball should be served after the delay")
	}
}
