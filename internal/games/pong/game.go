// Package pong implements Pong against a CPU opponent.
// The player controls the left paddle, the CPU the right one.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/games/play"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/sim"
)

// GameID is the high-score id of Pong.
const GameID = 2

// Points awarded to the player.
const (
	ReturnPoints = 10
	GoalPoints   = 100
)

const (
	kindBall sim.Kind = iota + 1
	kindPaddle
)

// Game implements the Pong game logic. Lives are the goals the CPU may
// still score before the match is lost.
type Game struct {
	run   *play.Run
	rng   *rand.Rand
	world *sim.World

	ball, player, cpu int // entity ids

	goals      int
	serveDelay int
	serveVel   core.Vec2
	cpuSkill   float64

	cfg        config.PongConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	glyphs     core.Glyphs
}

// New creates a new Pong game instance.
func New(deps registry.Deps) *Game {
	return &Game{run: play.NewRun(GameID, deps)}
}

func init() {
	registry.Register(registry.Info{ID: GameID, Slug: "pong", Title: "Pong"},
		func(d registry.Deps) registry.Game { return New(d) })
}

// ID returns the unique identifier for this game.
func (g *Game) ID() int { return GameID }

// Slug returns the command-line name.
func (g *Game) Slug() string { return "pong" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Pong" }

// Reset initializes or restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	cfg, err := config.LoadPong(rt.ConfigPath)
	if err != nil {
		cfg = config.DefaultPongConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, config.ParsePreset(rt.Difficulty))
	g.configure(rt, cfg)
}

func (g *Game) configure(rt core.RuntimeConfig, cfg config.PongConfig) {
	g.runtime = rt
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.glyphs = core.GlyphsFor(g.run.Settings())
	g.run.Begin(max(cfg.Gameplay.WinScore, 1))
	g.goals = 0
	g.cpuSkill = cfg.CPU.MinSkill

	w := float64(max(rt.ScreenW, 20))
	h := float64(max(rt.ScreenH-play.HUDHeight, 8))
	g.world = sim.NewWorld(w, h)

	ph := float64(core.Clamp(int(h)/5, 3, max(cfg.Paddles.Height, 3)))
	pw := float64(max(cfg.Paddles.Width, 1))
	off := float64(cfg.Paddles.Offset)
	g.player = g.world.Spawn(sim.Entity{Kind: kindPaddle, Shape: sim.ShapeBox, Pos: core.V(off, (h-ph)/2), W: pw, H: ph})
	g.cpu = g.world.Spawn(sim.Entity{Kind: kindPaddle, Shape: sim.ShapeBox, Pos: core.V(w-off-pw, (h-ph)/2), W: pw, H: ph})
	g.ball = g.world.Spawn(sim.Entity{Kind: kindBall, Pos: core.V(w/2, h/2), Radius: 0.5})

	g.serve(-1)
}

// serve recenters the ball and sends it toward dir (-1 left, 1 right)
// after the serve delay.
func (g *Game) serve(dir float64) {
	b := g.world.Get(g.ball)
	b.Pos = core.V(g.world.Width/2, g.world.Height/2)

	speed := g.difficulty.Speed(g.cfg.Physics.BallSpeed, g.run.Score, g.run.Tick)
	angle := (g.rng.Float64() - 0.5) * 0.6
	g.serveVel = core.V(dir*speed, speed*angle)
	g.serveDelay = g.cfg.Gameplay.ServeDelay
	b.Vel = core.Vec2{}
	if g.serveDelay <= 0 {
		b.Vel = g.serveVel
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.run.WantsRestart(in) {
		rt := g.runtime
		rt.Seed = g.rng.Int63()
		g.configure(rt, g.cfg)
		return g.run.Result()
	}
	if !g.run.Control(in) {
		return g.run.Result()
	}

	player := g.world.Get(g.player)
	switch in.Heading() {
	case core.ActionUp:
		player.Vel = core.V(0, -g.cfg.Physics.PaddleSpeed)
	case core.ActionDown:
		player.Vel = core.V(0, g.cfg.Physics.PaddleSpeed)
	default:
		player.Vel = core.Vec2{}
	}
	g.steerCPU()

	if g.serveDelay > 0 {
		g.serveDelay--
		if g.serveDelay == 0 {
			g.world.Get(g.ball).Vel = g.serveVel
		}
	}
	g.world.Advance(sim.DT, func(e *sim.Entity) sim.Boundary {
		if e.Kind == kindPaddle {
			return sim.BoundClamp
		}
		return sim.BoundNone
	})

	g.world.Reflect(g.world.Get(g.ball), sim.WallTop|sim.WallBottom)
	g.world.Collide(kindBall, kindPaddle, g.returnBall)
	g.checkGoal()

	if g.run.Tick%600 == 0 && g.cpuSkill < g.cfg.CPU.MaxSkill {
		g.cpuSkill += 0.02
	}
	return g.run.Result()
}

// steerCPU moves the CPU paddle toward the ball while it approaches.
func (g *Game) steerCPU() {
	cpu := g.world.Get(g.cpu)
	ball := g.world.Get(g.ball)
	cpu.Vel = core.Vec2{}
	if ball.Vel.X <= 0 {
		return
	}
	diff := ball.Pos.Y - (cpu.Pos.Y + cpu.H/2)
	speed := g.cfg.Physics.PaddleSpeed * g.cpuSkill
	if math.Abs(diff) > speed {
		cpu.Vel = core.V(0, math.Copysign(speed, diff))
	}
}

// returnBall bounces the ball off a paddle it is moving into, adding spin
// from the hit position.
func (g *Game) returnBall(ball, paddle *sim.Entity) {
	towardPlayer := paddle.ID == g.player && ball.Vel.X < 0
	towardCPU := paddle.ID == g.cpu && ball.Vel.X > 0
	if !towardPlayer && !towardCPU {
		return
	}

	ball.Vel.X = -ball.Vel.X * 1.02
	if towardPlayer {
		ball.Pos.X = paddle.Pos.X + paddle.W + ball.Radius
		g.run.AddScore(ReturnPoints)
	} else {
		ball.Pos.X = paddle.Pos.X - ball.Radius
	}
	hit := (ball.Pos.Y - paddle.Pos.Y) / paddle.H
	ball.Vel.Y += (hit - 0.5) * g.cfg.Physics.SpinFactor

	// Capped below the paddle depth so the ball cannot skip through it.
	limit := math.Min(g.cfg.Physics.MaxBallSpeed, paddle.W+ball.Radius)
	ball.Vel.X = core.ClampF(ball.Vel.X, -limit, limit)
	ball.Vel.Y = core.ClampF(ball.Vel.Y, -limit/2, limit/2)
}

func (g *Game) checkGoal() {
	ball := g.world.Get(g.ball)
	switch {
	case ball.Pos.X < 0:
		if !g.run.LoseLife() {
			g.serve(-1)
		}
	case ball.Pos.X > g.world.Width:
		g.goals++
		g.run.AddScore(GoalPoints)
		if g.goals >= g.cfg.Gameplay.WinScore {
			g.run.End(core.PhaseWon)
			return
		}
		g.serve(1)
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	cpuGoals := g.cfg.Gameplay.WinScore - g.run.Lives
	play.DrawHUD(dst, fmt.Sprintf("Pong  Score: %d  You %d - %d CPU", g.run.Score, g.goals, cpuGoals))

	oy := play.HUDHeight
	centerX := dst.Width() / 2
	for y := oy; y < dst.Height(); y += 2 {
		dst.SetColored(centerX, y, g.glyphs.Net, core.ColorGray)
	}
	for _, e := range g.world.Entities {
		switch e.Kind {
		case kindPaddle:
			for i := 0; i < int(e.H); i++ {
				dst.SetColored(int(e.Pos.X), int(e.Pos.Y)+oy+i, g.glyphs.Solid, core.ColorWhite)
			}
		case kindBall:
			if g.serveDelay == 0 || (g.serveDelay/10)%2 == 0 {
				dst.SetColored(int(e.Pos.X), int(e.Pos.Y)+oy, g.glyphs.Ball, core.ColorYellow)
			}
		}
	}

	g.run.DrawOverlay(dst, fmt.Sprintf("You win %d - %d", g.goals, cpuGoals))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.run.State()
}
