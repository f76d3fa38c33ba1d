// Package invaders implements a Space Invaders style shooter: a marching
// formation that descends one step at every edge, a player cannon on the
// bottom row and bombs dropped by the lowest invader of a column.
package invaders

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/games/play"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/sim"
)

// GameID is the registry id.
const GameID = 4

const (
	kindPlayer sim.Kind = iota + 1
	kindInvader
	kindShot
	kindBomb
)

// Projectile size in cells.
const (
	shotW = 0.5
	shotH = 1.0
)

var policy = sim.Policy(sim.BoundNone, map[sim.Kind]sim.Boundary{
	kindPlayer: sim.BoundClamp,
	kindShot:   sim.BoundRemove,
	kindBomb:   sim.BoundRemove,
})

// Game implements Invaders.
type Game struct {
	run   *play.Run
	rng   *rand.Rand
	world *sim.World

	player   int
	dir      float64 // +1 marching right, -1 left
	marchIn  int     // Ticks until the next formation step
	total    int     // Invaders in a full formation
	wave     int

	cfg        config.InvadersConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	glyphs     core.Glyphs
}

// New creates an Invaders game.
func New(deps registry.Deps) *Game {
	return &Game{run: play.NewRun(GameID, deps)}
}

func init() {
	registry.Register(registry.Info{ID: GameID, Slug: "invaders", Title: "Invaders"},
		func(d registry.Deps) registry.Game { return New(d) })
}

// ID returns the game identifier.
func (g *Game) ID() int { return GameID }

// Slug returns the command-line name.
func (g *Game) Slug() string { return "invaders" }

// Title returns the display name.
func (g *Game) Title() string { return "Invaders" }

// Reset initializes or restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	cfg, err := config.LoadInvaders(rt.ConfigPath)
	if err != nil {
		cfg = config.DefaultInvadersConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, config.ParsePreset(rt.Difficulty))
	g.configure(rt, cfg)
}

func (g *Game) configure(rt core.RuntimeConfig, cfg config.InvadersConfig) {
	g.runtime = rt
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.glyphs = core.GlyphsFor(g.run.Settings())
	g.run.Begin(max(cfg.Gameplay.Lives, 1))

	g.world = sim.NewWorld(float64(max(rt.ScreenW, 20)), float64(max(rt.ScreenH-play.HUDHeight, 10)))
	g.player = g.world.Spawn(sim.Entity{
		Kind:  kindPlayer,
		Shape: sim.ShapeBox,
		Pos:   core.V((g.world.Width-cfg.Player.Width)/2, g.world.Height-1),
		W:     cfg.Player.Width,
		H:     1,
		Color: core.ColorGreen,
	})
	g.wave = 0
	g.spawnFormation()
}

// spawnFormation lays out a full formation centered at the top.
func (g *Game) spawnFormation() {
	f := g.cfg.Formation
	width := float64(f.Cols)*f.Width + float64(f.Cols-1)*f.GapX
	left := max((g.world.Width-width)/2, 0)
	top := min(float64(g.wave)*f.Drop, g.world.Height/3)

	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			g.world.Spawn(sim.Entity{
				Kind:  kindInvader,
				Shape: sim.ShapeBox,
				Pos:   core.V(left+float64(col)*(f.Width+f.GapX), top+float64(row)*(f.Height+f.GapY)),
				W:     f.Width,
				H:     f.Height,
				Tier:  row,
				Color: rowColor(row),
			})
		}
	}
	g.total = f.Rows * f.Cols
	g.dir = 1
	g.wave++
	g.marchIn = g.marchInterval()
}

func rowColor(row int) core.Color {
	switch row % 3 {
	case 0:
		return core.ColorMagenta
	case 1:
		return core.ColorCyan
	}
	return core.ColorYellow
}

// Points returns the score for an invader in row (0 is the top row).
func (g *Game) Points(row int) int {
	return g.cfg.Gameplay.RowPoints << max(g.cfg.Formation.Rows-1-row, 0)
}

// marchInterval shortens with difficulty and as the formation thins out.
func (g *Game) marchInterval() int {
	base := g.difficulty.Interval(g.cfg.Formation.MarchEvery, 2, g.run.Score, g.run.Tick)
	alive := g.world.Count(kindInvader)
	if g.total == 0 || alive == 0 {
		return base
	}
	return max(base*alive/g.total, 1)
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

	g.steer(in)
	g.march()
	g.dropBomb()
	g.world.Advance(sim.DT, policy)

	g.world.Collide(kindShot, kindInvader, g.destroy)
	g.world.Collide(kindBomb, kindPlayer, g.bombed)
	g.world.Compact()

	if g.run.Terminal() {
		return g.run.Result()
	}
	if g.landed() {
		g.run.End(core.PhaseLost)
	} else if g.world.Count(kindInvader) == 0 {
		g.world.Each(kindBomb, func(e *sim.Entity) { e.Alive = false })
		g.world.Compact()
		g.spawnFormation()
	}
	return g.run.Result()
}

// steer moves the cannon while a direction is held and fires one shot at a
// time.
func (g *Game) steer(in core.InputFrame) {
	p := g.world.Get(g.player)
	p.Vel = core.Vec2{}
	if in.Has(core.ActionLeft) {
		p.Vel.X -= g.cfg.Player.Speed
	}
	if in.Has(core.ActionRight) {
		p.Vel.X += g.cfg.Player.Speed
	}
	if in.Has(core.ActionFire) && g.world.Count(kindShot) == 0 {
		g.world.Spawn(sim.Entity{
			Kind:  kindShot,
			Shape: sim.ShapeBox,
			Pos:   core.V(p.Pos.X+p.W/2-shotW/2, p.Pos.Y-shotH),
			Vel:   core.V(0, -g.cfg.Bullets.PlayerSpeed),
			W:     shotW,
			H:     shotH,
			Color: core.ColorWhite,
		})
	}
}

// march moves the formation one step sideways, or down and back when the
// step would cross a side wall.
func (g *Game) march() {
	g.marchIn--
	if g.marchIn > 0 {
		return
	}
	g.marchIn = g.marchInterval()

	left, right := g.world.Width, 0.0
	g.world.Each(kindInvader, func(e *sim.Entity) {
		left = min(left, e.Pos.X)
		right = max(right, e.Pos.X+e.W)
	})
	step := g.dir * g.cfg.Formation.Step
	if right+step > g.world.Width || left+step < 0 {
		g.dir = -g.dir
		g.world.Each(kindInvader, func(e *sim.Entity) { e.Pos.Y += g.cfg.Formation.Drop })
		return
	}
	g.world.Each(kindInvader, func(e *sim.Entity) { e.Pos.X += step })
}

// dropBomb lets the lowest invader of a random column fire.
func (g *Game) dropBomb() {
	if g.world.Count(kindBomb) >= g.cfg.Bullets.MaxEnemy {
		return
	}
	if g.rng.Float64() >= g.cfg.Bullets.FireChance {
		return
	}
	var alive []*sim.Entity
	g.world.Each(kindInvader, func(e *sim.Entity) { alive = append(alive, e) })
	if len(alive) == 0 {
		return
	}
	shooter := alive[g.rng.Intn(len(alive))]
	for _, e := range alive {
		if e.Pos.X == shooter.Pos.X && e.Pos.Y > shooter.Pos.Y {
			shooter = e
		}
	}
	speed := g.difficulty.Speed(g.cfg.Bullets.EnemySpeed, g.run.Score, g.run.Tick)
	g.world.Spawn(sim.Entity{
		Kind:  kindBomb,
		Shape: sim.ShapeBox,
		Pos:   core.V(shooter.Pos.X+shooter.W/2-shotW/2, shooter.Pos.Y+shooter.H),
		Vel:   core.V(0, speed),
		W:     shotW,
		H:     shotH,
		Color: core.ColorRed,
	})
}

func (g *Game) destroy(shot, invader *sim.Entity) {
	shot.Alive = false
	invader.Alive = false
	g.run.AddScore(g.Points(invader.Tier))
}

func (g *Game) bombed(bomb, _ *sim.Entity) {
	bomb.Alive = false
	if g.run.LoseLife() {
		return
	}
	g.world.Each(kindBomb, func(e *sim.Entity) { e.Alive = false })
}

// landed reports whether an invader reached the cannon row.
func (g *Game) landed() bool {
	floor := g.world.Get(g.player).Pos.Y
	hit := false
	g.world.Each(kindInvader, func(e *sim.Entity) {
		if e.Pos.Y+e.H > floor {
			hit = true
		}
	})
	return hit
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	play.DrawHUD(dst, fmt.Sprintf("Invaders  Score: %d  Wave: %d  Lives: %d", g.run.Score, g.wave, g.run.Lives))

	oy := play.HUDHeight
	for _, e := range g.world.Entities {
		if !e.Alive {
			continue
		}
		x, y := int(e.Pos.X), int(e.Pos.Y)+oy
		switch e.Kind {
		case kindInvader:
			for dy := 0; dy < max(int(e.H), 1); dy++ {
				for dx := 0; dx < int(e.W); dx++ {
					dst.SetColored(x+dx, y+dy, g.glyphs.Invader, e.Color)
				}
			}
		case kindPlayer:
			for dx := 0; dx < int(e.W); dx++ {
				dst.SetColored(x+dx, y, g.glyphs.Solid, e.Color)
			}
		case kindShot, kindBomb:
			dst.SetColored(int(e.Pos.X+e.W/2), y, g.glyphs.Bullet, e.Color)
		}
	}
	g.run.DrawOverlay(dst, "You win!")
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.run.State()
}
