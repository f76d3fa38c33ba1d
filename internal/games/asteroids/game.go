// Package asteroids implements Asteroids and its time attack variant.
// Ship and rocks wrap around the field, bullets leave it or expire.
package asteroids

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/games/play"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/scores"
	"github.com/vovakirdan/mini-arcade/internal/sim"
)

// Game ids.
const (
	ClassicID    = 3
	TimeAttackID = 5
)

// Mode selects the rules.
type Mode string

const (
	ModeClassic    Mode = "classic"     // endless waves, score points
	ModeTimeAttack Mode = "time-attack" // clear one field, score seconds
)

const (
	kindShip sim.Kind = iota + 1
	kindRock
	kindBullet
)

// Minimum distance between a fresh rock and the ship.
const safeRadius = 8.0

var policy = sim.Policy(sim.BoundWrap, map[sim.Kind]sim.Boundary{kindBullet: sim.BoundRemove})

// Game implements Asteroids.
type Game struct {
	mode  Mode
	run   *play.Run
	rng   *rand.Rand
	world *sim.World

	ship         int
	invulnerable int
	wave         int

	cfg        config.AsteroidsConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	glyphs     core.Glyphs
}

// New creates a classic Asteroids game.
func New(deps registry.Deps) *Game {
	return &Game{mode: ModeClassic, run: play.NewRun(ClassicID, deps)}
}

// NewTimeAttack creates the time attack variant.
func NewTimeAttack(deps registry.Deps) *Game {
	return &Game{mode: ModeTimeAttack, run: play.NewRun(TimeAttackID, deps)}
}

func init() {
	registry.Register(registry.Info{ID: ClassicID, Slug: "asteroids", Title: "Asteroids"},
		func(d registry.Deps) registry.Game { return New(d) })
	registry.Register(registry.Info{ID: TimeAttackID, Slug: "asteroids-time", Title: "Asteroids (Time Attack)", Order: scores.LowerIsBetter},
		func(d registry.Deps) registry.Game { return NewTimeAttack(d) })
}

// ID returns the game identifier.
func (g *Game) ID() int {
	if g.mode == ModeTimeAttack {
		return TimeAttackID
	}
	return ClassicID
}

// Slug returns the command-line name.
func (g *Game) Slug() string {
	if g.mode == ModeTimeAttack {
		return "asteroids-time"
	}
	return "asteroids"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeTimeAttack {
		return "Asteroids (Time Attack)"
	}
	return "Asteroids"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	cfg, err := config.LoadAsteroids(rt.ConfigPath)
	if err != nil {
		cfg = config.DefaultAsteroidsConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, config.ParsePreset(rt.Difficulty))
	g.configure(rt, cfg)
}

func (g *Game) configure(rt core.RuntimeConfig, cfg config.AsteroidsConfig) {
	if len(cfg.Rocks.Radii) == 0 {
		cfg.Rocks.Radii = config.DefaultAsteroidsConfig().Rocks.Radii
	}
	g.runtime = rt
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.glyphs = core.GlyphsFor(g.run.Settings())
	g.run.Begin(max(cfg.Gameplay.Lives, 1))

	g.world = sim.NewWorld(float64(max(rt.ScreenW, 20)), float64(max(rt.ScreenH-play.HUDHeight, 10)))
	g.ship = g.world.Spawn(sim.Entity{
		Kind:     kindShip,
		Pos:      core.V(g.world.Width/2, g.world.Height/2),
		Radius:   cfg.Ship.Radius,
		Rotation: -math.Pi / 2,
		Color:    core.ColorCyan,
	})
	g.invulnerable = cfg.Gameplay.Invulnerable
	g.wave = 0

	count := cfg.Rocks.InitialCount
	if g.mode == ModeTimeAttack {
		count = cfg.Gameplay.TimeAttack
	}
	g.spawnWave(count)
}

// spawnWave places large rocks away from the ship.
func (g *Game) spawnWave(count int) {
	g.wave++
	ship := g.world.Get(g.ship).Pos
	tier := len(g.cfg.Rocks.Radii) - 1
	speed := g.difficulty.Speed(g.cfg.Rocks.Speed, g.run.Score, g.run.Tick)

	for i := 0; i < count; i++ {
		var pos core.Vec2
		for attempt := 0; attempt < 20; attempt++ {
			pos = core.V(g.rng.Float64()*g.world.Width, g.rng.Float64()*g.world.Height)
			if pos.Dist(ship) >= safeRadius {
				break
			}
		}
		g.spawnRock(pos, tier, speed)
	}
}

func (g *Game) spawnRock(pos core.Vec2, tier int, speed float64) {
	g.world.Spawn(sim.Entity{
		Kind:   kindRock,
		Pos:    pos,
		Vel:    core.FromAngle(g.rng.Float64()*2*math.Pi, speed),
		Radius: g.cfg.Rocks.Radii[tier],
		Tier:   tier,
		Color:  core.ColorGray,
	})
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

	g.pilot(in)
	g.world.Advance(sim.DT, policy)

	g.world.Collide(kindBullet, kindRock, g.shatter)
	if g.invulnerable > 0 {
		g.invulnerable--
	} else {
		g.world.Collide(kindShip, kindRock, g.crash)
	}
	g.world.Compact()

	if g.mode == ModeTimeAttack && !g.run.Terminal() {
		g.run.Score = g.Elapsed()
	}
	if !g.run.Terminal() && g.world.Count(kindRock) == 0 {
		g.cleared()
	}
	return g.run.Result()
}

// pilot applies rotation, thrust, drag and firing to the ship.
func (g *Game) pilot(in core.InputFrame) {
	ship := g.world.Get(g.ship)
	if in.Has(core.ActionLeft) {
		ship.Rotation -= g.cfg.Ship.TurnRate
	}
	if in.Has(core.ActionRight) {
		ship.Rotation += g.cfg.Ship.TurnRate
	}
	if in.Has(core.ActionUp) {
		ship.Vel = ship.Vel.Add(core.FromAngle(ship.Rotation, g.cfg.Ship.Thrust))
	}
	ship.Vel = ship.Vel.Scale(g.cfg.Ship.Drag)
	if speed := ship.Vel.Len(); speed > g.cfg.Ship.MaxSpeed {
		ship.Vel = ship.Vel.Scale(g.cfg.Ship.MaxSpeed / speed)
	}

	if in.Has(core.ActionFire) && g.world.Count(kindBullet) < g.cfg.Bullets.MaxAlive {
		dir := core.FromAngle(ship.Rotation, 1)
		g.world.Spawn(sim.Entity{
			Kind:  kindBullet,
			Pos:   ship.Pos.Add(dir.Scale(ship.Radius)),
			Vel:   ship.Vel.Add(dir.Scale(g.cfg.Bullets.Speed)),
			TTL:   g.cfg.Bullets.TTL,
			Color: core.ColorYellow,
		})
	}
}

// shatter destroys a rock hit by a bullet and splits it into smaller ones.
func (g *Game) shatter(bullet, rock *sim.Entity) {
	bullet.Alive = false
	rock.Alive = false
	if g.mode == ModeClassic && rock.Tier < len(g.cfg.Rocks.Points) {
		g.run.AddScore(g.cfg.Rocks.Points[rock.Tier])
	}
	if rock.Tier == 0 {
		return
	}
	speed := rock.Vel.Len() * 1.3
	if speed == 0 {
		speed = g.cfg.Rocks.Speed
	}
	for i := 0; i < g.cfg.Rocks.Split; i++ {
		g.spawnRock(rock.Pos, rock.Tier-1, speed)
	}
}

// crash handles the ship running into a rock.
func (g *Game) crash(ship, rock *sim.Entity) {
	rock.Alive = false
	// Only a cleared field counts in time attack, so a lost run commits nothing.
	if g.run.LoseLifeWith(g.run.Score, g.mode != ModeTimeAttack) {
		return
	}
	ship.Pos = core.V(g.world.Width/2, g.world.Height/2)
	ship.Vel = core.Vec2{}
	ship.Rotation = -math.Pi / 2
	g.invulnerable = g.cfg.Gameplay.Invulnerable
}

// cleared handles an empty field.
func (g *Game) cleared() {
	if g.mode == ModeTimeAttack {
		g.run.EndWith(core.PhaseWon, g.Elapsed(), true)
		return
	}
	next := g.difficulty.Count(g.cfg.Rocks.InitialCount+g.wave, g.run.Score, g.run.Tick)
	g.spawnWave(next)
}

// Elapsed returns the whole seconds played in this run.
func (g *Game) Elapsed() int {
	return int(g.run.Tick) / g.runtime.TicksPerSecond()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	lives := fmt.Sprintf("Lives: %d", g.run.Lives)
	if g.mode == ModeTimeAttack {
		play.DrawHUD(dst, fmt.Sprintf("%s  Time: %ds  Rocks: %d  %s", g.Title(), g.Elapsed(), g.world.Count(kindRock), lives))
	} else {
		play.DrawHUD(dst, fmt.Sprintf("%s  Score: %d  Wave: %d  %s", g.Title(), g.run.Score, g.wave, lives))
	}

	oy := play.HUDHeight
	for _, e := range g.world.Entities {
		if !e.Alive {
			continue
		}
		x, y := int(e.Pos.X), int(e.Pos.Y)+oy
		switch e.Kind {
		case kindRock:
			r := int(math.Round(e.Radius))
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					if dx*dx+dy*dy <= r*r {
						dst.SetColored(x+dx, y+dy, g.glyphs.Rock, e.Color)
					}
				}
			}
		case kindBullet:
			dst.SetColored(x, y, g.glyphs.Bullet, e.Color)
		case kindShip:
			if g.invulnerable == 0 || (g.invulnerable/8)%2 == 0 {
				dst.SetColored(x, y, g.glyphs.Arrows[heading(e.Rotation)], e.Color)
			}
		}
	}

	won := "Field cleared!"
	if g.mode == ModeTimeAttack {
		won = fmt.Sprintf("Cleared in %ds", g.run.Score)
	}
	g.run.DrawOverlay(dst, won)
}

// heading buckets a rotation into right, down, left, up.
func heading(rot float64) int {
	a := math.Mod(rot, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return int(math.Round(a/(math.Pi/2))) % 4
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.run.State()
}
