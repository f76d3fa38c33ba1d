package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/games/play"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// Game ids.
const (
	ClassicID = 1
	EndlessID = 6
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic" // walled arena
	ModeEndless Mode = "endless" // edges wrap around
)

// Point is a cell of the arena grid.
type Point struct {
	X, Y int
}

// Add returns p moved by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Unit directions. Screen y grows downward.
var (
	Up    = Point{X: 0, Y: -1}
	Down  = Point{X: 0, Y: 1}
	Left  = Point{X: -1, Y: 0}
	Right = Point{X: 1, Y: 0}
)

func directionOf(a core.Action) (Point, bool) {
	switch a {
	case core.ActionUp:
		return Up, true
	case core.ActionDown:
		return Down, true
	case core.ActionLeft:
		return Left, true
	case core.ActionRight:
		return Right, true
	}
	return Point{}, false
}

// Game implements Snake. The snake's velocity is a unit grid direction and
// it moves one cell every moveEvery ticks.
type Game struct {
	mode Mode
	run  *play.Run
	rng  *rand.Rand

	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	moveEvery  int
	moveTicker int

	snake []Point // Head at index 0
	vel   Point
	next  Point // Buffered direction for the next move
	grow  int   // Segments still to add
	food  Point

	width, height int
	glyphs        core.Glyphs
	runtime       core.RuntimeConfig
}

// New creates a classic Snake game.
func New(deps registry.Deps) *Game {
	return &Game{mode: ModeClassic, run: play.NewRun(ClassicID, deps)}
}

// NewEndless creates an endless Snake game with wrapping edges.
func NewEndless(deps registry.Deps) *Game {
	return &Game{mode: ModeEndless, run: play.NewRun(EndlessID, deps)}
}

func init() {
	registry.Register(registry.Info{ID: ClassicID, Slug: "snake", Title: "Snake"},
		func(d registry.Deps) registry.Game { return New(d) })
	registry.Register(registry.Info{ID: EndlessID, Slug: "snake-endless", Title: "Snake (Endless)"},
		func(d registry.Deps) registry.Game { return NewEndless(d) })
}

// ID returns the game identifier.
func (g *Game) ID() int {
	if g.mode == ModeEndless {
		return EndlessID
	}
	return ClassicID
}

// Slug returns the command-line name.
func (g *Game) Slug() string {
	if g.mode == ModeEndless {
		return "snake-endless"
	}
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Snake (Endless)"
	}
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	cfg, err := config.LoadSnake(rt.ConfigPath)
	if err != nil {
		cfg = config.DefaultSnakeConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, config.ParsePreset(rt.Difficulty))
	g.configure(rt, cfg)
}

func (g *Game) configure(rt core.RuntimeConfig, cfg config.SnakeConfig) {
	g.runtime = rt
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.glyphs = core.GlyphsFor(g.run.Settings())
	g.run.Begin(1)

	g.width = max(rt.ScreenW, 4)
	g.height = max(rt.ScreenH-play.HUDHeight, 4)
	g.moveEvery = max(cfg.Gameplay.MoveEvery, 1)
	g.moveTicker = 0

	start := Point{X: g.width / 2, Y: g.height / 2}
	// The body lies left of the center cell and must stay on the grid.
	length := min(max(cfg.Gameplay.InitialLength, 1), g.width/2)
	g.snake = g.snake[:0]
	for i := 0; i < length; i++ {
		g.snake = append(g.snake, Point{X: start.X - i, Y: start.Y})
	}
	g.vel = Right
	g.next = Right
	g.grow = 0
	g.spawnFood()
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

	g.moveTicker++
	if g.moveTicker >= g.moveEvery {
		g.moveTicker = 0
		g.move()
	}
	return g.run.Result()
}

// steer buffers the held direction unless it reverses into the body.
func (g *Game) steer(in core.InputFrame) {
	dir, ok := directionOf(in.Heading())
	if !ok {
		return
	}
	if len(g.snake) > 1 && dir.X == -g.vel.X && dir.Y == -g.vel.Y {
		return
	}
	g.next = dir
}

// move advances the snake one cell and resolves walls, self hits and food.
func (g *Game) move() {
	g.vel = g.next
	head := g.snake[0].Add(g.vel)

	if g.mode == ModeEndless {
		head = Point{X: core.WrapInt(head.X, g.width), Y: core.WrapInt(head.Y, g.height)}
	} else if head.X < 0 || head.X >= g.width || head.Y < 0 || head.Y >= g.height {
		g.run.End(core.PhaseLost)
		return
	}

	// The tail cell is vacated this move unless the snake is growing.
	body := g.snake
	if g.grow == 0 && len(body) > 1 {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == head {
			g.run.End(core.PhaseLost)
			return
		}
	}

	g.snake = append(g.snake, Point{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = head

	if g.grow > 0 {
		g.grow--
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	if head == g.food {
		g.run.AddScore(g.cfg.Gameplay.FoodPoints)
		g.grow += max(g.cfg.Gameplay.Grow, 0)
		g.moveEvery = g.difficulty.Interval(g.cfg.Gameplay.MoveEvery, g.cfg.Gameplay.MinMoveEvery, g.run.Score, g.run.Tick)
		if !g.spawnFood() {
			g.run.End(core.PhaseWon)
		}
	}
}

// spawnFood places food on a random free cell. It returns false when the
// snake fills the arena.
func (g *Game) spawnFood() bool {
	occupied := make(map[Point]bool, len(g.snake))
	for _, seg := range g.snake {
		occupied[seg] = true
	}
	free := make([]Point, 0, max(g.width*g.height-len(g.snake), 0))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if p := (Point{X: x, Y: y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.food = Point{X: -1, Y: -1}
		return false
	}
	g.food = free[g.rng.Intn(len(free))]
	return true
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	play.DrawHUD(dst, fmt.Sprintf("%s  Score: %d  Length: %d", g.Title(), g.run.Score, len(g.snake)))

	if g.food.X >= 0 {
		dst.SetColored(g.food.X, g.food.Y+play.HUDHeight, g.glyphs.Food, core.ColorRed)
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		seg := g.snake[i]
		r := g.glyphs.Body
		if i == 0 {
			r = g.glyphs.Head
		}
		dst.SetColored(seg.X, seg.Y+play.HUDHeight, r, core.ColorGreen)
	}

	g.run.DrawOverlay(dst, "Arena cleared!")
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.run.State()
}

// Head returns the position of the snake's head.
func (g *Game) Head() Point {
	return g.snake[0]
}

// Len returns the number of segments.
func (g *Game) Len() int {
	return len(g.snake)
}
