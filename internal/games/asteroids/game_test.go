package asteroids

import (
	"testing"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/scores"
	"github.com/vovakirdan/mini-arcade/internal/sim"
)

func newTestGame(t *testing.T, mode Mode, store *scores.Store) *Game {
	t.Helper()
	deps := registry.Deps{}
	if store != nil {
		deps.Scores = store
	}
	g := New(deps)
	if mode == ModeTimeAttack {
		g = NewTimeAttack(deps)
	}
	cfg := config.DefaultAsteroidsConfig()
	cfg.Difficulty.Enabled = false
	g.configure(core.RuntimeConfig{Seed: 3, ScreenW: 40, ScreenH: 22}, cfg)
	return g
}

// clearRocks removes the generated wave so tests can place their own rocks.
func clearRocks(g *Game) {
	g.world.Each(kindRock, func(e *sim.Entity) { e.Alive = false })
	g.world.Compact()
}

func (g *Game) placeRock(x, y float64, tier int) int {
	return g.world.Spawn(sim.Entity{Kind: kindRock, Pos: core.V(x, y), Radius: g.cfg.Rocks.Radii[tier], Tier: tier})
}

func (g *Game) placeBullet(x, y float64, vel core.Vec2, ttl int) int {
	return g.world.Spawn(sim.Entity{Kind: kindBullet, Pos: core.V(x, y), Vel: vel, TTL: ttl})
}

func TestBulletRemovedOffField(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	g.placeRock(5, 5, 0)
	g.placeBullet(39.5, 15, core.V(1.5, 0), 40)

	g.Step(core.NewInputFrame())

	if n := g.world.Count(kindBullet); n != 0 {
		t.Errorf("bullets = %d, expected 0", n)
	}
}

func TestBulletExpires(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	g.placeRock(5, 5, 0)
	g.placeBullet(30, 15, core.Vec2{}, 2)

	g.Step(core.NewInputFrame())
	if n := g.world.Count(kindBullet); n != 1 {
		t.Fatalf("bullets after one tick = %d, expected 1", n)
	}
	g.Step(core.NewInputFrame())
	if n := g.world.Count(kindBullet); n != 0 {
		t.Errorf("bullets after two ticks = %d, expected 0", n)
	}
}

func TestShipWrapsAround(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	g.placeRock(5, 5, 0)
	ship := g.world.Get(g.ship)
	ship.Pos = core.V(39.9, 10)
	ship.Vel = core.V(0.5, 0)

	g.Step(core.NewInputFrame())

	ship = g.world.Get(g.ship)
	if ship.Pos.X < 0 || ship.Pos.X >= 1 {
		t.Errorf("Pos.X = %v, expected wrapped into [0, 1)", ship.Pos.X)
	}
}

func TestBulletSplitsLargeRock(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	g.placeRock(30, 10, 2)
	g.placeBullet(30, 10, core.Vec2{}, 10)

	res := g.Step(core.NewInputFrame())

	if g.run.Score != 20 {
		t.Errorf("Score = %d, expected 20", g.run.Score)
	}
	if !res.Has(core.EventScore) {
		t.Errorf("events = %+v, expected a score event", res.Events)
	}
	if n := g.world.Count(kindRock); n != 2 {
		t.Fatalf("rocks = %d, expected 2 fragments", n)
	}
	g.world.Each(kindRock, func(e *sim.Entity) {
		if e.Tier != 1 {
			t.Errorf("fragment tier = %d, expected 1", e.Tier)
		}
	})
	if n := g.world.Count(kindBullet); n != 0 {
		t.Errorf("bullets = %d, expected 0", n)
	}
}

func TestBulletHitsFirstRockOnly(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	first := g.placeRock(30, 10, 0)
	second := g.placeRock(30.5, 10, 0)
	g.placeBullet(30.2, 10, core.Vec2{}, 10)

	g.Step(core.NewInputFrame())

	if g.world.Get(first) != nil {
		t.Error("first rock survived")
	}
	if g.world.Get(second) == nil {
		t.Error("second rock was destroyed too")
	}
	if g.run.Score != 100 {
		t.Errorf("Score = %d, expected 100", g.run.Score)
	}
}

func TestShipCrashCostsLife(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	g.invulnerable = 0
	g.placeRock(5, 5, 0)
	ship := g.world.Get(g.ship)
	g.placeRock(ship.Pos.X, ship.Pos.Y, 0)

	res := g.Step(core.NewInputFrame())

	if res.State.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", res.State.Lives)
	}
	if !res.Has(core.EventLifeLost) {
		t.Errorf("events = %+v, expected life lost", res.Events)
	}
	if g.invulnerable != g.cfg.Gameplay.Invulnerable {
		t.Errorf("invulnerable = %d, expected %d", g.invulnerable, g.cfg.Gameplay.Invulnerable)
	}
	if res.State.Phase != core.PhasePlaying {
		t.Errorf("Phase = %v, expected playing", res.State.Phase)
	}
}

func TestInvulnerableShipIgnoresRocks(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	g.invulnerable = 5
	ship := g.world.Get(g.ship)
	g.placeRock(ship.Pos.X, ship.Pos.Y, 0)

	res := g.Step(core.NewInputFrame())

	if res.State.Lives != 3 {
		t.Errorf("Lives = %d, expected 3", res.State.Lives)
	}
	if g.invulnerable != 4 {
		t.Errorf("invulnerable = %d, expected 4", g.invulnerable)
	}
}

func TestFireRespectsBulletLimit(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	g.placeRock(5, 5, 0)
	ship := g.world.Get(g.ship)
	ship.Pos = core.V(2, 15)
	ship.Rotation = 0
	fire := core.FrameOf(core.ActionFire)

	for i := 0; i < g.cfg.Bullets.MaxAlive+3; i++ {
		g.Step(fire)
	}

	if n := g.world.Count(kindBullet); n != g.cfg.Bullets.MaxAlive {
		t.Errorf("bullets = %d, expected %d", n, g.cfg.Bullets.MaxAlive)
	}
}

func TestRotateAndThrust(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	g.placeRock(5, 5, 0)
	before := g.world.Get(g.ship).Rotation

	g.Step(core.FrameOf(core.ActionLeft, core.ActionUp))

	ship := g.world.Get(g.ship)
	if got, want := ship.Rotation, before-g.cfg.Ship.TurnRate; got != want {
		t.Errorf("Rotation = %v, expected %v", got, want)
	}
	if ship.Vel.IsZero() {
		t.Error("thrust did not move the ship")
	}
}

func TestClassicClearedFieldSpawnsWave(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	clearRocks(g)
	g.placeRock(30, 10, 0)
	g.placeBullet(30, 10, core.Vec2{}, 10)

	res := g.Step(core.NewInputFrame())

	if res.State.Phase != core.PhasePlaying {
		t.Fatalf("Phase = %v, expected playing", res.State.Phase)
	}
	if g.wave != 2 {
		t.Errorf("wave = %d, expected 2", g.wave)
	}
	if g.world.Count(kindRock) == 0 {
		t.Error("no rocks in the new wave")
	}
}

// clearAfter sets up a time attack run that clears its last rock on the
// tick reaching secs seconds.
func clearAfter(t *testing.T, store *scores.Store, secs int) core.StepResult {
	t.Helper()
	g := newTestGame(t, ModeTimeAttack, store)
	clearRocks(g)
	g.placeRock(30, 10, 0)
	g.placeBullet(30, 10, core.Vec2{}, 10)
	g.run.Tick = uint64(secs*60 - 1)
	return g.Step(core.NewInputFrame())
}

func TestTimeAttackKeepsFastestClear(t *testing.T) {
	store := scores.New(&scores.MemoryBlob{}, scores.WithOrders(registry.OrderOf))

	res := clearAfter(t, store, 45)
	if res.State.Phase != core.PhaseWon || !res.Has(core.EventNewBest) {
		t.Fatalf("first run: phase %v events %+v", res.State.Phase, res.Events)
	}
	if res.State.Score != 45 {
		t.Errorf("Score = %d, expected 45", res.State.Score)
	}

	res = clearAfter(t, store, 50)
	if res.Has(core.EventNewBest) {
		t.Error("slower clear reported a new best")
	}
	if best, _ := store.Best(TimeAttackID); best != 45 {
		t.Errorf("Best() = %d, expected 45", best)
	}

	res = clearAfter(t, store, 30)
	if !res.Has(core.EventNewBest) {
		t.Error("faster clear not reported as new best")
	}
	if best, _ := store.Best(TimeAttackID); best != 30 {
		t.Errorf("Best() = %d, expected 30", best)
	}
}

func TestTimeAttackLossCommitsNothing(t *testing.T) {
	store := scores.New(&scores.MemoryBlob{}, scores.WithOrders(registry.OrderOf))
	g := newTestGame(t, ModeTimeAttack, store)
	clearRocks(g)
	g.placeRock(5, 5, 0)
	g.run.Lives = 1
	g.invulnerable = 0
	ship := g.world.Get(g.ship)
	g.placeRock(ship.Pos.X, ship.Pos.Y, 0)

	res := g.Step(core.NewInputFrame())

	if res.State.Phase != core.PhaseLost {
		t.Fatalf("Phase = %v, expected lost", res.State.Phase)
	}
	if _, ok := store.Best(TimeAttackID); ok {
		t.Error("lost run was recorded")
	}
	if store.Writes() != 0 {
		t.Errorf("Writes() = %d, expected 0", store.Writes())
	}

	lifeLost, gameOver := -1, -1
	for i, ev := range res.Events {
		switch ev.Kind {
		case core.EventLifeLost:
			lifeLost = i
		case core.EventGameOver:
			gameOver = i
		}
	}
	if lifeLost < 0 || gameOver < 0 || lifeLost > gameOver {
		t.Errorf("events = %+v, expected life lost before game over", res.Events)
	}
	if res.State.Lives != 0 {
		t.Errorf("Lives = %d, expected 0", res.State.Lives)
	}
}

func TestClassicGameOverCommitsScore(t *testing.T) {
	store := scores.New(&scores.MemoryBlob{})
	g := newTestGame(t, ModeClassic, store)
	clearRocks(g)
	g.placeRock(5, 5, 0)
	g.run.Lives = 1
	g.run.Score = 340
	g.invulnerable = 0
	ship := g.world.Get(g.ship)
	g.placeRock(ship.Pos.X, ship.Pos.Y, 0)

	res := g.Step(core.NewInputFrame())

	if res.State.Phase != core.PhaseLost {
		t.Fatalf("Phase = %v, expected lost", res.State.Phase)
	}
	if best, _ := store.Best(ClassicID); best != 340 {
		t.Errorf("Best() = %d, expected 340", best)
	}
}

func TestSameSeedSameField(t *testing.T) {
	a := newTestGame(t, ModeClassic, nil)
	b := newTestGame(t, ModeClassic, nil)
	for i := 0; i < 30; i++ {
		a.Step(core.NewInputFrame())
		b.Step(core.NewInputFrame())
	}
	if len(a.world.Entities) != len(b.world.Entities) {
		t.Fatalf("entity counts differ: %d vs %d", len(a.world.Entities), len(b.world.Entities))
	}
	for i := range a.world.Entities {
		if a.world.Entities[i].Pos != b.world.Entities[i].Pos {
			t.Errorf("entity %d at %v vs %v", i, a.world.Entities[i].Pos, b.world.Entities[i].Pos)
		}
	}
}

func TestHeadingBuckets(t *testing.T) {
	tests := []struct {
		rot  float64
		want int
	}{
		{0, 0},
		{1.5708, 1},
		{3.1416, 2},
		{-1.5708, 3},
		{-0.2, 0},
	}
	for _, tt := range tests {
		if got := heading(tt.rot); got != tt.want {
			t.Errorf("heading(%v) = %d, expected %d", tt.rot, got, tt.want)
		}
	}
}

func TestRenderDrawsShip(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	g.invulnerable = 0
	scr := core.NewScreen(40, 22)
	g.Render(scr)

	ship := g.world.Get(g.ship)
	x, y := int(ship.Pos.X), int(ship.Pos.Y)+2
	if got := scr.Get(x, y); got != g.glyphs.Arrows[3] {
		t.Errorf("cell (%d, %d) = %q, expected %q", x, y, got, g.glyphs.Arrows[3])
	}
}
