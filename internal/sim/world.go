package sim

import "github.com/vovakirdan/mini-arcade/internal/core"

// Nominal tick length. Motion is integrated with this fixed quantum on every
// tick regardless of wall-clock time, so game speed follows the tick rate.
const DT = 1.0

// Walls selects which playfield edges reflect an entity.
type Walls uint8

const (
	WallLeft Walls = 1 << iota
	WallRight
	WallTop
	WallBottom

	AllWalls = WallLeft | WallRight | WallTop | WallBottom
)

// World holds the entities of one game instance in stable insertion order.
// Every ordered operation (collisions, iteration) walks entities in the
// order they were spawned, so the first match in that order wins ties.
type World struct {
	Width, Height float64
	Entities      []Entity

	nextID    int
	iterating bool
	pending   []Entity
}

// NewWorld creates an empty playfield of the given size.
func NewWorld(width, height float64) *World {
	return &World{Width: width, Height: height}
}

// Reset removes all entities and restarts ID assignment.
func (w *World) Reset() {
	w.Entities = w.Entities[:0]
	w.pending = w.pending[:0]
	w.nextID = 0
}

// Spawn adds an alive entity at the end of the order and returns its ID.
// Entities spawned from inside a Collide callback are queued and appended
// once the pass completes.
func (w *World) Spawn(e Entity) int {
	w.nextID++
	e.ID = w.nextID
	e.Alive = true
	if w.iterating {
		w.pending = append(w.pending, e)
		return e.ID
	}
	w.Entities = append(w.Entities, e)
	return e.ID
}

// Get returns the entity with the given ID, or nil when it is gone.
func (w *World) Get(id int) *Entity {
	for i := range w.Entities {
		if w.Entities[i].ID == id {
			return &w.Entities[i]
		}
	}
	return nil
}

// Count returns the number of alive entities of a kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for i := range w.Entities {
		if w.Entities[i].Alive && w.Entities[i].Kind == kind {
			n++
		}
	}
	return n
}

// Each calls fn for every alive entity of a kind in insertion order.
func (w *World) Each(kind Kind, fn func(e *Entity)) {
	for i := range w.Entities {
		e := &w.Entities[i]
		if e.Alive && e.Kind == kind {
			fn(e)
		}
	}
}

// Integrate advances every alive entity by its velocity times dt.
func (w *World) Integrate(dt float64) {
	for i := range w.Entities {
		e := &w.Entities[i]
		if !e.Alive {
			continue
		}
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	}
}

// Age decrements TTLs and kills entities whose TTL runs out.
func (w *World) Age() {
	for i := range w.Entities {
		e := &w.Entities[i]
		if !e.Alive || e.TTL == 0 {
			continue
		}
		e.TTL--
		if e.TTL == 0 {
			e.Alive = false
		}
	}
}

// ApplyBoundary applies the policy chosen by policyFor to every alive entity.
func (w *World) ApplyBoundary(policyFor func(e *Entity) Boundary) {
	for i := range w.Entities {
		e := &w.Entities[i]
		if !e.Alive {
			continue
		}
		w.Constrain(e, policyFor(e))
	}
}

// Constrain applies one boundary policy to e and reports whether the entity
// was outside the playfield.
func (w *World) Constrain(e *Entity, policy Boundary) bool {
	left, top, right, bottom := e.Extent()
	switch policy {
	case BoundWrap:
		x, y := core.Wrap(e.Pos.X, w.Width), core.Wrap(e.Pos.Y, w.Height)
		moved := x != e.Pos.X || y != e.Pos.Y
		e.Pos = core.Vec2{X: x, Y: y}
		return moved
	case BoundClamp:
		x := core.ClampF(e.Pos.X, left, w.Width-right)
		y := core.ClampF(e.Pos.Y, top, w.Height-bottom)
		moved := x != e.Pos.X || y != e.Pos.Y
		e.Pos = core.Vec2{X: x, Y: y}
		return moved
	case BoundRemove:
		if w.outside(e) {
			e.Alive = false
			return true
		}
	}
	return false
}

func (w *World) outside(e *Entity) bool {
	if e.Shape == ShapeCircle {
		return e.Pos.X < 0 || e.Pos.X >= w.Width || e.Pos.Y < 0 || e.Pos.Y >= w.Height
	}
	return !e.Box().Overlaps(core.Box{W: w.Width, H: w.Height})
}

// Reflect bounces e off the selected walls of the playfield.
func (w *World) Reflect(e *Entity, walls Walls) (hitX, hitY bool) {
	return ReflectWalls(e, w.Width, w.Height, walls)
}

// ReflectWalls bounces e elastically off the selected walls of a width x
// height field: the velocity component normal to a wall it touches while
// moving into it is negated and the position is pinned to the wall. The
// other component is untouched.
func ReflectWalls(e *Entity, width, height float64, walls Walls) (hitX, hitY bool) {
	left, top, right, bottom := e.Extent()
	if walls&WallLeft != 0 && e.Pos.X-left <= 0 && e.Vel.X < 0 {
		e.Pos.X = left
		e.Vel.X = -e.Vel.X
		hitX = true
	}
	if walls&WallRight != 0 && e.Pos.X+right >= width && e.Vel.X > 0 {
		e.Pos.X = width - right
		e.Vel.X = -e.Vel.X
		hitX = true
	}
	if walls&WallTop != 0 && e.Pos.Y-top <= 0 && e.Vel.Y < 0 {
		e.Pos.Y = top
		e.Vel.Y = -e.Vel.Y
		hitY = true
	}
	if walls&WallBottom != 0 && e.Pos.Y+bottom >= height && e.Vel.Y > 0 {
		e.Pos.Y = height - bottom
		e.Vel.Y = -e.Vel.Y
		hitY = true
	}
	return hitX, hitY
}

// Collide resolves collisions between kinds a and b. Entities of kind a are
// visited in insertion order; each one is matched with the first alive
// overlapping entity of kind b in insertion order and hit is called once for
// that pair. Entities killed by an earlier hit are skipped for the rest of
// the pass. It returns the number of hits.
func (w *World) Collide(a, b Kind, hit func(x, y *Entity)) int {
	w.iterating = true
	hits := 0
	for i := range w.Entities {
		x := &w.Entities[i]
		if !x.Alive || x.Kind != a {
			continue
		}
		for j := range w.Entities {
			if i == j {
				continue
			}
			y := &w.Entities[j]
			if !y.Alive || y.Kind != b {
				continue
			}
			if Overlaps(x, y) {
				hit(x, y)
				hits++
				break
			}
		}
	}
	w.iterating = false
	w.flush()
	return hits
}

// FirstHit returns the first alive entity of kind b, in insertion order,
// that overlaps e. It returns nil when nothing overlaps.
func (w *World) FirstHit(e *Entity, b Kind) *Entity {
	for i := range w.Entities {
		y := &w.Entities[i]
		if y == e || !y.Alive || y.Kind != b {
			continue
		}
		if Overlaps(e, y) {
			return y
		}
	}
	return nil
}

// Advance runs the motion part of a tick: integrate by dt, age TTLs and
// apply the boundary policy.
func (w *World) Advance(dt float64, policyFor func(e *Entity) Boundary) {
	w.Integrate(dt)
	w.Age()
	w.ApplyBoundary(policyFor)
}

// Compact drops dead entities, keeping the order of the survivors.
func (w *World) Compact() {
	alive := w.Entities[:0]
	for _, e := range w.Entities {
		if e.Alive {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(w.Entities); i++ {
		w.Entities[i] = Entity{}
	}
	w.Entities = alive
}

func (w *World) flush() {
	if len(w.pending) == 0 {
		return
	}
	w.Entities = append(w.Entities, w.pending...)
	w.pending = w.pending[:0]
}

// Policy returns a boundary policy function that looks kinds up in a table
// and falls back to def.
func Policy(def Boundary, byKind map[Kind]Boundary) func(e *Entity) Boundary {
	return func(e *Entity) Boundary {
		if b, ok := byKind[e.Kind]; ok {
			return b
		}
		return def
	}
}
