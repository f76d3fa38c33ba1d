// Package sim implements the fixed-step 2D simulation shared by the arcade
// games: entity motion, boundary policies and ordered collision resolution.
package sim

import "github.com/vovakirdan/mini-arcade/internal/core"

// Kind tags an entity with a game-defined category (ship, rock, bullet...).
type Kind int

// Shape selects the collision test used for an entity.
type Shape int

const (
	ShapeCircle Shape = iota // Pos is the center, Radius is used
	ShapeBox                 // Pos is the top-left corner, W and H are used
)

// Boundary is the policy applied when an entity leaves the playfield.
type Boundary int

const (
	BoundNone   Boundary = iota // leave the entity where it is
	BoundWrap                   // reappear at the opposite edge
	BoundClamp                  // pin to the edge, never exceeding it
	BoundRemove                 // mark the entity dead
)

// String returns the policy name.
func (b Boundary) String() string {
	switch b {
	case BoundWrap:
		return "wrap"
	case BoundClamp:
		return "clamp"
	case BoundRemove:
		return "remove"
	default:
		return "none"
	}
}

// Entity is a movable simulated object. It is owned by exactly one World.
type Entity struct {
	ID       int
	Kind     Kind
	Shape    Shape
	Pos      core.Vec2
	Vel      core.Vec2
	Radius   float64
	W, H     float64
	Alive    bool
	Rotation float64
	Color    core.Color
	TTL      int // Remaining ticks before expiry; 0 means unlimited
	Tier     int // Game-specific payload, e.g. rock size
}

// Circle returns the entity's collision disc. Box entities use the disc
// centered on the box that touches its shorter side.
func (e *Entity) Circle() core.Circle {
	if e.Shape == ShapeBox {
		return core.Circle{C: e.Box().Center(), R: min(e.W, e.H) / 2}
	}
	return core.Circle{C: e.Pos, R: e.Radius}
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	if e.Shape == ShapeCircle {
		return core.Box{X: e.Pos.X - e.Radius, Y: e.Pos.Y - e.Radius, W: 2 * e.Radius, H: 2 * e.Radius}
	}
	return core.Box{X: e.Pos.X, Y: e.Pos.Y, W: e.W, H: e.H}
}

// Extent returns how far the entity reaches from Pos toward the far edges.
// Circles extend by their radius on both sides, boxes by their size on the
// right and bottom only.
func (e *Entity) Extent() (left, top, right, bottom float64) {
	if e.Shape == ShapeCircle {
		return e.Radius, e.Radius, e.Radius, e.Radius
	}
	return 0, 0, e.W, e.H
}

// Overlaps reports whether two entities intersect, choosing circle-circle,
// box-box or circle-box tests from their shapes.
func Overlaps(a, b *Entity) bool {
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return a.Circle().Overlaps(b.Circle())
	case a.Shape == ShapeBox && b.Shape == ShapeBox:
		return a.Box().Overlaps(b.Box())
	case a.Shape == ShapeCircle:
		return a.Circle().OverlapsBox(b.Box())
	default:
		return b.Circle().OverlapsBox(a.Box())
	}
}
