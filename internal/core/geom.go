// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a real-valued 2D vector used for positions, velocities and offsets.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector pointing along v.
// A zero-length vector has no direction: it returns the zero vector and false.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return Vec2{}, false
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, true
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// FromAngle returns a vector of length r pointing at angle radians.
// Angle 0 points right, angles grow clockwise on screen (y down).
func FromAngle(angle, r float64) Vec2 {
	return Vec2{X: math.Cos(angle) * r, Y: math.Sin(angle) * r}
}

// Rect represents an axis-aligned bounding box on the cell grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Box is a real-valued axis-aligned box. Pos is the top-left corner.
type Box struct {
	X, Y, W, H float64
}

// Overlaps uses standard AABB collision detection. Boxes that only share an
// edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	if b.X >= o.X+o.W || o.X >= b.X+b.W {
		return false
	}
	if b.Y >= o.Y+o.H || o.Y >= b.Y+b.H {
		return false
	}
	return true
}

// Center returns the center point of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Circle is a disc with center C and radius R.
type Circle struct {
	C Vec2
	R float64
}

// Overlaps reports whether two discs intersect. Tangent discs do not.
func (c Circle) Overlaps(o Circle) bool {
	return c.C.Dist(o.C) < c.R+o.R
}

// OverlapsBox reports whether the disc intersects the box, using the closest
// point of the box to the disc center.
func (c Circle) OverlapsBox(b Box) bool {
	nearest := Vec2{
		X: ClampF(c.C.X, b.X, b.X+b.W),
		Y: ClampF(c.C.Y, b.Y, b.Y+b.H),
	}
	return c.C.Dist(nearest) < c.R
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Wrap folds v into [0, size). A value sitting exactly on size wraps to 0.
// A non-positive size leaves v unchanged.
func Wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	r := math.Mod(v, size)
	if r < 0 {
		r += size
	}
	if r >= size {
		return 0
	}
	return r
}

// WrapInt folds v into [0, size) on the integer grid.
func WrapInt(v, size int) int {
	if size <= 0 {
		return v
	}
	r := v % size
	if r < 0 {
		r += size
	}
	return r
}
