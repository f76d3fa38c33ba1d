package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlap", Box{0, 0, 2, 2}, Box{1, 1, 2, 2}, true},
		{"touching edge", Box{0, 0, 2, 2}, Box{2, 0, 2, 2}, false},
		{"apart", Box{0, 0, 1, 1}, Box{5, 5, 1, 1}, false},
		{"inside", Box{0, 0, 10, 10}, Box{4, 4, 0.5, 0.5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCircleOverlaps(t *testing.T) {
	a := Circle{C: V(0, 0), R: 1}
	if !a.Overlaps(Circle{C: V(1.5, 0), R: 1}) {
		t.Error("circles 1.5 apart with radius 1 should overlap")
	}
	if a.Overlaps(Circle{C: V(2, 0), R: 1}) {
		t.Error("tangent circles should not overlap")
	}
	if !a.OverlapsBox(Box{X: 0.5, Y: -0.5, W: 1, H: 1}) {
		t.Error("circle should overlap box covering its edge")
	}
	if a.OverlapsBox(Box{X: 1, Y: 1, W: 1, H: 1}) {
		t.Error("circle should not reach the box corner at distance sqrt(2)")
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v, ok := Vec2{}.Normalize()
	if ok {
		t.Fatal("zero vector must not have a direction")
	}
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || !v.IsZero() {
		t.Errorf("Normalize() of zero = %v, expected zero vector", v)
	}

	u, ok := V(3, 4).Normalize()
	if !ok || math.Abs(u.Len()-1) > 1e-9 {
		t.Errorf("Normalize() = %v (%v), expected unit vector", u, ok)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, size, expected float64
	}{
		{5, 10, 5},
		{10, 10, 0}, // exact edge reappears at the opposite edge
		{-1, 10, 9},
		{0, 10, 0},
		{23, 10, 3},
		{4, 0, 4},
	}
	for _, tc := range tests {
		if got := Wrap(tc.v, tc.size); got != tc.expected {
			t.Errorf("Wrap(%v, %v) = %v, expected %v", tc.v, tc.size, got, tc.expected)
		}
	}
	if WrapInt(-1, 20) != 19 || WrapInt(20, 20) != 0 {
		t.Error("WrapInt should fold into [0, size)")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
	if ClampF(15.5, 0, 10) != 10 {
		t.Error("ClampF should pin to max")
	}
}
