package core

import (
	"testing"
	"time"
)

func TestMapperEdgeIntentsAreDebounced(t *testing.T) {
	m := NewMapper(nil, 100*time.Millisecond, 0)
	now := time.Unix(0, 0)

	if got := m.Press(" ", now); got != ActionFire {
		t.Fatalf("Press(space) = %v, expected Fire", got)
	}
	frame := m.Frame(now)
	if !frame.Has(ActionFire) {
		t.Fatal("first frame should carry Fire")
	}

	// Auto-repeat while held must not re-trigger the edge intent.
	for i := 1; i <= 5; i++ {
		now = now.Add(30 * time.Millisecond)
		if got := m.Press(" ", now); got != ActionNone {
			t.Fatalf("repeat %d: Press() = %v, expected None", i, got)
		}
		if m.Frame(now).Has(ActionFire) {
			t.Fatalf("repeat %d: Fire re-triggered while held", i)
		}
	}

	// After the edge window a new press fires again.
	now = now.Add(EdgeRepeatWindow + 50*time.Millisecond)
	m.Frame(now)
	if got := m.Press(" ", now); got != ActionFire {
		t.Errorf("Press() after release = %v, expected Fire", got)
	}
}

func TestMapperHeldKeyWithRepeatDelayFiresOnce(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		delay time.Duration
	}{
		{"pause with short delay", "p", 250 * time.Millisecond},
		{"pause with long delay", "p", 500 * time.Millisecond},
		{"fire with slow terminal", " ", 660 * time.Millisecond},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMapper(nil, 120*time.Millisecond, 0)
			start := time.Unix(0, 0)

			var fired []Action
			collect := func(now time.Time) {
				for a, on := range m.Frame(now).Actions {
					if on && !a.IsDirection() && a != ActionCenter {
						fired = append(fired, a)
					}
				}
			}

			m.Press(tc.key, start)
			collect(start)
			// Frames keep running at 60 Hz through the terminal's repeat delay.
			for now := start; now.Before(start.Add(tc.delay)); now = now.Add(16 * time.Millisecond) {
				collect(now)
			}
			// Then the terminal repeats every 33ms for a second.
			for now := start.Add(tc.delay); now.Before(start.Add(tc.delay + time.Second)); now = now.Add(33 * time.Millisecond) {
				m.Press(tc.key, now)
				collect(now)
			}
			if len(fired) != 1 {
				t.Errorf("edge intents from one held key: %v, expected exactly one", fired)
			}
		})
	}
}

func TestMapperDirectionIsContinuousAndCentersOnRelease(t *testing.T) {
	m := NewMapper(nil, 0, 0)
	now := time.Unix(0, 0)

	m.Press("left", now)
	for i := 0; i < 3; i++ {
		frame := m.Frame(now)
		if !frame.Has(ActionLeft) {
			t.Fatalf("frame %d: Left should stay active while held", i)
		}
		if frame.Has(ActionCenter) {
			t.Fatalf("frame %d: Center emitted while held", i)
		}
	}

	m.Release("left")
	frame := m.Frame(now)
	if frame.Has(ActionLeft) {
		t.Error("Left should be inactive after release")
	}
	if !frame.Has(ActionCenter) {
		t.Error("release should emit Center")
	}
	if m.Frame(now).Has(ActionCenter) {
		t.Error("Center should be emitted only once")
	}
}

func TestMapperReleaseWithOtherDirectionHeld(t *testing.T) {
	m := NewMapper(nil, 0, 0)
	now := time.Unix(0, 0)

	m.Press("left", now)
	m.Press("up", now)
	m.Release("left")

	frame := m.Frame(now)
	if frame.Has(ActionCenter) {
		t.Error("Center must not be emitted while another direction is held")
	}
	if !frame.Has(ActionUp) {
		t.Error("Up should still be active")
	}
}

func TestMapperHoldTimeoutReleases(t *testing.T) {
	m := NewMapper(nil, 50*time.Millisecond, 0)
	now := time.Unix(0, 0)

	m.Press("d", now)
	if !m.Frame(now.Add(40 * time.Millisecond)).Has(ActionRight) {
		t.Fatal("Right should be active inside the hold window")
	}
	frame := m.Frame(now.Add(80 * time.Millisecond))
	if frame.Has(ActionRight) || !frame.Has(ActionCenter) {
		t.Errorf("expired hold should release into Center, got %v", frame.Actions)
	}
}

func TestMapperUnboundKey(t *testing.T) {
	m := NewMapper(nil, 0, 0)
	if got := m.Press("x", time.Now()); got != ActionNone {
		t.Errorf("Press(x) = %v, expected None", got)
	}
	if !m.Frame(time.Now()).Empty() {
		t.Error("unbound key should not produce input")
	}
}

func TestMapperPointerJoystick(t *testing.T) {
	m := NewMapper(nil, 0, 2)
	now := time.Unix(0, 0)

	m.PointerDown(10, 10)
	m.PointerMove(11, 10) // inside deadzone
	if m.Frame(now).Heading() != ActionNone {
		t.Fatal("drag inside the deadzone must not pick a direction")
	}

	m.PointerMove(10, 5)
	if got := m.Frame(now).Heading(); got != ActionUp {
		t.Fatalf("Heading() = %v, expected Up", got)
	}

	m.PointerUp()
	frame := m.Frame(now)
	if frame.Heading() != ActionNone || !frame.Has(ActionCenter) {
		t.Errorf("pointer release should center, got %v", frame.Actions)
	}
}

func TestMapperPointerTapFires(t *testing.T) {
	m := NewMapper(nil, 0, 2)
	m.PointerDown(3, 3)
	m.PointerUp()
	if !m.Frame(time.Now()).Has(ActionFire) {
		t.Error("tap without drag should fire")
	}
}

func TestJoystickDirection(t *testing.T) {
	tests := []struct {
		name     string
		offset   Vec2
		expected Action
	}{
		{"zero vector", V(0, 0), ActionNone},
		{"inside deadzone", V(0.5, 0.5), ActionNone},
		{"right", V(5, 1), ActionRight},
		{"left", V(-5, 2), ActionLeft},
		{"down", V(1, 5), ActionDown},
		{"up", V(-1, -5), ActionUp},
		{"diagonal tie resolves horizontally", V(3, 3), ActionRight},
		{"negative diagonal tie", V(-3, -3), ActionLeft},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := JoystickDirection(tc.offset, 1); got != tc.expected {
				t.Errorf("JoystickDirection(%v) = %v, expected %v", tc.offset, got, tc.expected)
			}
		})
	}
}
