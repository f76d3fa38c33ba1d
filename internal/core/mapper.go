package core

import (
	"math"
	"time"
)

// Bindings maps raw key names (as reported by the terminal) to intents.
type Bindings map[string]Action

// DefaultBindings returns the standard arcade key layout.
func DefaultBindings() Bindings {
	return Bindings{
		"w": ActionUp, "up": ActionUp, "k": ActionUp,
		"s": ActionDown, "down": ActionDown, "j": ActionDown,
		"a": ActionLeft, "left": ActionLeft, "h": ActionLeft,
		"d": ActionRight, "right": ActionRight, "l": ActionRight,
		" ": ActionFire, "space": ActionFire, "f": ActionFire,
		"p": ActionPause,
		"enter": ActionConfirm,
		"b": ActionBack, "esc": ActionBack,
		"r": ActionRestart,
		"q": ActionQuit, "ctrl+c": ActionQuit,
	}
}

// DefaultHoldTimeout is how long a key counts as held after its last
// press or repeat when the device never reports key-up.
const DefaultHoldTimeout = 120 * time.Millisecond

// EdgeRepeatWindow is how long an edge intent key stays held after its last
// press or repeat. It is longer than the initial auto-repeat delay of common
// terminals, so holding the key never fires the intent a second time.
const EdgeRepeatWindow = 700 * time.Millisecond

// DefaultDeadzone is the minimum pointer drag distance, in cells, before a
// joystick direction becomes active.
const DefaultDeadzone = 2.0

type heldKey struct {
	action   Action
	lastSeen time.Time
}

// Mapper normalizes key and pointer events into per-tick input frames.
//
// Directions are continuous: they stay in every frame while their key is
// held. Every other intent is edge-triggered: it appears in one frame per
// press and holding (or auto-repeating) the key does not re-trigger it.
// When the last active direction is released the next frame carries
// ActionCenter so games can stop continuous motion.
type Mapper struct {
	bindings    Bindings
	holdTimeout time.Duration
	edgeWindow  time.Duration
	deadzone    float64

	held    map[string]heldKey
	pending InputFrame

	pointerDown bool
	dragged     bool
	origin      Vec2
	stick       Action
}

// NewMapper creates a mapper. A zero holdTimeout means keys are only
// released by explicit Release calls. Otherwise direction keys release after
// holdTimeout and edge intent keys after the longer of holdTimeout and
// EdgeRepeatWindow.
func NewMapper(bindings Bindings, holdTimeout time.Duration, deadzone float64) *Mapper {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	if deadzone <= 0 {
		deadzone = DefaultDeadzone
	}
	return &Mapper{
		bindings:    bindings,
		holdTimeout: holdTimeout,
		edgeWindow:  max(holdTimeout, EdgeRepeatWindow),
		deadzone:    deadzone,
		held:        make(map[string]heldKey),
		pending:     NewInputFrame(),
	}
}

// Lookup returns the intent bound to key.
func (m *Mapper) Lookup(key string) Action {
	return m.bindings[key]
}

// Press records a key-down (or auto-repeat) event. It returns the intent
// newly triggered by this event, or ActionNone when the key is unbound or
// already held.
func (m *Mapper) Press(key string, now time.Time) Action {
	action, ok := m.bindings[key]
	if !ok || action == ActionNone {
		return ActionNone
	}
	if h, ok := m.held[key]; ok && !m.expired(h, now) {
		h.lastSeen = now
		m.held[key] = h
		return ActionNone
	}
	m.held[key] = heldKey{action: action, lastSeen: now}
	if !action.IsDirection() {
		m.pending.Set(action)
	}
	return action
}

// Release records a key-up event.
func (m *Mapper) Release(key string) {
	h, ok := m.held[key]
	if !ok {
		return
	}
	delete(m.held, key)
	if h.action.IsDirection() && !m.directionActive() {
		m.pending.Set(ActionCenter)
	}
}

// PointerDown starts a drag at (x, y).
func (m *Mapper) PointerDown(x, y float64) {
	m.pointerDown = true
	m.dragged = false
	m.origin = Vec2{X: x, Y: y}
	m.stick = ActionNone
}

// PointerMove updates the drag offset and the joystick direction.
func (m *Mapper) PointerMove(x, y float64) {
	if !m.pointerDown {
		return
	}
	dir := JoystickDirection(Vec2{X: x, Y: y}.Sub(m.origin), m.deadzone)
	if dir != ActionNone {
		m.dragged = true
	}
	if m.stick.IsDirection() && dir == ActionNone {
		m.stick = ActionNone
		if !m.directionActive() {
			m.pending.Set(ActionCenter)
		}
		return
	}
	m.stick = dir
}

// PointerUp ends the drag. A release without any drag counts as a tap and
// triggers ActionFire.
func (m *Mapper) PointerUp() {
	if !m.pointerDown {
		return
	}
	m.pointerDown = false
	wasDir := m.stick.IsDirection()
	m.stick = ActionNone
	if !m.dragged {
		m.pending.Set(ActionFire)
		return
	}
	if wasDir && !m.directionActive() {
		m.pending.Set(ActionCenter)
	}
}

// Frame builds the input for the next tick and clears edge intents.
// Keys whose hold timeout passed are released first.
func (m *Mapper) Frame(now time.Time) InputFrame {
	for key, h := range m.held {
		if m.expired(h, now) {
			m.Release(key)
		}
	}

	frame := m.pending.Clone()
	m.pending.Clear()

	for _, h := range m.held {
		if h.action.IsDirection() {
			frame.Set(h.action)
		}
	}
	if m.stick.IsDirection() {
		frame.Set(m.stick)
	}
	if frame.Heading() != ActionNone && frame.Has(ActionCenter) {
		delete(frame.Actions, ActionCenter)
	}
	return frame
}

// Inject queues an edge intent for the next frame as if its key was tapped.
func (m *Mapper) Inject(action Action) {
	if action == ActionNone || action.IsDirection() {
		return
	}
	m.pending.Set(action)
}

// Reset drops all held keys, pointer state and pending intents.
func (m *Mapper) Reset() {
	m.held = make(map[string]heldKey)
	m.pending.Clear()
	m.pointerDown = false
	m.dragged = false
	m.stick = ActionNone
}

func (m *Mapper) expired(h heldKey, now time.Time) bool {
	if m.holdTimeout <= 0 {
		return false
	}
	window := m.holdTimeout
	if !h.action.IsDirection() {
		window = m.edgeWindow
	}
	return now.Sub(h.lastSeen) > window
}

func (m *Mapper) directionActive() bool {
	if m.stick.IsDirection() {
		return true
	}
	for _, h := range m.held {
		if h.action.IsDirection() {
			return true
		}
	}
	return false
}

// JoystickDirection converts a drag offset into one of four directions using
// 90 degree sectors centered on the axes. Offsets shorter than deadzone, and
// the zero vector, yield ActionNone. Screen y grows downward; offsets exactly
// on a diagonal resolve to the horizontal direction.
func JoystickDirection(offset Vec2, deadzone float64) Action {
	l := offset.Len()
	if l == 0 || l < deadzone || math.IsNaN(l) {
		return ActionNone
	}
	// |x| >= |y| is the [-45°, 45°] sector around the horizontal axis and its
	// mirror; comparing magnitudes avoids rounding at the sector borders.
	if math.Abs(offset.X) >= math.Abs(offset.Y) {
		if offset.X > 0 {
			return ActionRight
		}
		return ActionLeft
	}
	if offset.Y > 0 {
		return ActionDown
	}
	return ActionUp
}
