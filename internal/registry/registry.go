// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/scores"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the numeric game identifier used for high scores.
	ID() int

	// Slug returns the short name used on the command line (e.g., "snake").
	Slug() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new run. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Deps are the collaborators injected into every game instance.
type Deps struct {
	Scores   core.ScoreRecorder
	Settings core.SettingsReader
}

// WithDefaults fills missing collaborators with inert implementations.
func (d Deps) WithDefaults() Deps {
	if d.Scores == nil {
		d.Scores = core.NopRecorder{}
	}
	if d.Settings == nil {
		d.Settings = core.StaticSettings{}
	}
	return d
}

// Info contains metadata about a registered game.
type Info struct {
	ID    int
	Slug  string
	Title string
	Order scores.Order
}

// Factory creates a new instance of a game.
type Factory func(deps Deps) Game

// UnknownTitle is the title of the placeholder returned for unknown ids.
const UnknownTitle = "Unknown game"

type entry struct {
	info    Info
	factory Factory
}

var (
	byID   = make(map[int]entry)
	bySlug = make(map[string]int)
	mu     sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if the ID or slug is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := byID[info.ID]; exists {
		panic(fmt.Sprintf("registry: game id %d already registered", info.ID))
	}
	if _, exists := bySlug[info.Slug]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.Slug))
	}
	byID[info.ID] = entry{info: info, factory: f}
	bySlug[info.Slug] = info.ID
}

// List returns information about all registered games, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(byID))
	for _, e := range byID {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id int, deps Deps) (Game, error) {
	mu.RLock()
	e, ok := byID[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game id %d", id)
	}
	return e.factory(deps.WithDefaults()), nil
}

// CreateBySlug instantiates a new game by its slug.
func CreateBySlug(slug string, deps Deps) (Game, error) {
	info, ok := Resolve(slug)
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", slug)
	}
	return Create(info.ID, deps)
}

// Lookup returns the metadata of a game. Unknown ids yield a placeholder
// titled UnknownTitle and ok is false.
func Lookup(id int) (info Info, ok bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := byID[id]
	if !ok {
		return Info{ID: id, Slug: "unknown-" + strconv.Itoa(id), Title: UnknownTitle}, false
	}
	return e.info, true
}

// Resolve finds a game by slug or by its decimal id.
func Resolve(arg string) (Info, bool) {
	mu.RLock()
	id, ok := bySlug[arg]
	mu.RUnlock()

	if !ok {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Info{}, false
		}
		id = n
	}
	return Lookup(id)
}

// OrderOf returns the score comparison direction of a game. Unknown games
// are higher-is-better.
func OrderOf(id int) scores.Order {
	info, _ := Lookup(id)
	return info.Order
}

// Exists checks if a game with the given slug is registered.
func Exists(slug string) bool {
	_, ok := Resolve(slug)
	return ok
}
