// Package registry holds the widgets a host can launch.
// Widgets register themselves in init() functions, so hosts discover them
// without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/flappyshell/internal/core"
)

// Game is the interface every launchable widget implements.
// Widgets contain pure logic; the loop controller handles timing, input and display.
type Game interface {
	// ID returns a unique identifier, also used as the shell command name.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	Reset()

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render returns the current state as display text.
	Render() string

	// Palette describes how hosts may color the rendered text.
	Palette() core.Palette

	// State returns the current game state.
	State() core.GameState
}

// Info contains metadata about a registered widget.
type Info struct {
	ID    string
	Title string
}

// Factory creates a new widget instance for the given runtime config.
type Factory func(cfg core.RuntimeConfig) (Game, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a widget factory to the registry.
// Panics if the ID is empty or already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: empty widget id")
	}
	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: widget %q already registered", info.ID))
	}

	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns all registered widgets, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a widget by its ID.
func Create(id string, cfg core.RuntimeConfig) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown widget %q", id)
	}

	g, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a widget with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
