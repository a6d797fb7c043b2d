// Package registry keeps the playable variants. Variants register a factory
// in init(), so the CLI, the local TUI and the SSH server can list and create
// them without knowing how each one is built.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Game is what the platform drives: one Step per tick, one Render per frame.
// Implementations hold pure simulation state and never touch the terminal.
type Game interface {
	// ID is the variant key used on the command line and in the replay archive.
	ID() string

	Title() string

	// Reset starts a fresh session. The seed in cfg fully determines the
	// piece order.
	Reset(cfg core.RuntimeConfig)

	// Step applies the frame's input in arrival order, then advances one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Describer is implemented by games that provide a one-line description.
type Describer interface {
	Description() string
}

// Configurable is implemented by games that take a puzzle configuration.
// Configure is called before Reset.
type Configurable interface {
	Configure(cfg config.BlocksConfig)
}

// Factory creates a new, not yet reset, game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a variant. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	factories[id] = f
	infos[id] = info
}

// List returns all registered variants sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a variant by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a variant is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// CreateWith instantiates a variant and hands it cfg if it is Configurable.
func CreateWith(id string, cfg config.BlocksConfig) (Game, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	if c, ok := g.(Configurable); ok {
		c.Configure(cfg)
	}
	return g, nil
}
