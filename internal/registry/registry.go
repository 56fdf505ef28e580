// Package registry provides a global registry for pilot factories.
// Pilots register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Pilot is an input source that watches the world and decides when to flap.
// Pilots contain pure decision logic; the sim.Driver calls Decide once per
// running tick and turns a true result into a flap command.
type Pilot interface {
	// ID returns the registered name (e.g., "bot", "lua").
	ID() string

	// Decide reports whether the body should flap now.
	Decide(snap flappy.Snapshot) bool
}

// Closer is implemented by pilots holding resources such as a script VM.
type Closer interface {
	Close()
}

// Options carries what a factory may need to build a pilot.
type Options struct {
	Config config.FlappyConfig
	Script string // Path to a script file, for scripted pilots
	Logger *log.Logger
}

// PilotInfo contains metadata about a registered pilot.
type PilotInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new pilot instance.
type Factory func(opts Options) (Pilot, error)

type entry struct {
	info    PilotInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a pilot factory to the registry.
// Typically called from a pilot package's init() function.
// Panics if a pilot with the same ID is already registered.
func Register(info PilotInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: pilot %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered pilots, sorted by ID.
func List() []PilotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PilotInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a pilot by its ID.
// Returns an error if the ID is not registered or the factory fails.
func Create(id string, opts Options) (Pilot, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pilot %q", id)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	p, err := e.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create pilot %q: %w", id, err)
	}
	return p, nil
}

// Exists checks if a pilot with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
