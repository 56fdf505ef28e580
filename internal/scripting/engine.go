// Package scripting runs pilots written in Lua. A script defines a global
// decide(state) function that returns true to flap.
package scripting

import (
	"fmt"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// PilotID is the registered name of the scripted pilot.
const PilotID = "lua"

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

const decideFunc = "decide"

func init() {
	registry.Register(registry.PilotInfo{
		ID:          PilotID,
		Title:       "Lua script",
		Description: "calls decide(state) from the file given by --script",
	}, func(opts registry.Options) (registry.Pilot, error) {
		if opts.Script == "" {
			return nil, fmt.Errorf("scripting: lua pilot needs a script path")
		}
		return LoadFile(opts.Script, opts.Config, opts.Logger)
	})
}

// Engine wraps a single gopher-lua VM running one pilot script.
// Single-goroutine access only; the sim.Driver calls Decide from its tick.
type Engine struct {
	vm      *lua.LState
	log     *log.Logger
	physics *lua.LTable
	failed  bool // An error has been logged; later failures stay quiet
}

func newEngine(cfg config.FlappyConfig, logger *log.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	physics := vm.NewTable()
	physics.RawSetString("gravity", lua.LNumber(cfg.Physics.Gravity))
	physics.RawSetString("jump_velocity", lua.LNumber(cfg.Physics.JumpVelocity))
	physics.RawSetString("speed", lua.LNumber(cfg.Obstacles.Speed))

	return &Engine{vm: vm, log: logger, physics: physics}
}

// LoadFile creates an engine and runs the script at path.
func LoadFile(path string, cfg config.FlappyConfig, logger *log.Logger) (*Engine, error) {
	e := newEngine(cfg, logger)
	if err := e.vm.DoFile(path); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("scripting: load %s: %w", path, err)
	}
	e.log.Debug("loaded lua pilot", "file", path)
	e.checkDecide()
	return e, nil
}

// LoadString creates an engine from script source.
func LoadString(src string, cfg config.FlappyConfig, logger *log.Logger) (*Engine, error) {
	e := newEngine(cfg, logger)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("scripting: load: %w", err)
	}
	e.checkDecide()
	return e, nil
}

func (e *Engine) checkDecide() {
	if _, ok := e.vm.GetGlobal(decideFunc).(*lua.LFunction); !ok {
		e.log.Warn("lua pilot defines no decide function, it will never flap")
	}
}

// ID returns the registered pilot name.
func (e *Engine) ID() string {
	return PilotID
}

// Decide calls decide(state). A missing function or a runtime error counts
// as "do not flap".
func (e *Engine) Decide(snap flappy.Snapshot) bool {
	fn, ok := e.vm.GetGlobal(decideFunc).(*lua.LFunction)
	if !ok {
		return false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, e.stateTable(snap)); err != nil {
		if !e.failed {
			e.log.Error("lua decide error", "tick", snap.Tick, "error", err)
			e.failed = true
		}
		return false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(result)
}

// stateTable packs a snapshot for the script.
func (e *Engine) stateTable(snap flappy.Snapshot) *lua.LTable {
	geo := snap.Geometry
	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(snap.Tick))
	t.RawSetString("mode", lua.LString(snap.Mode.String()))
	t.RawSetString("score", lua.LNumber(snap.Score))
	t.RawSetString("best", lua.LNumber(snap.Best))
	t.RawSetString("physics", e.physics)

	body := e.vm.NewTable()
	body.RawSetString("x", lua.LNumber(snap.Body.X))
	body.RawSetString("y", lua.LNumber(snap.Body.Y))
	body.RawSetString("velocity", lua.LNumber(snap.Body.Velocity))
	body.RawSetString("size", lua.LNumber(snap.Body.Size))
	t.RawSetString("body", body)

	world := e.vm.NewTable()
	world.RawSetString("width", lua.LNumber(geo.Width))
	world.RawSetString("height", lua.LNumber(geo.Height))
	world.RawSetString("ground_y", lua.LNumber(geo.GroundY()))
	world.RawSetString("gap", lua.LNumber(geo.Gap))
	world.RawSetString("obstacle_width", lua.LNumber(geo.ObstacleWidth))
	t.RawSetString("world", world)

	obstacles := e.vm.NewTable()
	for _, o := range snap.Obstacles {
		obstacles.Append(e.obstacleTable(o, geo))
	}
	t.RawSetString("obstacles", obstacles)

	if next, ok := snap.NextObstacle(); ok {
		t.RawSetString("next", e.obstacleTable(next, geo))
	}
	return t
}

func (e *Engine) obstacleTable(o flappy.ObstacleView, geo flappy.Geometry) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("x", lua.LNumber(o.X))
	t.RawSetString("gap_y", lua.LNumber(o.GapY))
	t.RawSetString("gap_bottom", lua.LNumber(o.GapY+geo.Gap))
	t.RawSetString("scored", lua.LBool(o.Scored))
	return t
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
