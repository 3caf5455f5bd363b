package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/l1jgo/ecscore/core/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM bound to one world.
// Single-goroutine access only (tick loop). Watch is the only method that may
// run elsewhere; it hands paths to the tick goroutine through a queue.
type Engine struct {
	vm    *lua.LState
	world *ecs.World
	log   *zap.Logger

	kinds      map[string]*binding
	behaviours map[string]*behaviour
	order      []string
	query      *ecs.Query // reused by ecs.query

	mu      sync.Mutex
	pending map[string]struct{}
}

type behaviour struct {
	path   string
	onTick *lua.LFunction
	fails  int
}

// NewEngine creates a Lua VM and installs the ecs module.
func NewEngine(world *ecs.World, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:         vm,
		world:      world,
		log:        log,
		kinds:      make(map[string]*binding),
		behaviours: make(map[string]*behaviour),
		pending:    make(map[string]struct{}),
		query:      world.Query(),
	}
	e.openModule()
	return e
}

func (e *Engine) Close() { e.vm.Close() }

// State exposes the VM for tests and host-side helpers.
func (e *Engine) State() *lua.LState { return e.vm }

// LoadDir loads every .lua file in dir as a behaviour. A missing dir is not
// an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile runs path and registers the table it returns. Reloading a path
// replaces its previous behaviour.
func (e *Engine) LoadFile(path string) error {
	fn, err := e.vm.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, 1, nil); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return fmt.Errorf("script %s: must return a table, got %s", path, ret.Type())
	}
	onTick, ok := tbl.RawGetString("on_tick").(*lua.LFunction)
	if !ok {
		return fmt.Errorf("script %s: missing on_tick function", path)
	}
	if _, exists := e.behaviours[path]; !exists {
		e.order = append(e.order, path)
		sort.Strings(e.order)
	}
	e.behaviours[path] = &behaviour{path: path, onTick: onTick}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// Unload drops the behaviour loaded from path.
func (e *Engine) Unload(path string) bool {
	if _, ok := e.behaviours[path]; !ok {
		return false
	}
	delete(e.behaviours, path)
	for i, p := range e.order {
		if p == path {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of loaded behaviours.
func (e *Engine) Len() int { return len(e.behaviours) }

// Tick applies queued reloads, then calls on_tick(dt) on every behaviour in
// path order. A failing behaviour is logged and skipped; the count of
// failures is returned.
func (e *Engine) Tick(dt time.Duration) int {
	e.applyReloads()

	failed := 0
	for _, path := range e.order {
		b := e.behaviours[path]
		err := e.vm.CallByParam(lua.P{
			Fn:      b.onTick,
			NRet:    0,
			Protect: true,
		}, lua.LNumber(dt.Seconds()))
		if err != nil {
			b.fails++
			failed++
			e.log.Warn("lua on_tick failed",
				zap.String("file", path),
				zap.Int("failures", b.fails),
				zap.Error(err))
		}
	}
	return failed
}

// Queue marks path for reload at the next Tick. Safe from any goroutine.
func (e *Engine) Queue(path string) {
	e.mu.Lock()
	e.pending[path] = struct{}{}
	e.mu.Unlock()
}

func (e *Engine) applyReloads() {
	e.mu.Lock()
	if len(e.pending) == 0 {
		e.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(e.pending))
	for p := range e.pending {
		paths = append(paths, p)
	}
	clear(e.pending)
	e.mu.Unlock()

	sort.Strings(paths)
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			if e.Unload(p) {
				e.log.Info("lua script removed", zap.String("file", p))
			}
			continue
		}
		if err := e.LoadFile(p); err != nil {
			// Keep the previous version running.
			e.log.Warn("lua reload failed", zap.String("file", p), zap.Error(err))
			continue
		}
		e.log.Info("lua script reloaded", zap.String("file", p))
	}
}
