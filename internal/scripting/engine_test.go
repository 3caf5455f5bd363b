package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/l1jgo/ecscore/core/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type counter struct{ N int }

type marker struct{}

func newTestEngine(t *testing.T) (*Engine, *ecs.World, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	w := ecs.NewWorld()
	e := NewEngine(w, zap.New(core))
	t.Cleanup(e.Close)

	Bind(e, "counter", Codec[counter]{
		ToLua: func(L *lua.LState, v counter) lua.LValue {
			t := L.NewTable()
			t.RawSetString("n", lua.LNumber(v.N))
			return t
		},
		FromLua: func(L *lua.LState, v lua.LValue) (counter, error) {
			tbl, ok := v.(*lua.LTable)
			if !ok {
				return counter{}, errNotTable
			}
			return counter{N: int(lua.LVAsNumber(tbl.RawGetString("n")))}, nil
		},
	})
	Bind(e, "marker", Codec[marker]{
		ToLua:   func(L *lua.LState, _ marker) lua.LValue { return L.NewTable() },
		FromLua: func(*lua.LState, lua.LValue) (marker, error) { return marker{}, nil },
	})
	return e, w, logs
}

type testErr string

func (e testErr) Error() string { return string(e) }

const errNotTable = testErr("want table")

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestModuleRoundTrip(t *testing.T) {
	e, w, _ := newTestEngine(t)
	err := e.State().DoString(`
		local a = ecs.create()
		local b = ecs.create()
		ecs.add(a, "counter", {n = 1})
		ecs.add(b, "counter", {n = 2})
		ecs.add(b, "marker", {})
		ecs.set(a, "counter", {n = ecs.get(a, "counter").n + 10})
		assert(ecs.has(b, "marker"))
		assert(not ecs.has(a, "marker"))
		assert(ecs.count("counter") == 2)
		local plain = ecs.query({"counter"}, {"marker"})
		assert(#plain == 1 and plain[1].id == a.id)
		assert(ecs.remove(b, "marker"))
		assert(ecs.destroy(a))
		assert(not ecs.valid(a))
		assert(ecs.valid(b))
	`)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if n := ecs.StorageOf[counter](w).Len(); n != 1 {
		t.Fatalf("counter rows = %d", n)
	}
	if w.Pool().Outstanding() != 0 {
		t.Fatalf("query leaked %d pool items", w.Pool().Outstanding())
	}
}

func TestModuleErrors(t *testing.T) {
	tests := []struct{ name, code string }{
		{"unknown component", `ecs.add(ecs.create(), "nope", {})`},
		{"duplicate add", `local e = ecs.create(); ecs.add(e, "counter", {n=1}); ecs.add(e, "counter", {n=2})`},
		{"dead entity", `local e = ecs.create(); ecs.destroy(e); ecs.add(e, "counter", {n=1})`},
		{"bad entity", `ecs.valid({id = "x"})`},
		{"bad value", `ecs.add(ecs.create(), "counter", 5)`},
		{"unknown query type", `ecs.query({"nope"})`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t)
			if err := e.State().DoString(tt.code); err == nil {
				t.Fatal("script succeeded")
			}
		})
	}
}

func TestTickIsolatesFailingBehaviour(t *testing.T) {
	e, w, logs := newTestEngine(t)
	dir := t.TempDir()
	writeScript(t, dir, "a_broken.lua", `return { on_tick = function(dt) error("nope") end }`)
	writeScript(t, dir, "b_spawner.lua", `return { on_tick = function(dt)
		ecs.add(ecs.create(), "counter", {n = dt * 1000})
	end }`)
	writeScript(t, dir, "notes.txt", `not lua`)

	if err := e.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if e.Len() != 2 {
		t.Fatalf("Len = %d", e.Len())
	}
	if failed := e.Tick(20 * time.Millisecond); failed != 1 {
		t.Fatalf("Tick failed = %d", failed)
	}
	vals := ecs.GetAll[counter](w)
	if len(vals) != 1 || vals[0].N != 20 {
		t.Fatalf("counters = %v", vals)
	}
	if logs.FilterMessage("lua on_tick failed").Len() != 1 {
		t.Fatal("failure not logged")
	}
}

func TestLoadFileRejectsBadScripts(t *testing.T) {
	tests := []struct{ name, body string }{
		{"syntax", `return {`},
		{"runtime", `error("at load")`},
		{"no table", `return 5`},
		{"no on_tick", `return { tick = function() end }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t)
			path := writeScript(t, t.TempDir(), "s.lua", tt.body)
			if err := e.LoadFile(path); err == nil {
				t.Fatal("LoadFile succeeded")
			}
			if e.Len() != 0 {
				t.Fatal("bad script registered")
			}
		})
	}
}

func TestLoadDirMissing(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if err := e.LoadDir(filepath.Join(t.TempDir(), "none")); err != nil {
		t.Fatalf("LoadDir of missing dir: %v", err)
	}
}

func TestQueuedReloadAppliesOnTick(t *testing.T) {
	e, w, _ := newTestEngine(t)
	dir := t.TempDir()
	path := writeScript(t, dir, "s.lua", `return { on_tick = function() end }`)
	if err := e.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	writeScript(t, dir, "s.lua", `return { on_tick = function()
		ecs.add(ecs.create(), "marker", {})
	end }`)
	e.Tick(time.Millisecond)
	if ecs.StorageOf[marker](w).Len() != 0 {
		t.Fatal("reload applied without being queued")
	}

	e.Queue(path)
	e.Tick(time.Millisecond)
	if ecs.StorageOf[marker](w).Len() != 1 {
		t.Fatal("queued reload not applied")
	}

	// a broken edit keeps the previous version running
	writeScript(t, dir, "s.lua", `return {`)
	e.Queue(path)
	e.Tick(time.Millisecond)
	if ecs.StorageOf[marker](w).Len() != 2 {
		t.Fatal("broken reload replaced the running behaviour")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	e.Queue(path)
	e.Tick(time.Millisecond)
	if e.Len() != 0 {
		t.Fatal("deleted script still loaded")
	}
}

func TestSystemReportsFailures(t *testing.T) {
	e, _, _ := newTestEngine(t)
	path := writeScript(t, t.TempDir(), "s.lua", `return { on_tick = function() error("x") end }`)
	if err := e.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	s := NewSystem(e)
	if err := s.Update(time.Millisecond); err == nil {
		t.Fatal("Update hid the failure")
	}
}

func TestQueryReusedAcrossCalls(t *testing.T) {
	e, w, _ := newTestEngine(t)
	q := e.query
	err := e.State().DoString(`
		local a = ecs.create()
		local b = ecs.create()
		ecs.add(a, "counter", {n = 1})
		ecs.add(b, "counter", {n = 2})
		ecs.add(b, "marker", {})
		for i = 1, 3 do
			local plain = ecs.query({"counter"}, {"marker"})
			assert(#plain == 1 and plain[1].id == a.id, "counter without marker")
			local marked = ecs.query({"marker"})
			assert(#marked == 1 and marked[1].id == b.id, "marker only")
			local both = ecs.query({"counter", "marker"})
			assert(#both == 1 and both[1].id == b.id, "counter and marker")
		end
		local ok = pcall(ecs.query, {"nope"})
		assert(not ok)
		assert(#ecs.query({"counter"}) == 2, "query after a failed call")
	`)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if e.query != q {
		t.Fatal("ecs.query built a new Query")
	}
	if w.Pool().Outstanding() != 0 {
		t.Fatalf("Outstanding = %d", w.Pool().Outstanding())
	}
}
