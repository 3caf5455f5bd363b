package sim

import (
	"fmt"

	"github.com/l1jgo/ecscore/internal/scene"
	"github.com/l1jgo/ecscore/internal/scripting"
	lua "github.com/yuin/gopher-lua"
)

// RegisterScene makes the demo components spawnable from scene files.
func RegisterScene(r *scene.Registry) {
	scene.Register[Position](r, "position")
	scene.Register[Velocity](r, "velocity")
	scene.Register[Health](r, "health")
	scene.Register[Lifetime](r, "lifetime")
	scene.Register[Dead](r, "dead")
}

// BindScripts exposes the demo components to Lua under the same names the
// scene files use.
func BindScripts(e *scripting.Engine) {
	scripting.Bind(e, "position", scripting.Codec[Position]{
		ToLua: func(L *lua.LState, v Position) lua.LValue {
			return fields(L, "x", v.X, "y", v.Y)
		},
		FromLua: func(L *lua.LState, v lua.LValue) (Position, error) {
			x, y, err := vec(v)
			return Position{X: x, Y: y}, err
		},
	})
	scripting.Bind(e, "velocity", scripting.Codec[Velocity]{
		ToLua: func(L *lua.LState, v Velocity) lua.LValue {
			return fields(L, "x", v.X, "y", v.Y)
		},
		FromLua: func(L *lua.LState, v lua.LValue) (Velocity, error) {
			x, y, err := vec(v)
			return Velocity{X: x, Y: y}, err
		},
	})
	scripting.Bind(e, "health", scripting.Codec[Health]{
		ToLua: func(L *lua.LState, v Health) lua.LValue {
			return fields(L, "amount", float64(v.Amount), "max", float64(v.Max))
		},
		FromLua: func(L *lua.LState, v lua.LValue) (Health, error) {
			t, ok := v.(*lua.LTable)
			if !ok {
				return Health{}, fmt.Errorf("health: want table, got %s", v.Type())
			}
			return Health{
				Amount: int(lua.LVAsNumber(t.RawGetString("amount"))),
				Max:    int(lua.LVAsNumber(t.RawGetString("max"))),
			}, nil
		},
	})
	scripting.Bind(e, "lifetime", scripting.Codec[Lifetime]{
		ToLua: func(L *lua.LState, v Lifetime) lua.LValue {
			return fields(L, "ticks", float64(v.Ticks))
		},
		FromLua: func(L *lua.LState, v lua.LValue) (Lifetime, error) {
			t, ok := v.(*lua.LTable)
			if !ok {
				return Lifetime{}, fmt.Errorf("lifetime: want table, got %s", v.Type())
			}
			return Lifetime{Ticks: int(lua.LVAsNumber(t.RawGetString("ticks")))}, nil
		},
	})
	scripting.Bind(e, "dead", scripting.Codec[Dead]{
		ToLua:   func(L *lua.LState, _ Dead) lua.LValue { return L.NewTable() },
		FromLua: func(*lua.LState, lua.LValue) (Dead, error) { return Dead{}, nil },
	})
}

// fields builds a table from alternating key, value pairs.
func fields(L *lua.LState, kv ...any) *lua.LTable {
	t := L.CreateTable(0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		t.RawSetString(kv[i].(string), lua.LNumber(kv[i+1].(float64)))
	}
	return t
}

func vec(v lua.LValue) (x, y float64, err error) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return 0, 0, fmt.Errorf("want {x=, y=} table, got %s", v.Type())
	}
	return float64(lua.LVAsNumber(t.RawGetString("x"))), float64(lua.LVAsNumber(t.RawGetString("y"))), nil
}
