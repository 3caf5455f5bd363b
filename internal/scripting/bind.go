package scripting

import (
	"github.com/l1jgo/ecscore/core/ecs"
	lua "github.com/yuin/gopher-lua"
)

// Codec converts a component between Go and Lua.
type Codec[T any] struct {
	ToLua   func(L *lua.LState, v T) lua.LValue
	FromLua func(L *lua.LState, v lua.LValue) (T, error)
}

type binding struct {
	typ    ecs.ComponentType
	add    func(L *lua.LState, e ecs.Entity, v lua.LValue) error
	set    func(L *lua.LState, e ecs.Entity, v lua.LValue) error
	get    func(L *lua.LState, e ecs.Entity) (lua.LValue, bool)
	remove func(e ecs.Entity) bool
	count  func() int
}

// Bind exposes T to scripts under name.
func Bind[T any](e *Engine, name string, c Codec[T]) {
	w := e.world
	e.kinds[name] = &binding{
		typ: ecs.TypeOf[T](),
		add: func(L *lua.LState, ent ecs.Entity, v lua.LValue) error {
			val, err := c.FromLua(L, v)
			if err != nil {
				return err
			}
			return ecs.Add(w, ent, val)
		},
		set: func(L *lua.LState, ent ecs.Entity, v lua.LValue) error {
			val, err := c.FromLua(L, v)
			if err != nil {
				return err
			}
			return ecs.Set(w, ent, val)
		},
		get: func(L *lua.LState, ent ecs.Entity) (lua.LValue, bool) {
			val, ok := ecs.TryGet[T](w, ent)
			if !ok {
				return lua.LNil, false
			}
			return c.ToLua(L, val), true
		},
		remove: func(ent ecs.Entity) bool { return ecs.Remove[T](w, ent) },
		count:  func() int { return ecs.StorageOf[T](w).Len() },
	}
}

// Bound reports whether name has been bound.
func (e *Engine) Bound(name string) bool {
	_, ok := e.kinds[name]
	return ok
}
