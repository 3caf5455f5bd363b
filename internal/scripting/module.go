package scripting

import (
	"github.com/l1jgo/ecscore/core/ecs"
	lua "github.com/yuin/gopher-lua"
)

// openModule installs the global ecs table.
func (e *Engine) openModule() {
	mod := e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"create":  e.luaCreate,
		"destroy": e.luaDestroy,
		"valid":   e.luaValid,
		"add":     e.luaAdd,
		"remove":  e.luaRemove,
		"get":     e.luaGet,
		"set":     e.luaSet,
		"has":     e.luaHas,
		"count":   e.luaCount,
		"query":   e.luaQuery,
	})
	e.vm.SetGlobal("ecs", mod)
}

// PushEntity converts an entity handle to its {id=, gen=} table.
func PushEntity(L *lua.LState, ent ecs.Entity) *lua.LTable {
	t := L.CreateTable(0, 2)
	t.RawSetString("id", lua.LNumber(ent.ID))
	t.RawSetString("gen", lua.LNumber(ent.Generation))
	return t
}

func checkEntity(L *lua.LState, n int) ecs.Entity {
	t := L.CheckTable(n)
	id, ok1 := t.RawGetString("id").(lua.LNumber)
	gen, ok2 := t.RawGetString("gen").(lua.LNumber)
	if !ok1 || !ok2 {
		L.ArgError(n, "entity table needs numeric id and gen")
	}
	return ecs.Entity{ID: uint32(id), Generation: uint32(gen)}
}

func (e *Engine) checkKind(L *lua.LState, n int) *binding {
	name := L.CheckString(n)
	b, ok := e.kinds[name]
	if !ok {
		L.ArgError(n, "unknown component "+name)
	}
	return b
}

func (e *Engine) luaCreate(L *lua.LState) int {
	L.Push(PushEntity(L, e.world.CreateEntity()))
	return 1
}

func (e *Engine) luaDestroy(L *lua.LState) int {
	L.Push(lua.LBool(e.world.DestroyEntity(checkEntity(L, 1))))
	return 1
}

func (e *Engine) luaValid(L *lua.LState) int {
	L.Push(lua.LBool(e.world.IsValid(checkEntity(L, 1))))
	return 1
}

func (e *Engine) luaAdd(L *lua.LState) int {
	ent := checkEntity(L, 1)
	b := e.checkKind(L, 2)
	if err := b.add(L, ent, L.Get(3)); err != nil {
		L.RaiseError("ecs.add: %v", err)
	}
	return 0
}

func (e *Engine) luaSet(L *lua.LState) int {
	ent := checkEntity(L, 1)
	b := e.checkKind(L, 2)
	if err := b.set(L, ent, L.Get(3)); err != nil {
		L.RaiseError("ecs.set: %v", err)
	}
	return 0
}

func (e *Engine) luaRemove(L *lua.LState) int {
	ent := checkEntity(L, 1)
	b := e.checkKind(L, 2)
	L.Push(lua.LBool(b.remove(ent)))
	return 1
}

func (e *Engine) luaGet(L *lua.LState) int {
	ent := checkEntity(L, 1)
	b := e.checkKind(L, 2)
	v, _ := b.get(L, ent)
	L.Push(v)
	return 1
}

func (e *Engine) luaHas(L *lua.LState) int {
	ent := checkEntity(L, 1)
	b := e.checkKind(L, 2)
	_, ok := b.get(L, ent)
	L.Push(lua.LBool(ok))
	return 1
}

func (e *Engine) luaCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.checkKind(L, 1).count()))
	return 1
}

// query(with_list[, without_list]) returns an array of entity tables.
func (e *Engine) luaQuery(L *lua.LState) int {
	q := e.query
	q.Reset()
	defer q.Release()

	with := L.CheckTable(1)
	with.ForEach(func(_, v lua.LValue) {
		b, ok := e.kinds[v.String()]
		if !ok {
			L.ArgError(1, "unknown component "+v.String())
		}
		q.With(b.typ)
	})
	if without, ok := L.Get(2).(*lua.LTable); ok {
		without.ForEach(func(_, v lua.LValue) {
			b, ok := e.kinds[v.String()]
			if !ok {
				L.ArgError(2, "unknown component "+v.String())
			}
			q.Without(b.typ)
		})
	}

	res := q.Execute()
	out := L.CreateTable(len(res), 0)
	for _, ent := range res {
		out.Append(PushEntity(L, ent))
	}
	L.Push(out)
	return 1
}
