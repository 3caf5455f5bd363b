package ecs

import "reflect"

// registry tracks every table of a world, keyed by component type, in
// registration order so iteration is deterministic.
type registry struct {
	byType   map[reflect.Type]Table
	tables   []Table
	capacity int
}

func newRegistry(capacity int) registry {
	return registry{
		byType:   make(map[reflect.Type]Table, 16),
		tables:   make([]Table, 0, 16),
		capacity: capacity,
	}
}

func (r *registry) lookup(t ComponentType) Table {
	return r.byType[t.t]
}

func (r *registry) register(t ComponentType, tbl Table) {
	r.byType[t.t] = tbl
	r.tables = append(r.tables, tbl)
}

// removeAll clears e from every registered table and reports how many rows
// were dropped.
func (r *registry) removeAll(e Entity) int {
	n := 0
	for _, tbl := range r.tables {
		if tbl.TryRemoveForEntity(e) {
			n++
		}
	}
	return n
}

func (r *registry) clear() {
	for _, tbl := range r.tables {
		tbl.Clear()
	}
}

// storageFor returns the table for T, creating it on first reference.
func storageFor[T any](w *World) *Storage[T] {
	t := reflect.TypeFor[T]()
	if tbl, ok := w.registry.byType[t]; ok {
		return tbl.(*Storage[T])
	}
	s := NewStorage[T](w.registry.capacity)
	w.registry.register(ComponentType{t: t}, s)
	return s
}
