// Package link keeps externally owned objects (scene nodes, sprites, network
// proxies) in step with a world's live entities without touching table
// internals.
package link

import (
	"fmt"

	"github.com/l1jgo/ecscore/core/ecs"
)

// Mirror maps live entities to external objects of type O.
type Mirror[O any] struct {
	objects map[ecs.Entity]O
	create  func(ecs.Entity) (O, error)
	drop    func(ecs.Entity, O)
	seen    map[ecs.Entity]struct{}
}

// NewMirror builds a Mirror. create builds the object for a newly seen
// entity; drop releases the object of an entity that died. drop may be nil.
func NewMirror[O any](create func(ecs.Entity) (O, error), drop func(ecs.Entity, O)) *Mirror[O] {
	return &Mirror[O]{
		objects: make(map[ecs.Entity]O),
		create:  create,
		drop:    drop,
		seen:    make(map[ecs.Entity]struct{}),
	}
}

// Attach links e to obj explicitly, replacing any previous object.
func (m *Mirror[O]) Attach(e ecs.Entity, obj O) {
	if old, ok := m.objects[e]; ok && m.drop != nil {
		m.drop(e, old)
	}
	m.objects[e] = obj
}

// Detach unlinks e and reports whether it was linked.
func (m *Mirror[O]) Detach(e ecs.Entity) bool {
	obj, ok := m.objects[e]
	if !ok {
		return false
	}
	delete(m.objects, e)
	if m.drop != nil {
		m.drop(e, obj)
	}
	return true
}

func (m *Mirror[O]) Lookup(e ecs.Entity) (O, bool) {
	obj, ok := m.objects[e]
	return obj, ok
}

func (m *Mirror[O]) Len() int { return len(m.objects) }

// Sync attaches objects for live entities not yet linked and detaches
// objects whose entity is no longer alive in w. It stops at the first create
// error; entities handled before the error stay linked.
func (m *Mirror[O]) Sync(w *ecs.World) (created, dropped int, err error) {
	clear(m.seen)
	w.EachEntity(func(e ecs.Entity) bool {
		m.seen[e] = struct{}{}
		if _, ok := m.objects[e]; ok {
			return true
		}
		obj, cerr := m.create(e)
		if cerr != nil {
			err = fmt.Errorf("link entity %s: %w", e, cerr)
			return false
		}
		m.objects[e] = obj
		created++
		return true
	})
	if err != nil {
		return created, 0, err
	}
	for e := range m.objects {
		if _, ok := m.seen[e]; ok {
			continue
		}
		if m.Detach(e) {
			dropped++
		}
	}
	return created, dropped, nil
}
