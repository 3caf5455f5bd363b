/*
Package ecs is a sparse-set Entity Component System core.

Entities are generational handles issued by a per-world Allocator. Each
component type lives in its own dense Storage table with O(1) add, swap-remove
and lookup. Queries combine With and Without predicates with set algebra over
those tables, using scratch sets and arrays from the world's Pool so that a
warmed-up world queries without allocating.

Basic usage:

	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, Position{X: 1})
	_ = ecs.Add(w, e, Velocity{X: 2})

	q := w.Query().With(ecs.TypeOf[Position](), ecs.TypeOf[Velocity]())
	for _, e := range q.Execute() {
		p, _ := ecs.Ref[Position](w, e)
		v, _ := ecs.TryGet[Velocity](w, e)
		p.X += v.X
	}
	q.Release()

Mutating a table while iterating its dense rows goes through a View:

	_ = ecs.Mutate(w, func(v *ecs.View[Position]) error {
		for i := 0; i < v.Len(); i++ {
			v.Ref(i).X++
		}
		return nil
	})

A World is not safe for concurrent use.
*/
package ecs
