package ecs

// World is an isolation scope: it owns one Allocator, one table per component
// type and the scratch pool used by its queries. Worlds never share state.
// A World is not safe for concurrent use.
type World struct {
	entities     *Allocator
	registry     registry
	pool         *Pool
	destroyQueue []Entity
}

type options struct {
	entityCapacity int
	tableCapacity  int
	poolLimit      int
}

// Option configures a World.
type Option func(*options)

// WithEntityCapacity preallocates bookkeeping for n entities.
func WithEntityCapacity(n int) Option {
	return func(o *options) { o.entityCapacity = n }
}

// WithTableCapacity sets the initial row capacity of lazily created tables.
func WithTableCapacity(n int) Option {
	return func(o *options) { o.tableCapacity = n }
}

// WithPoolLimit caps the number of free sets and arrays the scratch pool keeps.
func WithPoolLimit(n int) Option {
	return func(o *options) { o.poolLimit = n }
}

func NewWorld(opts ...Option) *World {
	o := options{
		entityCapacity: 1024,
		tableCapacity:  64,
		poolLimit:      32,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &World{
		entities:     NewAllocator(o.entityCapacity),
		registry:     newRegistry(o.tableCapacity),
		pool:         NewPool(o.poolLimit),
		destroyQueue: make([]Entity, 0, 64),
	}
}

// EntityView is the read-only face of a world's allocator. Freeing ids goes
// through DestroyEntity so component rows are dropped with them.
type EntityView struct {
	a *Allocator
}

func (v EntityView) Len() int                  { return v.a.Len() }
func (v EntityView) Free() int                 { return v.a.Free() }
func (v EntityView) Cap() int                  { return v.a.Cap() }
func (v EntityView) IsAllocated(e Entity) bool { return v.a.IsAllocated(e) }
func (v EntityView) Each(fn func(Entity) bool) { v.a.Each(fn) }

func (w *World) Entities() EntityView { return EntityView{a: w.entities} }

func (w *World) Pool() *Pool { return w.pool }

func (w *World) CreateEntity() Entity {
	return w.entities.Allocate()
}

func (w *World) IsValid(e Entity) bool {
	return w.entities.IsAllocated(e)
}

// DestroyEntity drops every component of e and frees its id. Destroying a
// stale handle is a no-op that reports false.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.IsAllocated(e) {
		return false
	}
	w.registry.removeAll(e)
	return w.entities.Deallocate(e)
}

// MarkForDestruction queues e for the next FlushDestroyQueue. Systems use it
// to destroy entities found while iterating a table.
func (w *World) MarkForDestruction(e Entity) {
	w.destroyQueue = append(w.destroyQueue, e)
}

// FlushDestroyQueue destroys every queued entity and returns how many were
// still alive.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, e := range w.destroyQueue {
		if w.DestroyEntity(e) {
			n++
		}
	}
	clear(w.destroyQueue)
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// Clear invalidates every outstanding handle and empties every table.
// Tables stay registered and keep their capacity.
func (w *World) Clear() {
	w.registry.clear()
	w.entities.Clear()
	clear(w.destroyQueue)
	w.destroyQueue = w.destroyQueue[:0]
}

// Table returns the type-erased table for t, or nil if no value of that type
// was ever added.
func (w *World) Table(t ComponentType) Table {
	return w.registry.lookup(t)
}

// Tables returns every table in registration order.
func (w *World) Tables() []Table {
	return w.registry.tables
}

// EachEntity calls fn for every live entity in ascending id order.
func (w *World) EachEntity(fn func(Entity) bool) {
	w.entities.Each(fn)
}

// AppendEntities appends every live entity to dst.
func (w *World) AppendEntities(dst []Entity) []Entity {
	w.entities.Each(func(e Entity) bool {
		dst = append(dst, e)
		return true
	})
	return dst
}
