package ecs

// Query accumulates With and Without predicates and executes them against
// its world. A Query is reusable: after Execute, the next With or Without
// starts a fresh predicate set.
//
// The slice returned by Execute is backed by an array rented from the
// world's pool. It stays valid until the next Execute or Release.
type Query struct {
	world    *World
	with     []ComponentType
	without  []ComponentType
	withT    []Table
	withoutT []Table
	result   []Entity
	executed bool
}

func (w *World) Query() *Query {
	return &Query{
		world:    w,
		with:     make([]ComponentType, 0, 4),
		without:  make([]ComponentType, 0, 4),
		withT:    make([]Table, 0, 4),
		withoutT: make([]Table, 0, 4),
	}
}

// With requires the given component types. Repeating a type is a no-op.
func (q *Query) With(types ...ComponentType) *Query {
	q.restart()
	for _, t := range types {
		q.with = appendUnique(q.with, t)
	}
	return q
}

// Without excludes entities holding any of the given types.
func (q *Query) Without(types ...ComponentType) *Query {
	q.restart()
	for _, t := range types {
		q.without = appendUnique(q.without, t)
	}
	return q
}

func (q *Query) restart() {
	if !q.executed {
		return
	}
	q.with = q.with[:0]
	q.without = q.without[:0]
	q.executed = false
}

func appendUnique(ts []ComponentType, t ComponentType) []ComponentType {
	for _, have := range ts {
		if have == t {
			return ts
		}
	}
	return append(ts, t)
}

// Execute runs the predicates and returns the matching entities. With at
// least one With type the order is the first With type's dense order;
// Without-only queries return live entities by ascending id; a query with no
// predicates returns nothing.
func (q *Query) Execute() []Entity {
	q.Release()
	q.executed = true
	w := q.world

	clear(q.withoutT)
	q.withoutT = q.withoutT[:0]
	for _, t := range q.without {
		if tbl := w.registry.lookup(t); tbl != nil {
			q.withoutT = append(q.withoutT, tbl)
		}
	}

	switch {
	case len(q.with) == 0 && len(q.without) == 0:
		return nil
	case len(q.with) == 0:
		q.result = w.pool.RentArray(w.entities.Len())
		q.result = w.appendLacking(q.result, q.withoutT)
		return q.result
	}

	clear(q.withT)
	var ok bool
	q.withT, ok = w.lookupAll(q.withT[:0], q.with)
	if !ok {
		return nil
	}
	anchor := q.withT[0]
	q.result = w.pool.RentArray(anchor.Len())
	if len(q.withT) == 1 && len(q.withoutT) == 0 {
		q.result = append(q.result, anchor.Owners()...)
		return q.result
	}

	set := w.pool.RentSet()
	defer w.pool.ReturnSet(set)
	if !w.match(set, q.withT, q.withoutT) {
		return q.result
	}
	for _, e := range anchor.Owners() {
		if set.Has(e) {
			q.result = append(q.result, e)
		}
	}
	return q.result
}

// Release hands the last result array back to the pool. The slice returned
// by the previous Execute must not be used afterwards.
func (q *Query) Release() {
	if q.result == nil {
		return
	}
	q.world.pool.ReturnArray(q.result)
	q.result = nil
}

// Each executes the query and calls fn for every match until fn returns
// false. The result is released before Each returns, also on panic.
func (q *Query) Each(fn func(Entity) bool) {
	defer q.Release()
	for _, e := range q.Execute() {
		if !fn(e) {
			return
		}
	}
}

// Count executes the query and returns the number of matches.
func (q *Query) Count() int {
	defer q.Release()
	return len(q.Execute())
}

// Reset drops all predicates and releases the last result.
func (q *Query) Reset() {
	q.Release()
	q.with = q.with[:0]
	q.without = q.without[:0]
	q.executed = false
}
