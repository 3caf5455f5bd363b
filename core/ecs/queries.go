package ecs

// Cross-table set algebra. Results always follow the dense order of the
// first positively required table, never the order predicates were given.

// match leaves in set the entities present in every with table and absent
// from every without table. It reports false as soon as the result is empty.
// with must be non-empty and contain no nil tables; nil without tables are
// skipped.
func (w *World) match(set EntitySet, with, without []Table) bool {
	for _, t := range with {
		if t.Len() == 0 {
			return false
		}
	}
	base := with[0]
	for _, t := range with[1:] {
		if t.Len() < base.Len() {
			base = t
		}
	}
	base.FillSet(set)
	for _, t := range with {
		if t == base {
			continue
		}
		intersect(set, t)
		if len(set) == 0 {
			return false
		}
	}
	for _, t := range without {
		if t == nil || t.Len() == 0 {
			continue
		}
		subtract(set, t)
		if len(set) == 0 {
			return false
		}
	}
	return true
}

func intersect(set EntitySet, t Table) {
	for e := range set {
		if !t.Has(e) {
			delete(set, e)
		}
	}
}

func subtract(set EntitySet, t Table) {
	if t.Len() < len(set) {
		for _, e := range t.Owners() {
			delete(set, e)
		}
		return
	}
	for e := range set {
		if t.Has(e) {
			delete(set, e)
		}
	}
}

// appendLacking appends every live entity that holds none of the without
// tables' components.
func (w *World) appendLacking(dst []Entity, without []Table) []Entity {
	w.entities.Each(func(e Entity) bool {
		for _, t := range without {
			if t != nil && t.Has(e) {
				return true
			}
		}
		dst = append(dst, e)
		return true
	})
	return dst
}

// lookupAll resolves types into tables, appending to dst. It reports false
// if any type has no table yet.
func (w *World) lookupAll(dst []Table, types []ComponentType) ([]Table, bool) {
	for _, t := range types {
		tbl := w.registry.lookup(t)
		if tbl == nil {
			return dst, false
		}
		dst = append(dst, tbl)
	}
	return dst, true
}

// ComponentsWith returns the T values of entities that also hold every type
// in others, in T's dense order.
func ComponentsWith[T any](w *World, others ...ComponentType) []T {
	return AppendComponentsWith[T](nil, w, others...)
}

// AppendComponentsWith is ComponentsWith appending into dst. With a reused
// dst it does not allocate once the world's pool is warm.
func AppendComponentsWith[T any](dst []T, w *World, others ...ComponentType) []T {
	var buf [8]Table
	s := storageFor[T](w)
	with, ok := w.lookupAll(append(buf[:0], s), others)
	if !ok {
		return dst
	}
	return appendMatching(dst, w, s, with, nil)
}

// ComponentsWithout returns the T values of entities holding none of the
// types in without, in T's dense order.
func ComponentsWithout[T any](w *World, without ...ComponentType) []T {
	return AppendComponentsWithout[T](nil, w, without...)
}

func AppendComponentsWithout[T any](dst []T, w *World, without ...ComponentType) []T {
	var withBuf [1]Table
	var withoutBuf [8]Table
	s := storageFor[T](w)
	excluded := withoutBuf[:0]
	for _, t := range without {
		if tbl := w.registry.lookup(t); tbl != nil {
			excluded = append(excluded, tbl)
		}
	}
	return appendMatching(dst, w, s, append(withBuf[:0], s), excluded)
}

func appendMatching[T any](dst []T, w *World, s *Storage[T], with, without []Table) []T {
	values, owners := s.AllLive()
	if len(with) == 1 && len(without) == 0 {
		return append(dst, values...)
	}
	set := w.pool.RentSet()
	defer w.pool.ReturnSet(set)
	if !w.match(set, with, without) {
		return dst
	}
	for i, e := range owners {
		if set.Has(e) {
			dst = append(dst, values[i])
		}
	}
	return dst
}
