package ecs

// View is a transactional copy of one table's live rows. Callers index the
// copy freely, add or remove components elsewhere while iterating, and Close
// writes back only the rows they touched, located by owning entity rather
// than by row position.
//
// Each table owns a single View whose buffers are reused, so at most one
// View per table is open at a time.
type View[T any] struct {
	store   *Storage[T]
	values  []T
	owners  []Entity
	touched []bool
	open    bool
}

// OpenView snapshots T's live rows. Opening a second View on the same table
// before closing the first panics.
func OpenView[T any](w *World) *View[T] {
	return storageFor[T](w).openView()
}

func (s *Storage[T]) openView() *View[T] {
	v := &s.view
	if v.open {
		panic("ecs: view already open on " + s.typ.String())
	}
	v.store = s
	v.open = true
	v.values = append(v.values[:0], s.values[:s.count]...)
	v.owners = append(v.owners[:0], s.owners[:s.count]...)
	if cap(v.touched) < s.count {
		v.touched = make([]bool, s.count, cap(v.values))
	} else {
		v.touched = v.touched[:s.count]
		clear(v.touched)
	}
	return v
}

// Len returns the number of rows captured when the view was opened.
func (v *View[T]) Len() int { return len(v.values) }

func (v *View[T]) Entity(i int) Entity { return v.owners[i] }

func (v *View[T]) At(i int) T { return v.values[i] }

// Ref returns a pointer to row i of the snapshot and marks it touched.
func (v *View[T]) Ref(i int) *T {
	v.touched[i] = true
	return &v.values[i]
}

func (v *View[T]) Put(i int, val T) {
	v.touched[i] = true
	v.values[i] = val
}

// Close writes touched rows back and returns how many were written. Rows
// whose entity no longer holds T are dropped. Closing a closed view is a
// no-op.
func (v *View[T]) Close() int {
	if !v.open {
		return 0
	}
	v.open = false
	written := 0
	for i, dirty := range v.touched {
		if dirty && v.store.Set(v.owners[i], v.values[i]) {
			written++
		}
	}
	clear(v.values)
	return written
}

// Mutate opens a View over T, runs fn and closes the view on every exit
// path, including panics.
func Mutate[T any](w *World, fn func(v *View[T]) error) error {
	v := OpenView[T](w)
	defer v.Close()
	return fn(v)
}
