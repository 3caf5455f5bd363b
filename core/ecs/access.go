package ecs

// Typed routing to the per-type tables. Go methods cannot take type
// parameters, so these are package functions taking the world first.

// StorageOf returns T's table, creating it on first use.
func StorageOf[T any](w *World) *Storage[T] {
	return storageFor[T](w)
}

// Add attaches v to e. e must be alive and must not already hold a T.
func Add[T any](w *World, e Entity, v T) error {
	if !w.entities.IsAllocated(e) {
		return invalidEntity(e, TypeOf[T]())
	}
	return storageFor[T](w).Add(e, v)
}

// Set replaces e's existing T.
func Set[T any](w *World, e Entity, v T) error {
	if !w.entities.IsAllocated(e) {
		return invalidEntity(e, TypeOf[T]())
	}
	s := storageFor[T](w)
	if !s.Set(e, v) {
		return componentNotFound(e, s.typ)
	}
	return nil
}

// Remove detaches e's T. It reports false when there was nothing to remove.
func Remove[T any](w *World, e Entity) bool {
	if !w.entities.IsAllocated(e) {
		return false
	}
	return storageFor[T](w).Remove(e)
}

// Get returns e's T or an error wrapping ErrInvalidEntity or
// ErrComponentNotFound. Prefer TryGet in hot loops.
func Get[T any](w *World, e Entity) (T, error) {
	if !w.entities.IsAllocated(e) {
		var zero T
		return zero, invalidEntity(e, TypeOf[T]())
	}
	s := storageFor[T](w)
	v, ok := s.TryGet(e)
	if !ok {
		return v, componentNotFound(e, s.typ)
	}
	return v, nil
}

func TryGet[T any](w *World, e Entity) (T, bool) {
	return storageFor[T](w).TryGet(e)
}

// Ref returns a pointer into e's T row, valid until the next structural
// change of that table.
func Ref[T any](w *World, e Entity) (*T, bool) {
	return storageFor[T](w).Ref(e)
}

func Has[T any](w *World, e Entity) bool {
	return storageFor[T](w).Has(e)
}

// GetAll returns the live T values in dense order without copying.
func GetAll[T any](w *World) []T {
	values, _ := storageFor[T](w).AllLive()
	return values
}
