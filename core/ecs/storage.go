package ecs

import "iter"

// Table is the narrow, non-generic face every Storage exposes so the World
// can treat heterogeneous tables uniformly (destroy, queries, stats).
type Table interface {
	Type() ComponentType
	// TryRemoveForEntity removes e's row if present.
	TryRemoveForEntity(e Entity) bool
	Has(e Entity) bool
	Len() int
	Cap() int
	// Owners returns the live owner column. The slice aliases table memory.
	Owners() []Entity
	FillSet(set EntitySet)
	Clear()
}

const minTableCapacity = 8

var _ Table = (*Storage[struct{}])(nil)

// Storage is the dense table of one component type: values[i] belongs to
// owners[i] and index maps an owner back to its row. Rows [0, count) are
// live; rows beyond count are zeroed and never read.
type Storage[T any] struct {
	typ    ComponentType
	values []T
	owners []Entity
	index  map[Entity]int
	count  int

	view View[T]
}

func NewStorage[T any](capacity int) *Storage[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Storage[T]{
		typ:    TypeOf[T](),
		values: make([]T, capacity),
		owners: make([]Entity, capacity),
		index:  make(map[Entity]int, capacity),
	}
}

func (s *Storage[T]) Type() ComponentType { return s.typ }

// Add appends a row for e. Adding a second value for the same entity is an
// error; use Set to replace.
func (s *Storage[T]) Add(e Entity, v T) error {
	if _, exists := s.index[e]; exists {
		return duplicateComponent(e, s.typ)
	}
	if s.count == len(s.values) {
		s.grow()
	}
	s.values[s.count] = v
	s.owners[s.count] = e
	s.index[e] = s.count
	s.count++
	return nil
}

func (s *Storage[T]) grow() {
	newCap := max(2*len(s.values), minTableCapacity)
	values := make([]T, newCap)
	owners := make([]Entity, newCap)
	copy(values, s.values[:s.count])
	copy(owners, s.owners[:s.count])
	s.values = values
	s.owners = owners
}

// Set replaces the value of an existing row. It never inserts.
func (s *Storage[T]) Set(e Entity, v T) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	s.values[i] = v
	return true
}

// Remove swap-removes e's row: the last live row moves into the hole, so
// row order is not stable across removals.
func (s *Storage[T]) Remove(e Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	last := s.count - 1
	if i != last {
		s.values[i] = s.values[last]
		s.owners[i] = s.owners[last]
		s.index[s.owners[i]] = i
	}
	delete(s.index, e)
	var zero T
	s.values[last] = zero
	s.owners[last] = Entity{}
	s.count--
	return true
}

func (s *Storage[T]) TryRemoveForEntity(e Entity) bool {
	return s.Remove(e)
}

func (s *Storage[T]) Has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

func (s *Storage[T]) TryGet(e Entity) (T, bool) {
	if i, ok := s.index[e]; ok {
		return s.values[i], true
	}
	var zero T
	return zero, false
}

// Ref returns a pointer to e's row. It is invalidated by the next Add,
// Remove or Clear on this table.
func (s *Storage[T]) Ref(e Entity) (*T, bool) {
	if i, ok := s.index[e]; ok {
		return &s.values[i], true
	}
	return nil, false
}

func (s *Storage[T]) GetAt(i int) (T, error) {
	if i < 0 || i >= s.count {
		var zero T
		return zero, indexOutOfRange(i, s.count, s.typ)
	}
	return s.values[i], nil
}

func (s *Storage[T]) EntityAt(i int) (Entity, error) {
	if i < 0 || i >= s.count {
		return Entity{}, indexOutOfRange(i, s.count, s.typ)
	}
	return s.owners[i], nil
}

// AllLive returns zero-copy views of the live value and owner columns.
func (s *Storage[T]) AllLive() ([]T, []Entity) {
	return s.values[:s.count:s.count], s.owners[:s.count:s.count]
}

func (s *Storage[T]) Owners() []Entity {
	return s.owners[:s.count:s.count]
}

// All yields every live row in dense order. Mutating the table while ranging
// is undefined; use a View for that.
func (s *Storage[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(s.owners[i], &s.values[i]) {
				return
			}
		}
	}
}

// EntitySet materialises the owner set into a freshly allocated set.
func (s *Storage[T]) EntitySet() EntitySet {
	set := make(EntitySet, s.count)
	s.FillSet(set)
	return set
}

func (s *Storage[T]) FillSet(set EntitySet) {
	for _, e := range s.owners[:s.count] {
		set[e] = struct{}{}
	}
}

func (s *Storage[T]) Len() int { return s.count }

func (s *Storage[T]) Cap() int { return len(s.values) }

func (s *Storage[T]) Clear() {
	clear(s.values[:s.count])
	clear(s.owners[:s.count])
	clear(s.index)
	s.count = 0
}
