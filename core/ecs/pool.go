package ecs

import "math/bits"

// EntitySet is a set of entity handles. Sets rented from a Pool keep their
// buckets between uses.
type EntitySet map[Entity]struct{}

func (s EntitySet) Add(e Entity) { s[e] = struct{}{} }

func (s EntitySet) Has(e Entity) bool {
	_, ok := s[e]
	return ok
}

func (s EntitySet) Delete(e Entity) { delete(s, e) }

func (s EntitySet) Len() int { return len(s) }

func (s EntitySet) Clear() { clear(s) }

// Pool recycles the sets and arrays used by query execution so a warmed-up
// world runs queries without allocating. It has no locking; one pool serves
// one world on one goroutine.
//
// Every Rent must be paired with one Return. A missed Return only costs a
// fresh allocation later.
//
// FreeSets and FreeArrays stay unchanged across a Rent/Return round trip
// only once the pool is warm. A Rent that finds no free item allocates a new
// one, and its Return adds it to the free list, so the first round trip on
// a cold pool raises the count by one.
type Pool struct {
	sets        []EntitySet
	arrays      [][]Entity
	limit       int
	outstanding int
}

// NewPool returns a pool that keeps at most limit free items of each kind.
// limit <= 0 means unbounded.
func NewPool(limit int) *Pool {
	return &Pool{limit: limit}
}

func (p *Pool) RentSet() EntitySet {
	p.outstanding++
	if n := len(p.sets); n > 0 {
		s := p.sets[n-1]
		p.sets[n-1] = nil
		p.sets = p.sets[:n-1]
		return s
	}
	return make(EntitySet)
}

func (p *Pool) ReturnSet(s EntitySet) {
	if s == nil {
		return
	}
	p.outstanding--
	clear(s)
	if p.limit > 0 && len(p.sets) >= p.limit {
		return
	}
	p.sets = append(p.sets, s)
}

// RentArray returns an empty slice with capacity of at least minLen.
func (p *Pool) RentArray(minLen int) []Entity {
	p.outstanding++
	for i := len(p.arrays) - 1; i >= 0; i-- {
		a := p.arrays[i]
		if cap(a) < minLen {
			continue
		}
		last := len(p.arrays) - 1
		p.arrays[i] = p.arrays[last]
		p.arrays[last] = nil
		p.arrays = p.arrays[:last]
		return a[:0]
	}
	return make([]Entity, 0, arrayClass(minLen))
}

func (p *Pool) ReturnArray(a []Entity) {
	if a == nil {
		return
	}
	p.outstanding--
	if p.limit > 0 && len(p.arrays) >= p.limit {
		return
	}
	p.arrays = append(p.arrays, a[:0])
}

// WithSet rents a set for the duration of fn.
func (p *Pool) WithSet(fn func(EntitySet)) {
	s := p.RentSet()
	defer p.ReturnSet(s)
	fn(s)
}

// WithArray rents an array for the duration of fn. fn returns the slice it
// ended up with so a grown backing array goes back to the pool.
func (p *Pool) WithArray(minLen int, fn func([]Entity) []Entity) {
	a := p.RentArray(minLen)
	defer func() { p.ReturnArray(a) }()
	a = fn(a)
}

func (p *Pool) FreeSets() int { return len(p.sets) }

func (p *Pool) FreeArrays() int { return len(p.arrays) }

// Outstanding returns rents not yet returned.
func (p *Pool) Outstanding() int { return p.outstanding }

// Clear drops every free item.
func (p *Pool) Clear() {
	clear(p.sets)
	clear(p.arrays)
	p.sets = p.sets[:0]
	p.arrays = p.arrays[:0]
}

// arrayClass rounds n up to a power of two so arrays are reusable across
// queries of similar size.
func arrayClass(n int) int {
	if n <= minTableCapacity {
		return minTableCapacity
	}
	return 1 << bits.Len(uint(n-1))
}
