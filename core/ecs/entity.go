package ecs

import "strconv"

// Entity is a generational handle. ID indexes per-world bookkeeping and
// Generation disambiguates reuse of the same ID. Equality of two handles says
// nothing about liveness; ask the owning World.
type Entity struct {
	ID         uint32
	Generation uint32
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.ID), 10) + ":" + strconv.FormatUint(uint64(e.Generation), 10)
}

type slot struct {
	generation uint32
	live       bool
}

// Allocator hands out entity handles with a free list of recycled ids.
// The stored generation of an id is bumped when the id is freed, so every
// copy of the old handle stays invalid after the id comes back.
type Allocator struct {
	slots    []slot
	freeList []uint32
	live     int
}

func NewAllocator(capacity int) *Allocator {
	return &Allocator{
		slots:    make([]slot, 0, capacity),
		freeList: make([]uint32, 0, capacity/4),
	}
}

// Allocate pops a freed id if one exists, otherwise mints the next id with
// generation 0.
func (a *Allocator) Allocate() Entity {
	a.live++
	if n := len(a.freeList); n > 0 {
		id := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		s := &a.slots[id]
		s.live = true
		return Entity{ID: id, Generation: s.generation}
	}
	id := uint32(len(a.slots))
	a.slots = append(a.slots, slot{live: true})
	return Entity{ID: id}
}

// Deallocate frees e. It reports false for stale or never-issued handles.
func (a *Allocator) Deallocate(e Entity) bool {
	if !a.IsAllocated(e) {
		return false
	}
	s := &a.slots[e.ID]
	s.generation++
	s.live = false
	a.freeList = append(a.freeList, e.ID)
	a.live--
	return true
}

func (a *Allocator) IsAllocated(e Entity) bool {
	if int(e.ID) >= len(a.slots) {
		return false
	}
	s := a.slots[e.ID]
	return s.live && s.generation == e.Generation
}

// Clear forgets every id. Handles issued before Clear must not be kept: the
// same (id, generation) pairs are issued again afterwards.
func (a *Allocator) Clear() {
	a.slots = a.slots[:0]
	a.freeList = a.freeList[:0]
	a.live = 0
}

// Len returns the number of live entities.
func (a *Allocator) Len() int { return a.live }

// Free returns the number of ids waiting on the free list.
func (a *Allocator) Free() int { return len(a.freeList) }

// Cap returns the number of ids minted since the last Clear.
func (a *Allocator) Cap() int { return len(a.slots) }

// Each calls fn for every live entity in ascending id order until fn
// returns false.
func (a *Allocator) Each(fn func(Entity) bool) {
	for id, s := range a.slots {
		if !s.live {
			continue
		}
		if !fn(Entity{ID: uint32(id), Generation: s.generation}) {
			return
		}
	}
}
