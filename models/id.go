package models

import "sync"

// A sequential id generator.
//
// Ids start at 1. Released ids are handed out again before fresh ones.
type SequentialIDGenerator struct {
	mutex     sync.Mutex
	currentID uint32
	released  map[uint32]struct{}
}

// New returns a sequential id.
func (g *SequentialIDGenerator) New() uint32 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	for id := range g.released {
		delete(g.released, id)
		return id
	}

	g.currentID++
	return g.currentID
}

// Release marks the given id as free. Ids that were never returned by New are
// ignored.
func (g *SequentialIDGenerator) Release(id uint32) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if id == 0 || id > g.currentID {
		return
	}

	if g.released == nil {
		g.released = make(map[uint32]struct{})
	}
	g.released[id] = struct{}{}
}

// Last returns the most recently allocated fresh id, 0 if none was allocated.
func (g *SequentialIDGenerator) Last() uint32 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.currentID
}
