package spatial

import "github.com/lixenwraith/chunkgrid/core"

// HandleSet is a dense handle list with a key index for O(1) membership
// Removal swaps with the last element, so iteration order is not stable across removals
type HandleSet struct {
	items []core.Handle
	slots map[uint32]int
}

// NewHandleSet creates a set with preallocated capacity
func NewHandleSet(capacity int) *HandleSet {
	return &HandleSet{
		items: make([]core.Handle, 0, capacity),
		slots: make(map[uint32]int, capacity),
	}
}

// Add appends h unless already present
func (s *HandleSet) Add(h core.Handle) {
	if s.slots == nil {
		s.slots = make(map[uint32]int)
	}
	if _, ok := s.slots[h.Key()]; ok {
		return
	}
	s.items = append(s.items, h)
	s.slots[h.Key()] = len(s.items) - 1
}

// Remove deletes h by moving the last element into its slot
func (s *HandleSet) Remove(h core.Handle) bool {
	slot, ok := s.slots[h.Key()]
	if !ok {
		return false
	}
	last := len(s.items) - 1
	moved := s.items[last]
	s.items[slot] = moved
	s.slots[moved.Key()] = slot
	s.items = s.items[:last]
	delete(s.slots, h.Key())
	return true
}

// Has reports whether h is in the set
func (s *HandleSet) Has(h core.Handle) bool {
	_, ok := s.slots[h.Key()]
	return ok
}

// Len returns the number of handles
func (s *HandleSet) Len() int {
	return len(s.items)
}

// Snapshot returns the live backing slice
// INTERNAL VIEW - invalidated by the next Add/Remove/Clear
func (s *HandleSet) Snapshot() []core.Handle {
	return s.items
}

// Clear empties the set, keeping capacity
func (s *HandleSet) Clear() {
	s.items = s.items[:0]
	clear(s.slots)
}
