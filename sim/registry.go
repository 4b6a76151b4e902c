package sim

import (
	"github.com/lixenwraith/chunkgrid/core"
	"github.com/lixenwraith/chunkgrid/vmath"
)

// Body is the per-entity state the simulation owns
// Grid is the cell last assigned by the index and is only written through Region calls.
type Body struct {
	Pos   vmath.Vec3F
	Vel   vmath.Vec3F
	Grid  vmath.Int2
	Alive bool
}

// Registry allocates entity slots and stamps handles with a generation
// A released slot bumps its generation so stale handles stop resolving.
type Registry struct {
	bodies []Body
	gens   []uint8
	free   []uint32
	live   int
}

func NewRegistry(capacity int) *Registry {
	return &Registry{
		bodies: make([]Body, 0, capacity),
		gens:   make([]uint8, 0, capacity),
	}
}

// Create returns a handle to a zeroed, alive body
// Returns false once every addressable slot is taken.
func (r *Registry) Create() (core.Handle, bool) {
	var slot uint32
	if n := len(r.free); n > 0 {
		slot = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		if len(r.bodies) > core.MaxHandleSlot {
			return 0, false
		}
		slot = uint32(len(r.bodies))
		r.bodies = append(r.bodies, Body{})
		r.gens = append(r.gens, 1)
	}

	r.bodies[slot] = Body{Alive: true}
	r.live++
	return core.NewHandle(slot, r.gens[slot]), true
}

// Release frees the slot behind h; stale or dead handles return false
func (r *Registry) Release(h core.Handle) bool {
	if !r.Valid(h) {
		return false
	}
	slot := h.Slot()
	r.bodies[slot] = Body{}
	r.gens[slot]++
	if r.gens[slot] == 0 {
		r.gens[slot] = 1
	}
	r.free = append(r.free, slot)
	r.live--
	return true
}

// Valid reports whether h refers to a live body of the current generation
func (r *Registry) Valid(h core.Handle) bool {
	slot := h.Slot()
	if int(slot) >= len(r.bodies) {
		return false
	}
	return r.gens[slot] == h.Generation() && r.bodies[slot].Alive
}

// Body returns the body for h, or nil when h is stale
func (r *Registry) Body(h core.Handle) *Body {
	if !r.Valid(h) {
		return nil
	}
	return &r.bodies[h.Slot()]
}

// Len returns the number of live bodies
func (r *Registry) Len() int { return r.live }

// Each visits live bodies in slot order
func (r *Registry) Each(fn func(h core.Handle, b *Body)) {
	for i := range r.bodies {
		b := &r.bodies[i]
		if !b.Alive {
			continue
		}
		fn(core.NewHandle(uint32(i), r.gens[i]), b)
	}
}
