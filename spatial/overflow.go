package spatial

import (
	"github.com/rotisserie/eris"

	"github.com/lixenwraith/chunkgrid/parameter"
)

// OverflowPool is a growable arena of buckets used only for overflow chains
// Buckets are addressed by 1-based ref; ref 0 is reserved as the null link and never handed out.
// Growth doubles the backing slice, so resolved *Bucket values must not be held across Alloc.
type OverflowPool struct {
	buckets []Bucket
	free    []uint32
	used    int
	growths int
}

// NewOverflowPool creates a pool with the given capacity, sentinel included
func NewOverflowPool(capacity int) *OverflowPool {
	capacity = max(capacity, parameter.MinOverflowCapacity)
	p := &OverflowPool{
		buckets: make([]Bucket, capacity),
		free:    make([]uint32, 0, capacity),
	}
	p.pushRange(1, capacity)
	return p
}

// pushRange pushes refs [lo, hi) so that lo is popped first
func (p *OverflowPool) pushRange(lo, hi int) {
	for i := hi - 1; i >= lo; i-- {
		p.free = append(p.free, uint32(i))
	}
}

// Alloc returns a zeroed bucket ref, doubling capacity when the free list is empty
func (p *OverflowPool) Alloc() uint32 {
	if len(p.free) == 0 {
		p.grow()
	}
	last := len(p.free) - 1
	ref := p.free[last]
	p.free = p.free[:last]
	p.used++
	return ref
}

func (p *OverflowPool) grow() {
	oldCap := len(p.buckets)
	newCap := oldCap * 2
	buckets := make([]Bucket, newCap)
	copy(buckets, p.buckets)
	p.buckets = buckets
	p.pushRange(oldCap, newCap)
	p.growths++
}

// Free zeroes the bucket and returns ref to the free list
func (p *OverflowPool) Free(ref uint32) error {
	if ref == 0 {
		return ErrNullOverflowRef
	}
	if int(ref) >= len(p.buckets) {
		return eris.Wrapf(ErrOverflowRefOutOfRange, "ref %d, capacity %d", ref, len(p.buckets))
	}
	p.buckets[ref] = Bucket{}
	p.free = append(p.free, ref)
	p.used--
	return nil
}

// Get resolves ref to its bucket; nil for the null ref or an out of range ref
func (p *OverflowPool) Get(ref uint32) *Bucket {
	if ref == 0 || int(ref) >= len(p.buckets) {
		return nil
	}
	return &p.buckets[ref]
}

// Used returns the number of allocated buckets
func (p *OverflowPool) Used() int { return p.used }

// Capacity returns the backing size including the sentinel
func (p *OverflowPool) Capacity() int { return len(p.buckets) }

// Growths returns how many times the pool doubled
func (p *OverflowPool) Growths() int { return p.growths }
