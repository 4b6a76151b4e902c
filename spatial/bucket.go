package spatial

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/chunkgrid/core"
	"github.com/lixenwraith/chunkgrid/parameter"
)

// Bucket holds the handles of one grid cell in a fixed 128-byte layout
// Count is the number of handles in this bucket and every bucket chained after it,
// so the head of a chain carries the chain total. Only the first min(Count, BucketCapacity)
// slots are valid; the remainder lives in the overflow bucket referenced by Next.
type Bucket struct {
	Count int32                            // offset 0
	Next  uint32                           // offset 4, 1-based overflow ref, 0 = none
	Slots [parameter.BucketCapacity]uint64 // offset 8
}

// localCount is the number of valid slots in this bucket alone
func (b *Bucket) localCount() int32 {
	return min(b.Count, parameter.BucketCapacity)
}

// IsLocalFull reports whether the inline slots are exhausted
func (b *Bucket) IsLocalFull() bool {
	return b.Count >= parameter.BucketCapacity
}

// Append stores h at the end of the chain, allocating an overflow bucket when the tail is full
// Buckets inside the pool are re-resolved after Alloc since growth moves the backing slice
func (b *Bucket) Append(h core.Handle, pool *OverflowPool) {
	var ref uint32 // 0 = b itself
	cur := b
	for {
		if !cur.IsLocalFull() {
			cur.Slots[cur.Count] = h.Widen()
			cur.Count++
			return
		}
		cur.Count++

		next := cur.Next
		if next == 0 {
			next = pool.Alloc()
			if ref == 0 {
				cur = b
			} else {
				cur = pool.Get(ref)
			}
			cur.Next = next
		}
		ref = next
		cur = pool.Get(ref)
	}
}

// CollectAll appends every handle in the chain to out in chain order
func (b *Bucket) CollectAll(out []core.Handle, pool *OverflowPool) []core.Handle {
	remaining := b.Count
	cur := b
	for cur != nil && remaining > 0 {
		n := min(remaining, parameter.BucketCapacity)
		for i := int32(0); i < n; i++ {
			out = append(out, core.HandleFromSlot(cur.Slots[i]))
		}
		remaining -= n
		if cur.Next == 0 {
			break
		}
		cur = pool.Get(cur.Next)
	}
	return out
}

// Contains reports whether h is anywhere in the chain
func (b *Bucket) Contains(h core.Handle, pool *OverflowPool) bool {
	want := h.Widen()
	for cur := b; cur != nil; {
		n := cur.localCount()
		for i := int32(0); i < n; i++ {
			if cur.Slots[i] == want {
				return true
			}
		}
		if cur.Count <= parameter.BucketCapacity || cur.Next == 0 {
			return false
		}
		cur = pool.Get(cur.Next)
	}
	return false
}

// ChainLength returns the number of overflow buckets linked after b
func (b *Bucket) ChainLength(pool *OverflowPool) int {
	n := 0
	for ref := b.Next; ref != 0; {
		n++
		next := pool.Get(ref)
		if next == nil {
			break
		}
		ref = next.Next
	}
	return n
}

// removeFrom deletes h from the chain headed by b, keeping every bucket dense
// The chain's last handle fills the hole; an emptied trailing overflow bucket is released.
func (b *Bucket) removeFrom(h core.Handle, pool *OverflowPool) (bool, error) {
	if b.Count == 0 {
		return false, nil
	}

	want := h.Widen()
	var hole *uint64
	for cur := b; cur != nil && hole == nil; {
		n := cur.localCount()
		for i := int32(0); i < n; i++ {
			if cur.Slots[i] == want {
				hole = &cur.Slots[i]
				break
			}
		}
		if cur.Count <= parameter.BucketCapacity || cur.Next == 0 {
			break
		}
		cur = pool.Get(cur.Next)
	}
	if hole == nil {
		return false, nil
	}

	// Walk to the tail decrementing counts along the way
	var prev *Bucket
	var tailRef uint32
	tail := b
	for tail.Count > parameter.BucketCapacity && tail.Next != 0 {
		tail.Count--
		prev = tail
		tailRef = tail.Next
		tail = pool.Get(tailRef)
	}
	tail.Count--
	*hole = tail.Slots[tail.Count]
	tail.Slots[tail.Count] = 0

	if tail.Count == 0 && prev != nil {
		prev.Next = 0
		if err := pool.Free(tailRef); err != nil {
			return true, err
		}
	}
	return true, nil
}

// DumpString writes a human-readable listing of the chain
func (b *Bucket) DumpString(sb *strings.Builder, pool *OverflowPool, oneLine bool) {
	sb.WriteString("Count: ")
	sb.WriteString(strconv.Itoa(int(b.Count)))
	sb.WriteString("  ")
	if !oneLine {
		sb.WriteByte('\n')
	}
	for _, h := range b.CollectAll(nil, pool) {
		sb.WriteString(h.String())
		sb.WriteString(", ")
		if !oneLine {
			sb.WriteByte('\n')
		}
	}
}
