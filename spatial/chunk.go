package spatial

import (
	"github.com/lixenwraith/chunkgrid/core"
	"github.com/lixenwraith/chunkgrid/parameter"
	"github.com/lixenwraith/chunkgrid/vmath"
)

// Chunk is a square block of buckets covering ChunkSpan x ChunkSpan grid cells
// Indexed [y][x] by the grid coordinate's offset inside the chunk
type Chunk struct {
	Buckets [parameter.ChunkSpan][parameter.ChunkSpan]Bucket
}

// ChunkInfo is the index-side record of one pooled chunk
type ChunkInfo struct {
	Coord       vmath.Int2 // chunk coordinate while active
	EntityCount int32      // live handles across all buckets of the chunk

	chunk     *Chunk
	ownsBlock bool // first record of its block
}

// bucketAt returns the bucket for a grid coordinate inside this chunk
func (c *ChunkInfo) bucketAt(grid vmath.Int2) *Bucket {
	return &c.chunk.Buckets[grid.Y&parameter.ChunkMask][grid.X&parameter.ChunkMask]
}

func (c *ChunkInfo) add(grid vmath.Int2, h core.Handle, pool *OverflowPool) {
	c.bucketAt(grid).Append(h, pool)
	c.EntityCount++
}

func (c *ChunkInfo) remove(grid vmath.Int2, h core.Handle, pool *OverflowPool) (bool, error) {
	ok, err := c.bucketAt(grid).removeFrom(h, pool)
	if ok {
		c.EntityCount--
	}
	return ok, err
}

// OwnsBlock reports whether this record is the first of its backing block
func (c *ChunkInfo) OwnsBlock() bool { return c.ownsBlock }

// ChunkPool hands out chunk records from blocks allocated in pages
// Blocks are never reallocated, so a record's chunk pointer stays valid for the pool's lifetime.
type ChunkPool struct {
	blocks [][]Chunk
	free   []*ChunkInfo
	total  int
	pageKB int
}

// NewChunkPool preallocates initKB of chunks and grows by pageKB on exhaustion
func NewChunkPool(initKB, pageKB int) *ChunkPool {
	p := &ChunkPool{pageKB: max(pageKB, 1)}
	p.allocBlock(initKB)
	return p
}

// allocBlock adds a zeroed block sized to sizeKB and pushes its records as free
func (p *ChunkPool) allocBlock(sizeKB int) {
	n := max(sizeKB*1024/parameter.ChunkMemSize, 1)
	block := make([]Chunk, n)
	p.blocks = append(p.blocks, block)

	// Push in reverse so the block's first chunk is handed out first
	for i := n - 1; i >= 0; i-- {
		p.free = append(p.free, &ChunkInfo{
			chunk:     &block[i],
			ownsBlock: i == 0,
		})
	}
	p.total += n
}

// Alloc pops a free record, allocating a new page when none remain
func (p *ChunkPool) Alloc() *ChunkInfo {
	if len(p.free) == 0 {
		p.allocBlock(p.pageKB)
	}
	last := len(p.free) - 1
	info := p.free[last]
	p.free = p.free[:last]
	info.EntityCount = 0
	info.Coord = vmath.Int2{}
	return info
}

// Free zeroes the chunk memory and returns the record to the free list
func (p *ChunkPool) Free(info *ChunkInfo) {
	*info.chunk = Chunk{}
	info.EntityCount = 0
	p.free = append(p.free, info)
}

// Total returns the number of chunk records ever allocated
func (p *ChunkPool) Total() int { return p.total }

// FreeCount returns the number of records ready for reuse
func (p *ChunkPool) FreeCount() int { return len(p.free) }

// Blocks returns the number of backing blocks
func (p *ChunkPool) Blocks() int { return len(p.blocks) }
