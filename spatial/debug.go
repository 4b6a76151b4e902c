package spatial

import (
	"strings"

	"github.com/lixenwraith/chunkgrid/vmath"
)

// Stats is a point-in-time snapshot of index occupancy
type Stats struct {
	Entities         int `json:"entities"`
	UsedChunks       int `json:"used_chunks"`
	TotalChunks      int `json:"total_chunks"`
	ChunkBlocks      int `json:"chunk_blocks"`
	OverflowUsed     int `json:"overflow_used"`
	OverflowCapacity int `json:"overflow_capacity"`
	OverflowGrowths  int `json:"overflow_growths"`
}

// EntityCount returns the number of tracked handles
func (r *Region) EntityCount() int { return r.entityCount }

// UsedChunkCount returns the number of active chunks
func (r *Region) UsedChunkCount() int { return len(r.chunks) }

// TotalChunkCount returns active plus pooled chunks
func (r *Region) TotalChunkCount() int { return len(r.chunks) + r.chunkPool.FreeCount() }

// OverflowUsedCount returns the number of allocated overflow buckets
func (r *Region) OverflowUsedCount() int { return r.overflow.Used() }

func (r *Region) Stats() Stats {
	return Stats{
		Entities:         r.entityCount,
		UsedChunks:       len(r.chunks),
		TotalChunks:      r.TotalChunkCount(),
		ChunkBlocks:      r.chunkPool.Blocks(),
		OverflowUsed:     r.overflow.Used(),
		OverflowCapacity: r.overflow.Capacity(),
		OverflowGrowths:  r.overflow.Growths(),
	}
}

// ChunkAt returns the active chunk record for a chunk coordinate, or nil
func (r *Region) ChunkAt(chunkCoord vmath.Int2) *ChunkInfo {
	return r.chunks[chunkCoord]
}

// BucketCount returns the number of handles in the bucket at grid (0 if its chunk is inactive)
func (r *Region) BucketCount(grid vmath.Int2) int {
	info := r.lookupChunk(grid)
	if info == nil {
		return 0
	}
	return int(info.bucketAt(grid).Count)
}

// ChainLength returns the number of overflow buckets chained at grid
func (r *Region) ChainLength(grid vmath.Int2) int {
	info := r.lookupChunk(grid)
	if info == nil {
		return 0
	}
	return info.bucketAt(grid).ChainLength(r.overflow)
}

// ForEachChunk calls fn for every active chunk in unspecified order
func (r *Region) ForEachChunk(fn func(info *ChunkInfo)) {
	for _, info := range r.chunks {
		fn(info)
	}
}

// DumpBucket returns a readable listing of the handles at grid
func (r *Region) DumpBucket(grid vmath.Int2) string {
	info := r.lookupChunk(grid)
	if info == nil {
		return "Count: 0  "
	}
	var sb strings.Builder
	info.bucketAt(grid).DumpString(&sb, r.overflow, true)
	return sb.String()
}
