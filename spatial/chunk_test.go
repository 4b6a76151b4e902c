package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chunkgrid/core"
	"github.com/lixenwraith/chunkgrid/parameter"
	"github.com/lixenwraith/chunkgrid/vmath"
)

func TestChunkPoolBlockSizing(t *testing.T) {
	pool := NewChunkPool(parameter.DefaultChunkPageKB, parameter.DefaultChunkPageKB)
	assert.Equal(t, 128, pool.Total(), "default page holds 128 chunks")
	assert.Equal(t, 128, pool.FreeCount())
	assert.Equal(t, 1, pool.Blocks())
}

func TestChunkPoolGrowsByPage(t *testing.T) {
	pool := NewChunkPool(4, 8) // 2 chunks, then pages of 4
	require.Equal(t, 2, pool.Total())

	infos := make([]*ChunkInfo, 0, 3)
	for i := 0; i < 3; i++ {
		infos = append(infos, pool.Alloc())
	}
	assert.Equal(t, 6, pool.Total())
	assert.Equal(t, 2, pool.Blocks())
	assert.Equal(t, 3, pool.FreeCount())

	owners := 0
	for _, info := range infos {
		if info.OwnsBlock() {
			owners++
		}
	}
	assert.Equal(t, 2, owners, "first record of each block owns it")
}

func TestChunkPoolFreeZeroesMemory(t *testing.T) {
	pool := NewChunkPool(4, 4)
	overflow := NewOverflowPool(4)
	info := pool.Alloc()
	info.Coord = vmath.Int2{X: 3, Y: -2}

	grid := vmath.Int2{X: 13, Y: -6}
	info.add(grid, core.NewHandle(1, 1), overflow)
	require.Equal(t, int32(1), info.EntityCount)
	require.Equal(t, int32(1), info.bucketAt(grid).Count)

	pool.Free(info)
	assert.Zero(t, info.EntityCount)
	assert.Equal(t, Chunk{}, *info.chunk)

	again := pool.Alloc()
	assert.Same(t, info, again)
	assert.Equal(t, vmath.Int2{}, again.Coord)
}

func TestChunkBucketAddressingNegative(t *testing.T) {
	pool := NewChunkPool(4, 4)
	overflow := NewOverflowPool(4)
	info := pool.Alloc()

	// Grid (-1,-1) is the last bucket of chunk (-1,-1)
	grid := vmath.Int2{X: -1, Y: -1}
	require.Equal(t, vmath.Int2{X: -1, Y: -1}, GridCoordToChunkCoord(grid))
	info.add(grid, core.NewHandle(1, 1), overflow)
	assert.Equal(t, int32(1), info.chunk.Buckets[parameter.ChunkSpan-1][parameter.ChunkSpan-1].Count)
}
