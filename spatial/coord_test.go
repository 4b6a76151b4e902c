package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/chunkgrid/parameter"
	"github.com/lixenwraith/chunkgrid/vmath"
)

func TestCoordinateChain(t *testing.T) {
	cases := []struct {
		x, z  float64
		grid  vmath.Int2
		chunk vmath.Int2
	}{
		{0, 0, vmath.Int2{X: 0, Y: 0}, vmath.Int2{X: 0, Y: 0}},
		{1.99, 7.99, vmath.Int2{X: 0, Y: 3}, vmath.Int2{X: 0, Y: 0}},
		{8, 15.5, vmath.Int2{X: 4, Y: 7}, vmath.Int2{X: 1, Y: 1}},
		{-0.01, -2, vmath.Int2{X: -1, Y: -1}, vmath.Int2{X: -1, Y: -1}},
		{-8, -8.5, vmath.Int2{X: -4, Y: -5}, vmath.Int2{X: -1, Y: -2}},
	}
	for _, c := range cases {
		p := pos(c.x, c.z)
		grid := GridCoordOf(p)
		assert.Equal(t, c.grid, grid, "grid of (%v,%v)", c.x, c.z)
		assert.Equal(t, c.chunk, GridCoordToChunkCoord(grid), "chunk of (%v,%v)", c.x, c.z)
		assert.Equal(t, c.chunk, WorldPosToChunkCoord(FloorWorldPos(p)), "direct chunk of (%v,%v)", c.x, c.z)
	}
}

func TestCoordinateInverses(t *testing.T) {
	chunk := vmath.Int2{X: -3, Y: 5}
	assert.Equal(t, vmath.Int2{X: -12, Y: 20}, ChunkCoordToGridCoord(chunk))
	assert.Equal(t, vmath.Int2{X: -24, Y: 40}, ChunkCoordToWorldPos(chunk))
	assert.Equal(t, chunk, GridCoordToChunkCoord(ChunkCoordToGridCoord(chunk)))
	assert.Equal(t, vmath.Int2{X: -6, Y: 10}, GridCoordToWorldPos(vmath.Int2{X: -3, Y: 5}))
}

func TestBeyondHysteresis(t *testing.T) {
	// Cell (0,0) spans world [0,2) with centre (1,1)
	assert.False(t, beyondHysteresis(vmath.Int2{}, pos(3, 1)))
	assert.True(t, beyondHysteresis(vmath.Int2{}, pos(3.01, 1)))
	assert.True(t, beyondHysteresis(vmath.Int2{}, pos(1, -1.5)))
	assert.False(t, beyondHysteresis(vmath.Int2{}, pos(-1, 3)))
}

func TestQuerySpan(t *testing.T) {
	lag := int64(parameter.HysteresisLagCells)
	assert.Equal(t, 1, int(querySpan(0)))
	assert.Equal(t, 1, int(querySpan(-4)))
	assert.Equal(t, 1, int(querySpan(math.NaN())))
	assert.Equal(t, 1+lag, querySpan(0.5))
	assert.Equal(t, 1+lag, querySpan(2))
	assert.Equal(t, 2+lag, querySpan(2.5))
	assert.Equal(t, 8+lag, querySpan(16))
	assert.Equal(t, parameter.MaxQuerySpan, querySpan(math.Inf(1)))
	assert.Equal(t, parameter.MaxQuerySpan, querySpan(math.MaxFloat64))
	assert.Equal(t, parameter.MaxQuerySpan, querySpan(1e10))
	assert.Equal(t, int64(1), querySpan(math.Inf(-1)))
	assert.Equal(t, int64(1_500_000_000)+lag, querySpan(3e9))
}

func TestClampGrid(t *testing.T) {
	assert.Equal(t, int32(math.MaxInt32), clampGrid(math.MaxInt32+5))
	assert.Equal(t, int32(math.MinInt32), clampGrid(math.MinInt32-5))
	assert.Equal(t, int32(-7), clampGrid(-7))
}
