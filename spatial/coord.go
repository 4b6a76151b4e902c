package spatial

import (
	"math"

	"github.com/lixenwraith/chunkgrid/parameter"
	"github.com/lixenwraith/chunkgrid/vmath"
)

// FloorWorldPos floors the horizontal components (X, Z) of a position to a world cell
func FloorWorldPos(pos vmath.Vec3F) vmath.Int2 {
	return vmath.FloorPlanar(pos)
}

func WorldPosToGridCoord(worldPos vmath.Int2) vmath.Int2 {
	return vmath.I2Shr(worldPos, parameter.WidthBit)
}

func GridCoordToWorldPos(gridCoord vmath.Int2) vmath.Int2 {
	return vmath.I2Shl(gridCoord, parameter.WidthBit)
}

func GridCoordToChunkCoord(gridCoord vmath.Int2) vmath.Int2 {
	return vmath.I2Shr(gridCoord, parameter.GridScalerBit)
}

func ChunkCoordToGridCoord(chunkCoord vmath.Int2) vmath.Int2 {
	return vmath.I2Shl(chunkCoord, parameter.GridScalerBit)
}

func WorldPosToChunkCoord(worldPos vmath.Int2) vmath.Int2 {
	return vmath.I2Shr(worldPos, parameter.ChunkWidthBit)
}

func ChunkCoordToWorldPos(chunkCoord vmath.Int2) vmath.Int2 {
	return vmath.I2Shl(chunkCoord, parameter.ChunkWidthBit)
}

// GridCoordOf maps a continuous position straight to its grid coordinate
func GridCoordOf(pos vmath.Vec3F) vmath.Int2 {
	return WorldPosToGridCoord(FloorWorldPos(pos))
}

// gridCellCenter returns the centre of a grid cell in world units as (x, z)
func gridCellCenter(gridCoord vmath.Int2) (float64, float64) {
	origin := GridCoordToWorldPos(gridCoord)
	const half = float64(parameter.CellWidth) / 2
	return float64(origin.X) + half, float64(origin.Y) + half
}

// beyondHysteresis reports whether pos has left the previous cell by more than the margin on any axis
func beyondHysteresis(prevGrid vmath.Int2, pos vmath.Vec3F) bool {
	cx, cz := gridCellCenter(prevGrid)
	return math.Abs(pos.X-cx) > parameter.HysteresisMargin || math.Abs(pos.Z-cz) > parameter.HysteresisMargin
}

// querySpan returns the half-width in grid cells of the window covering radius
// The window covers ceil(radius) world cells rounded up to whole grid cells plus the
// hysteresis lag, so a handle whose floored position lies within radius is never skipped.
// Infinite or huge radii saturate at MaxQuerySpan.
func querySpan(radius float64) int64 {
	if !(radius > 0) {
		return 1
	}
	if radius >= float64(parameter.MaxQuerySpan)*parameter.CellWidth {
		return parameter.MaxQuerySpan
	}
	cells := int64(math.Ceil(radius))
	span := (cells+parameter.CellWidth-1)>>parameter.WidthBit + parameter.HysteresisLagCells
	return min(max(span, 1), parameter.MaxQuerySpan)
}

// clampGrid narrows an int64 grid bound back into the int32 coordinate range
func clampGrid(v int64) int32 {
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}
