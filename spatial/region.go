package spatial

import (
	"encoding/binary"
	"unsafe"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/chunkgrid/core"
	"github.com/lixenwraith/chunkgrid/parameter"
	"github.com/lixenwraith/chunkgrid/vmath"
)

// Region is the spatial index facade: it owns the chunk pool, the overflow pool and the
// coordinate -> chunk table, and tracks handles per grid cell
// Not safe for concurrent use; drive it from the simulation's tick goroutine.
type Region struct {
	logger   zerolog.Logger
	observer ChunkObserver

	initSizeKB  int
	chunkPageKB int

	chunks    map[vmath.Int2]*ChunkInfo
	chunkPool *ChunkPool
	overflow  *OverflowPool

	entityCount int
	queryBuf    []core.Handle
}

// NewRegion validates the fixed memory layout and preallocates both pools
func NewRegion(opts ...Option) (*Region, error) {
	if err := checkLayout(); err != nil {
		return nil, err
	}

	r := &Region{
		logger:      zerolog.Nop(),
		initSizeKB:  parameter.DefaultInitSizeKB,
		chunkPageKB: parameter.DefaultChunkPageKB,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.initSizeKB = max(r.initSizeKB, parameter.MinInitSizeKB)
	r.init()

	r.logger.Debug().
		Int("init_kb", r.initSizeKB).
		Int("page_kb", r.chunkPageKB).
		Int("chunks", r.chunkPool.Total()).
		Int("overflow_capacity", r.overflow.Capacity()).
		Msg("region initialized")
	return r, nil
}

func (r *Region) init() {
	r.chunks = make(map[vmath.Int2]*ChunkInfo, r.initSizeKB)
	r.chunkPool = NewChunkPool(r.initSizeKB, r.chunkPageKB)
	r.overflow = NewOverflowPool(r.initSizeKB * parameter.OverflowBytesPerKB / parameter.BucketMemSize)
	r.entityCount = 0
	r.queryBuf = r.queryBuf[:0]
}

func checkLayout() error {
	if n := binary.Size(Bucket{}); n != parameter.BucketMemSize || unsafe.Sizeof(Bucket{}) != parameter.BucketMemSize {
		return eris.Wrapf(ErrLayoutMismatch, "bucket is %d bytes, want %d", n, parameter.BucketMemSize)
	}
	if n := binary.Size(Chunk{}); n != parameter.ChunkMemSize || unsafe.Sizeof(Chunk{}) != parameter.ChunkMemSize {
		return eris.Wrapf(ErrLayoutMismatch, "chunk is %d bytes, want %d", n, parameter.ChunkMemSize)
	}
	return nil
}

// Reset drops every tracked handle and releases all pooled memory, then reallocates the initial pools
func (r *Region) Reset() {
	r.init()
}

// Add places h at pos and returns the grid coordinate the caller must retain for Update/Remove
func (r *Region) Add(h core.Handle, pos vmath.Vec3F) vmath.Int2 {
	r.checkPosition(h, pos)
	grid := GridCoordOf(pos)
	info := r.getOrCreateChunk(grid)
	info.add(grid, h, r.overflow)
	r.entityCount++
	return grid
}

// Remove deletes h from the bucket at grid; false if it is not tracked there
// A chunk left empty is returned to the pool immediately.
func (r *Region) Remove(h core.Handle, grid vmath.Int2) bool {
	info := r.lookupChunk(grid)
	if info == nil {
		return false
	}
	if !r.removeFromChunk(info, grid, h) {
		return false
	}
	r.entityCount--
	if info.EntityCount == 0 {
		r.freeChunk(info)
	}
	return true
}

// Update moves h to the bucket for pos when it has left its cell beyond the hysteresis margin
// grid is the caller's retained coordinate and is rewritten once the move completes.
// Returns true if h migrated.
func (r *Region) Update(h core.Handle, grid *vmath.Int2, pos vmath.Vec3F) bool {
	r.checkPosition(h, pos)
	newGrid := GridCoordOf(pos)
	if newGrid == *grid {
		return false
	}
	if !beyondHysteresis(*grid, pos) {
		return false
	}

	from := *grid
	srcCoord := GridCoordToChunkCoord(from)
	dstCoord := GridCoordToChunkCoord(newGrid)
	crossChunk := srcCoord != dstCoord

	src := r.chunks[srcCoord]
	if src == nil || !r.removeFromChunk(src, from, h) {
		r.logger.Warn().
			Stringer("handle", h).
			Int32("grid_x", from.X).
			Int32("grid_y", from.Y).
			Msg("update of untracked handle ignored")
		return false
	}

	if crossChunk {
		dst := r.getOrCreateChunk(newGrid)
		dst.add(newGrid, h, r.overflow)
		if src.EntityCount == 0 {
			r.freeChunk(src)
		}
	} else {
		src.add(newGrid, h, r.overflow)
	}

	if e := r.logger.Debug(); e.Enabled() {
		e.Stringer("handle", h).
			Int32("from_x", from.X).
			Int32("from_y", from.Y).
			Int32("to_x", newGrid.X).
			Int32("to_y", newGrid.Y).
			Bool("cross_chunk", crossChunk).
			Msg("entity migrated")
	}

	*grid = newGrid
	return true
}

// QueryRadius returns every handle in the grid window covering radius around center
// The result is conservative and backed by a buffer reused by the next query; consume it first.
// A window wider than the active chunks is answered by walking the chunk table instead.
func (r *Region) QueryRadius(center vmath.Vec3F, radius float64) []core.Handle {
	r.queryBuf = r.queryBuf[:0]
	if r.entityCount == 0 {
		return r.queryBuf
	}

	cg := GridCoordOf(center)
	span := querySpan(radius)

	activeCells := int64(len(r.chunks)) * parameter.ChunkSpan * parameter.ChunkSpan
	side := 2*span + 1
	if span > activeCells || side*side > activeCells {
		r.collectActive(cg, span)
		return r.queryBuf
	}
	r.collectWindow(cg, span)
	return r.queryBuf
}

// collectWindow visits every grid cell of the window, resolving each chunk once per run
func (r *Region) collectWindow(cg vmath.Int2, span int64) {
	minX, maxX := int64(clampGrid(int64(cg.X)-span)), int64(clampGrid(int64(cg.X)+span))
	minY, maxY := int64(clampGrid(int64(cg.Y)-span)), int64(clampGrid(int64(cg.Y)+span))

	var info *ChunkInfo
	lastCoord := vmath.Int2{}
	haveLast := false

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			grid := vmath.Int2{X: int32(x), Y: int32(y)}
			coord := GridCoordToChunkCoord(grid)
			if !haveLast || coord != lastCoord {
				info = r.chunks[coord]
				lastCoord = coord
				haveLast = true
			}
			if info == nil || info.EntityCount == 0 {
				continue
			}
			b := info.bucketAt(grid)
			if b.Count == 0 {
				continue
			}
			r.queryBuf = b.CollectAll(r.queryBuf, r.overflow)
		}
	}
}

// collectActive visits the buckets of every active chunk that fall inside the window
func (r *Region) collectActive(cg vmath.Int2, span int64) {
	for coord, info := range r.chunks {
		if info.EntityCount == 0 {
			continue
		}
		origin := ChunkCoordToGridCoord(coord)
		for dy := int32(0); dy < parameter.ChunkSpan; dy++ {
			y := origin.Y + dy
			if absDiff(y, cg.Y) > span {
				continue
			}
			for dx := int32(0); dx < parameter.ChunkSpan; dx++ {
				x := origin.X + dx
				if absDiff(x, cg.X) > span {
					continue
				}
				b := info.bucketAt(vmath.Int2{X: x, Y: y})
				if b.Count == 0 {
					continue
				}
				r.queryBuf = b.CollectAll(r.queryBuf, r.overflow)
			}
		}
	}
}

func absDiff(a, b int32) int64 {
	d := int64(a) - int64(b)
	if d < 0 {
		return -d
	}
	return d
}

// QueryRadiusInto materializes the query result into set, replacing its contents
func (r *Region) QueryRadiusInto(set *HandleSet, center vmath.Vec3F, radius float64) []core.Handle {
	set.Clear()
	for _, h := range r.QueryRadius(center, radius) {
		set.Add(h)
	}
	return set.Snapshot()
}

// checkPosition warns when pos falls outside the representable grid; FloorPlanar clamps it
func (r *Region) checkPosition(h core.Handle, pos vmath.Vec3F) {
	if vmath.PlanarInRange(pos) {
		return
	}
	r.logger.Warn().
		Stringer("handle", h).
		Float64("x", pos.X).
		Float64("z", pos.Z).
		Msg("position outside grid range clamped")
}

func (r *Region) removeFromChunk(info *ChunkInfo, grid vmath.Int2, h core.Handle) bool {
	ok, err := info.remove(grid, h, r.overflow)
	if err != nil {
		r.logger.Error().Err(err).Stringer("handle", h).Msg("overflow release failed")
	}
	return ok
}

// lookupChunk returns the active chunk containing grid, or nil
func (r *Region) lookupChunk(grid vmath.Int2) *ChunkInfo {
	return r.chunks[GridCoordToChunkCoord(grid)]
}

// getOrCreateChunk returns the active chunk containing grid, allocating it on first use
func (r *Region) getOrCreateChunk(grid vmath.Int2) *ChunkInfo {
	coord := GridCoordToChunkCoord(grid)
	if info, ok := r.chunks[coord]; ok {
		return info
	}

	info := r.chunkPool.Alloc()
	info.Coord = coord
	r.chunks[coord] = info

	r.logger.Debug().Int32("chunk_x", coord.X).Int32("chunk_y", coord.Y).Msg("chunk born")
	if r.observer != nil {
		r.observer(ChunkBorn, coord)
	}
	return info
}

func (r *Region) freeChunk(info *ChunkInfo) {
	coord := info.Coord
	delete(r.chunks, coord)
	r.chunkPool.Free(info)

	r.logger.Debug().Int32("chunk_x", coord.X).Int32("chunk_y", coord.Y).Msg("chunk freed")
	if r.observer != nil {
		r.observer(ChunkFreed, coord)
	}
}
