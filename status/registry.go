package status

import (
	"sync/atomic"

	"github.com/lixenwraith/chunkgrid/spatial"
	"github.com/lixenwraith/chunkgrid/vmath"
)

// Metric names published from the index and the simulation
const (
	Entities         = "index.entities"
	UsedChunks       = "index.chunks.used"
	TotalChunks      = "index.chunks.total"
	ChunkBlocks      = "index.chunks.blocks"
	OverflowUsed     = "index.overflow.used"
	OverflowCapacity = "index.overflow.capacity"
	OverflowGrowths  = "index.overflow.growths"
	ChunksBorn       = "index.chunks.born"
	ChunksFreed      = "index.chunks.freed"
	TickCount        = "sim.ticks"
	TickMoves        = "sim.moves"
	TickMigrations   = "sim.migrations"
	TickQueries      = "sim.queries"
	TickCandidates   = "sim.candidates"
	TickHits         = "sim.hits"
	TickMicros       = "sim.tick_us"
)

// Registry holds named counters and gauges
// Producers cache the pointers once; the viewer reads them every frame.
type Registry struct {
	Ints   *Family[atomic.Int64]
	Floats *Family[Gauge]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewFamily[atomic.Int64](),
		Floats: NewFamily[Gauge](),
	}
}

// PublishIndex stores a Stats snapshot under the index.* names
func (r *Registry) PublishIndex(s spatial.Stats) {
	r.Ints.Get(Entities).Store(int64(s.Entities))
	r.Ints.Get(UsedChunks).Store(int64(s.UsedChunks))
	r.Ints.Get(TotalChunks).Store(int64(s.TotalChunks))
	r.Ints.Get(ChunkBlocks).Store(int64(s.ChunkBlocks))
	r.Ints.Get(OverflowUsed).Store(int64(s.OverflowUsed))
	r.Ints.Get(OverflowCapacity).Store(int64(s.OverflowCapacity))
	r.Ints.Get(OverflowGrowths).Store(int64(s.OverflowGrowths))
}

// ChunkObserver counts chunk births and deaths; pass it to spatial.WithChunkObserver
func (r *Registry) ChunkObserver() spatial.ChunkObserver {
	born := r.Ints.Get(ChunksBorn)
	freed := r.Ints.Get(ChunksFreed)
	return func(ev spatial.ChunkEvent, _ vmath.Int2) {
		switch ev {
		case spatial.ChunkBorn:
			born.Add(1)
		case spatial.ChunkFreed:
			freed.Add(1)
		}
	}
}

// Snapshot flattens every metric into a map, suitable for JSON output
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out[k] = float64(v.Load())
	})
	r.Floats.Range(func(k string, v *Gauge) {
		out[k] = v.Get()
	})
	return out
}

func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}
