// Package sim drives bodies through a spatial.Region: spawn, move, despawn and neighbor probes
package sim

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/chunkgrid/core"
	"github.com/lixenwraith/chunkgrid/parameter"
	"github.com/lixenwraith/chunkgrid/spatial"
	"github.com/lixenwraith/chunkgrid/vmath"
)

// TickStats counts the index work done by one or more ticks
type TickStats struct {
	Ticks      int           `json:"ticks"`
	Moves      int           `json:"moves"`
	Migrations int           `json:"migrations"`
	Queries    int           `json:"queries"`
	Candidates int           `json:"candidates"`
	Hits       int           `json:"hits"`
	Duration   time.Duration `json:"duration_ns"`
}

func (s *TickStats) add(o TickStats) {
	s.Ticks += o.Ticks
	s.Moves += o.Moves
	s.Migrations += o.Migrations
	s.Queries += o.Queries
	s.Candidates += o.Candidates
	s.Hits += o.Hits
	s.Duration += o.Duration
}

// Option configures a World
type Option func(*World)

// WithExtent sets the half-width of the square play area centred on the origin
func WithExtent(extent float64) Option {
	return func(w *World) { w.extent = extent }
}

func WithSeed(seed uint64) Option {
	return func(w *World) { w.rng = vmath.NewFastRand(seed) }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) { w.logger = logger }
}

// World owns the bodies and the Region indexing them
// Not safe for concurrent use.
type World struct {
	region *spatial.Region
	bodies *Registry
	live   *spatial.HandleSet
	rng    *vmath.FastRand
	logger zerolog.Logger
	extent float64

	last   TickStats
	totals TickStats
	probe  int
	nbuf   []core.Handle
}

func NewWorld(region *spatial.Region, opts ...Option) *World {
	w := &World{
		region: region,
		bodies: NewRegistry(1024),
		live:   spatial.NewHandleSet(1024),
		rng:    vmath.NewFastRand(1),
		logger: zerolog.Nop(),
		extent: 64,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Spawn creates n bodies at random positions with random headings and adds them to the index
func (w *World) Spawn(n int) []core.Handle {
	out := make([]core.Handle, 0, n)
	for i := 0; i < n; i++ {
		h, ok := w.bodies.Create()
		if !ok {
			w.logger.Warn().Int("live", w.bodies.Len()).Msg("entity slots exhausted")
			break
		}
		b := w.bodies.Body(h)
		b.Pos = vmath.Vec3F{
			X: w.rng.Range(-w.extent, w.extent),
			Z: w.rng.Range(-w.extent, w.extent),
		}
		heading := w.rng.Range(0, 2*math.Pi)
		speed := w.rng.Range(parameter.SpawnSpeedMin, parameter.SpawnSpeedMax)
		b.Vel = vmath.Vec3F{X: math.Cos(heading) * speed, Z: math.Sin(heading) * speed}
		b.Grid = w.region.Add(h, b.Pos)

		w.live.Add(h)
		out = append(out, h)
	}
	w.logger.Debug().Int("count", len(out)).Int("live", w.bodies.Len()).Msg("spawned")
	return out
}

// Despawn removes h from the index and releases its slot
func (w *World) Despawn(h core.Handle) bool {
	b := w.bodies.Body(h)
	if b == nil {
		return false
	}
	if !w.region.Remove(h, b.Grid) {
		w.logger.Warn().Stringer("handle", h).Msg("despawned body missing from index")
	}
	w.live.Remove(h)
	return w.bodies.Release(h)
}

// DespawnRandom removes up to n randomly chosen bodies and returns how many went
func (w *World) DespawnRandom(n int) int {
	removed := 0
	for removed < n && w.live.Len() > 0 {
		all := w.live.Snapshot()
		if w.Despawn(all[w.rng.Intn(len(all))]) {
			removed++
		}
	}
	return removed
}

// Tick integrates every body by dt, reflects at the bounds, updates the index
// and runs a rotating batch of neighbor probes.
func (w *World) Tick(dt float64) TickStats {
	start := time.Now()
	dt = min(max(dt, 0), parameter.MaxTickDelta)
	st := TickStats{Ticks: 1}

	w.bodies.Each(func(h core.Handle, b *Body) {
		b.Pos = vmath.V3FAdd(b.Pos, vmath.V3FScale(b.Vel, dt))
		b.Pos.X, b.Vel.X = reflect(b.Pos.X, b.Vel.X, w.extent)
		b.Pos.Z, b.Vel.Z = reflect(b.Pos.Z, b.Vel.Z, w.extent)
		st.Moves++
		if w.region.Update(h, &b.Grid, b.Pos) {
			st.Migrations++
		}
	})

	all := w.live.Snapshot()
	probes := min(len(all), parameter.NeighborProbesPerTick)
	for i := 0; i < probes; i++ {
		w.probe = (w.probe + 1) % len(all)
		hits, cands := w.neighbors(all[w.probe], parameter.NeighborRadius)
		st.Queries++
		st.Candidates += cands
		st.Hits += len(hits)
	}

	st.Duration = time.Since(start)
	w.last = st
	w.totals.add(st)
	return st
}

// Neighbors returns the bodies within radius of h, excluding h
// The index answer is a superset; this filters by exact planar distance.
// The slice is reused by the next call.
func (w *World) Neighbors(h core.Handle, radius float64) []core.Handle {
	hits, _ := w.neighbors(h, radius)
	return hits
}

func (w *World) neighbors(h core.Handle, radius float64) ([]core.Handle, int) {
	w.nbuf = w.nbuf[:0]
	b := w.bodies.Body(h)
	if b == nil {
		return w.nbuf, 0
	}
	r2 := radius * radius
	cands := w.region.QueryRadius(b.Pos, radius)
	for _, other := range cands {
		if other == h {
			continue
		}
		ob := w.bodies.Body(other)
		if ob == nil {
			continue
		}
		if vmath.PlanarDistSq(b.Pos, ob.Pos) <= r2 {
			w.nbuf = append(w.nbuf, other)
		}
	}
	return w.nbuf, len(cands)
}

// reflect bounces a coordinate off [-extent, extent]
func reflect(p, v, extent float64) (float64, float64) {
	switch {
	case p < -extent:
		p = -2*extent - p
		v = -v
	case p > extent:
		p = 2*extent - p
		v = -v
	}
	return min(max(p, -extent), extent), v
}

func (w *World) Region() *spatial.Region { return w.region }
func (w *World) Bodies() *Registry       { return w.bodies }
func (w *World) Live() []core.Handle     { return w.live.Snapshot() }
func (w *World) Len() int                { return w.bodies.Len() }
func (w *World) Extent() float64         { return w.extent }

// LastTick returns the stats of the most recent Tick
func (w *World) LastTick() TickStats { return w.last }

// Totals returns the stats accumulated over every Tick
func (w *World) Totals() TickStats { return w.totals }
