package sim

import (
	"github.com/lixenwraith/chunkgrid/status"
)

// Publish writes the index snapshot and the last tick's counters into reg
func (w *World) Publish(reg *status.Registry) {
	reg.PublishIndex(w.region.Stats())

	st := w.last
	reg.Ints.Get(status.TickCount).Store(int64(w.totals.Ticks))
	reg.Ints.Get(status.TickMoves).Store(int64(st.Moves))
	reg.Ints.Get(status.TickMigrations).Store(int64(st.Migrations))
	reg.Ints.Get(status.TickQueries).Store(int64(st.Queries))
	reg.Ints.Get(status.TickCandidates).Store(int64(st.Candidates))
	reg.Ints.Get(status.TickHits).Store(int64(st.Hits))
	reg.Floats.Get(status.TickMicros).Smooth(float64(st.Duration.Microseconds()), 0.2)
}
