package status

import (
	"math"
	"sync/atomic"
)

// Gauge is an atomic float64 stored as bits; the zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Smooth moves the gauge toward v by factor alpha in [0,1]
func (g *Gauge) Smooth(v, alpha float64) float64 {
	for {
		old := g.bits.Load()
		cur := math.Float64frombits(old)
		next := cur + (v-cur)*alpha
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
