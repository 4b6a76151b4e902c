package spatial

import (
	"fmt"
	"testing"

	"github.com/lixenwraith/chunkgrid/core"
	"github.com/lixenwraith/chunkgrid/vmath"
)

type benchBody struct {
	h    core.Handle
	pos  vmath.Vec3F
	vel  vmath.Vec3F
	grid vmath.Int2
}

func populate(b *testing.B, n int, extent float64) (*Region, []benchBody) {
	b.Helper()
	r, err := NewRegion()
	if err != nil {
		b.Fatal(err)
	}
	rng := vmath.NewFastRand(99)
	bodies := make([]benchBody, n)
	for i := range bodies {
		bd := &bodies[i]
		bd.h = core.NewHandle(uint32(i), 1)
		bd.pos = pos(rng.Range(-extent, extent), rng.Range(-extent, extent))
		bd.vel = pos(rng.Range(-0.2, 0.2), rng.Range(-0.2, 0.2))
		bd.grid = r.Add(bd.h, bd.pos)
	}
	return r, bodies
}

func BenchmarkRegionUpdate(b *testing.B) {
	r, bodies := populate(b, 10000, 128)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bd := &bodies[i%len(bodies)]
		bd.pos = vmath.V3FAdd(bd.pos, bd.vel)
		r.Update(bd.h, &bd.grid, bd.pos)
	}
}

func BenchmarkRegionQueryRadius(b *testing.B) {
	for _, radius := range []float64{1, 4, 16} {
		b.Run(fmt.Sprintf("r%g", radius), func(b *testing.B) {
			r, bodies := populate(b, 10000, 128)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.QueryRadius(bodies[i%len(bodies)].pos, radius)
			}
		})
	}
}

func BenchmarkRegionAddRemove(b *testing.B) {
	r, _ := populate(b, 1000, 32)
	h := core.NewHandle(1<<20, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		grid := r.Add(h, pos(float64(i%64), float64(i%48)))
		r.Remove(h, grid)
	}
}
