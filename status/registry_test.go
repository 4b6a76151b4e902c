package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chunkgrid/core"
	"github.com/lixenwraith/chunkgrid/spatial"
	"github.com/lixenwraith/chunkgrid/vmath"
)

func TestFamilyStablePointers(t *testing.T) {
	m := NewFamily[atomic.Int64]()
	a := m.Get("x")
	a.Store(5)
	assert.Same(t, a, m.Get("x"))
	assert.Equal(t, int64(5), m.Get("x").Load())
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
}

func TestFamilyRangeSorted(t *testing.T) {
	m := NewFamily[atomic.Int64]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k)
	}
	var keys []string
	m.Range(func(k string, _ *atomic.Int64) { keys = append(keys, k) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestFamilyConcurrentGet(t *testing.T) {
	m := NewFamily[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Get("shared").Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8000), m.Get("shared").Load())
	assert.Equal(t, 1, m.Count())
}

func TestFamilyRangeSeesSnapshot(t *testing.T) {
	f := NewFamily[Gauge]()
	f.Get("b")
	var seen []string
	f.Range(func(name string, _ *Gauge) {
		seen = append(seen, name)
		f.Get("a") // insert during Range lands in the next view
	})
	assert.Equal(t, []string{"b"}, seen)
	assert.Equal(t, 2, f.Count())
}

func TestGaugeSmooth(t *testing.T) {
	var g Gauge
	assert.Zero(t, g.Get())
	g.Set(10)
	assert.InDelta(t, 15.0, g.Smooth(20, 0.5), 1e-9)
	assert.InDelta(t, 15.0, g.Get(), 1e-9)
}

func TestRegistryPublishIndex(t *testing.T) {
	r, err := spatial.NewRegion()
	require.NoError(t, err)
	r.Add(core.NewHandle(1, 1), vmath.Vec3F{X: 3, Z: 3})

	reg := NewRegistry()
	reg.PublishIndex(r.Stats())

	snap := reg.Snapshot()
	assert.Equal(t, 1.0, snap[Entities])
	assert.Equal(t, 1.0, snap[UsedChunks])
	assert.Equal(t, float64(r.TotalChunkCount()), snap[TotalChunks])
}

func TestRegistryChunkObserver(t *testing.T) {
	reg := NewRegistry()
	r, err := spatial.NewRegion(spatial.WithChunkObserver(reg.ChunkObserver()))
	require.NoError(t, err)

	h := core.NewHandle(1, 1)
	grid := r.Add(h, vmath.Vec3F{})
	require.True(t, r.Update(h, &grid, vmath.Vec3F{X: 100, Z: 100}))

	assert.Equal(t, int64(2), reg.Ints.Get(ChunksBorn).Load())
	assert.Equal(t, int64(1), reg.Ints.Get(ChunksFreed).Load())
}

func TestRegistrySnapshotMixesKinds(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get(TickCount).Store(3)
	reg.Floats.Get(TickMicros).Set(12.5)

	snap := reg.Snapshot()
	assert.Len(t, snap, 2)
	assert.Equal(t, 3.0, snap[TickCount])
	assert.Equal(t, 12.5, snap[TickMicros])
	assert.Equal(t, 2, reg.TotalCount())
}
