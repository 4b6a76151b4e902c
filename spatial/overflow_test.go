package spatial

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverflowPoolNeverIssuesSentinel(t *testing.T) {
	pool := NewOverflowPool(4)
	seen := make(map[uint32]bool)
	for i := 0; i < 64; i++ {
		ref := pool.Alloc()
		require.NotZero(t, ref)
		require.False(t, seen[ref], "ref %d issued twice", ref)
		seen[ref] = true
	}
	assert.Equal(t, 64, pool.Used())
	assert.GreaterOrEqual(t, pool.Capacity(), 65)
}

func TestOverflowPoolFirstRefIsOne(t *testing.T) {
	pool := NewOverflowPool(8)
	assert.Equal(t, uint32(1), pool.Alloc())
	assert.Equal(t, uint32(2), pool.Alloc())
}

func TestOverflowPoolFreeSentinel(t *testing.T) {
	pool := NewOverflowPool(4)
	err := pool.Free(0)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNullOverflowRef))
	assert.Zero(t, pool.Used())
}

func TestOverflowPoolFreeOutOfRange(t *testing.T) {
	pool := NewOverflowPool(4)
	err := pool.Free(uint32(pool.Capacity()))
	require.Error(t, err)
	assert.ErrorIs(t, eris.Cause(err), ErrOverflowRefOutOfRange)
	assert.Nil(t, pool.Get(uint32(pool.Capacity())))
	assert.Nil(t, pool.Get(0))
}

func TestOverflowPoolGrowthPreservesIssuedRefs(t *testing.T) {
	pool := NewOverflowPool(2)
	ref := pool.Alloc()
	pool.Get(ref).Count = 42
	pool.Get(ref).Slots[0] = 7

	for i := 0; i < 10; i++ {
		pool.Alloc()
	}
	require.Greater(t, pool.Growths(), 0)

	b := pool.Get(ref)
	assert.Equal(t, int32(42), b.Count)
	assert.Equal(t, uint64(7), b.Slots[0])
}

func TestOverflowPoolFreeZeroesAndRecycles(t *testing.T) {
	pool := NewOverflowPool(4)
	ref := pool.Alloc()
	pool.Get(ref).Count = 3
	pool.Get(ref).Next = 9

	require.NoError(t, pool.Free(ref))
	assert.Zero(t, pool.Used())
	assert.Equal(t, Bucket{}, *pool.Get(ref))
	assert.Equal(t, ref, pool.Alloc(), "freed ref is reused first")
}

func TestOverflowPoolMinimumCapacity(t *testing.T) {
	pool := NewOverflowPool(0)
	assert.Equal(t, 2, pool.Capacity())
	assert.Equal(t, uint32(1), pool.Alloc())
	assert.Equal(t, uint32(2), pool.Alloc())
	assert.Equal(t, 4, pool.Capacity())
}
