package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinwells/objects/pkg/objerrors"
)

type point struct {
	Pooled
	x, y float64
}

func newPointPool(t *testing.T, initialSize int) *Pool[*point] {
	t.Helper()
	p, err := NewPool("point", func() *point { return &point{} }, initialSize)
	require.NoError(t, err)
	return p
}

func TestNewPoolValidation(t *testing.T) {
	_, err := NewPool[*point]("point", nil, 1)
	assert.Error(t, err, "nil factory must be rejected")

	_, err = NewPool("point", func() *point { return &point{} }, -1)
	assert.Error(t, err, "negative initial size must be rejected")
}

func TestNewPoolPreallocates(t *testing.T) {
	p := newPointPool(t, 4)

	assert.Equal(t, 4, p.Size())
	assert.Equal(t, 4, p.FreeCount())
	assert.Equal(t, 0, p.UsedCount())
	assert.Equal(t, int64(4), p.Allocated())
}

// Walks the lifecycle of a two-object pool starting from a single
// preallocated instance: the second acquire forces a growth step.
func TestAcquireReleaseLifecycle(t *testing.T) {
	p := newPointPool(t, 1)

	a, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 0, p.FreeCount())
	assert.Equal(t, 1, p.UsedCount())
	assert.False(t, a.Destroyed())

	// Free list is empty, so this acquire expands by round(1/5)+1 = 1.
	b, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Size())
	assert.Equal(t, 0, p.FreeCount())
	assert.Equal(t, 2, p.UsedCount())
	assert.NotSame(t, a, b)

	require.NoError(t, p.Release(a))
	assert.Equal(t, 1, p.FreeCount())
	assert.Equal(t, 1, p.UsedCount())
	assert.True(t, a.Destroyed())

	require.NoError(t, p.Release(b))
	assert.Equal(t, 2, p.FreeCount())
	assert.Equal(t, 0, p.UsedCount())
	assert.Equal(t, 2, p.Size())
}

func TestGrowthStep(t *testing.T) {
	p := newPointPool(t, 10)

	// Drain the preallocated objects without triggering growth.
	for i := 0; i < 10; i++ {
		_, err := p.Acquire()
		require.NoError(t, err)
	}
	assert.Equal(t, 10, p.Size())
	assert.Equal(t, 0, p.FreeCount())

	// The next acquire expands by round(10/5)+1 = 3.
	_, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 13, p.Size())
	assert.Equal(t, 2, p.FreeCount())
	assert.Equal(t, 11, p.UsedCount())
	assert.Equal(t, int64(13), p.Allocated())
}

func TestSizeInvariant(t *testing.T) {
	p := newPointPool(t, 2)

	check := func() {
		t.Helper()
		assert.Equal(t, p.Size(), p.FreeCount()+p.UsedCount(),
			"every allocated object must sit on exactly one list")
	}
	check()

	var live []*point
	for i := 0; i < 20; i++ {
		obj, err := p.Acquire()
		require.NoError(t, err)
		live = append(live, obj)
		check()
	}
	for _, obj := range live {
		require.NoError(t, p.Release(obj))
		check()
	}
	assert.Equal(t, p.Size(), p.FreeCount())
}

func TestReleaseAcquireRoundTrip(t *testing.T) {
	p := newPointPool(t, 1)

	a, err := p.Acquire()
	require.NoError(t, err)
	a.x, a.y = 3, 4
	require.NoError(t, p.Release(a))

	// A single free object means the next acquire recycles it.
	b, err := p.Acquire()
	require.NoError(t, err)
	assert.Same(t, a, b, "round trip must recycle the released object")
	assert.Equal(t, 1, p.Size())
	assert.False(t, b.Destroyed())
}

func TestDoubleReleaseFailsLoudly(t *testing.T) {
	p := newPointPool(t, 1)

	a, err := p.Acquire()
	require.NoError(t, err)
	require.NoError(t, p.Release(a))

	err = p.Release(a)
	require.Error(t, err)
	assert.True(t, objerrors.IsType(err, objerrors.ErrorTypeDuplicate),
		"second release must surface a duplicate_membership error")
	assert.Equal(t, 1, p.FreeCount())
	assert.Equal(t, 0, p.UsedCount())
}

func TestExpandLeavesUsedObjectsAlone(t *testing.T) {
	p := newPointPool(t, 1)

	a, err := p.Acquire()
	require.NoError(t, err)
	a.x = 42

	require.NoError(t, p.Expand(5))
	assert.Equal(t, 6, p.Size())
	assert.Equal(t, 5, p.FreeCount())
	assert.Equal(t, 1, p.UsedCount())
	assert.Equal(t, 42.0, a.x)
	assert.False(t, a.Destroyed())
}

func TestAcquireReturnsDistinctObjects(t *testing.T) {
	p := newPointPool(t, 8)

	seen := make(map[uint64]bool)
	for i := 0; i < 8; i++ {
		obj, err := p.Acquire()
		require.NoError(t, err)
		id := obj.PoolID()
		assert.False(t, seen[id], "acquire handed out the same object twice")
		seen[id] = true
	}
}
