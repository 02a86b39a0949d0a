package deque

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamina-lang/corelib/maybe"
)

func TestNewIsEmpty(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	assert.True(t, d.IsEmpty())
	assert.Equal(t, 0, d.Size())
	assert.Equal(t, minCapacity, len(d.buf))
	_, ok := maybe.Get(d.PopFront())
	assert.False(t, ok)
	_, ok = maybe.Get(d.PopBack())
	assert.False(t, ok)
}

func TestPushFrontPopFrontIsLIFO(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	for i := 1; i <= 5; i++ {
		d.PushFront(i)
	}
	for i := 5; i >= 1; i-- {
		v, ok := maybe.Get(d.PopFront())
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.True(t, d.IsEmpty())
}

func TestPushFrontPopBackIsFIFO(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	for i := 1; i <= 5; i++ {
		d.PushFront(i)
	}
	for i := 1; i <= 5; i++ {
		v, ok := maybe.Get(d.PopBack())
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.True(t, d.IsEmpty())
}

// Scenario §8.4.5: push-front 1,2,3, then push-back 4,5; toList = [3,2,1,4,5];
// six successive pop-backs yield Some(5),Some(4),Some(1),Some(2),Some(3),None.
func TestDequeMixedSequenceScenario(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	d.PushFront(1)
	d.PushFront(2)
	d.PushFront(3)
	d.PushBack(4)
	d.PushBack(5)
	assert.Equal(t, []int{3, 2, 1, 4, 5}, d.ToList())

	want := []int{5, 4, 1, 2, 3}
	for _, w := range want {
		v, ok := maybe.Get(d.PopBack())
		require.True(t, ok)
		assert.Equal(t, w, v)
	}
	_, ok := maybe.Get(d.PopBack())
	assert.False(t, ok)
}

// Scenario §8.4.6: starting empty, push-back 1..20; capacity grows
// 8 -> 16 -> 32; size = 20; popFront 20 times yields Some(1)...Some(20);
// capacity shrinks back toward 8 but never below.
func TestDequeGrowthScenario(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	for i := 1; i <= 20; i++ {
		d.PushBack(i)
	}
	assert.Equal(t, 20, d.Size())
	assert.Equal(t, 32, len(d.buf))

	for i := 1; i <= 20; i++ {
		v, ok := maybe.Get(d.PopFront())
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.True(t, d.IsEmpty())
	assert.GreaterOrEqual(t, len(d.buf), minCapacity)
	assert.Equal(t, minCapacity, len(d.buf))
}

func TestCapacityStaysPowerOfTwoAndLoadFactorBand(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	for i := 0; i < 100; i++ {
		d.PushBack(i)
		assert.True(t, isPowerOfTwo(len(d.buf)))
		lf := float64(d.Size()) / float64(len(d.buf))
		assert.LessOrEqual(t, lf, maxLoadFactor)
	}
	for i := 0; i < 100; i++ {
		_, ok := maybe.Get(d.PopFront())
		require.True(t, ok)
		assert.True(t, isPowerOfTwo(len(d.buf)))
		if len(d.buf) > minCapacity && d.Size() > 0 {
			lf := float64(d.Size()) / float64(len(d.buf))
			assert.GreaterOrEqual(t, lf, minLoadFactor)
		}
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func TestFoldLeftFoldRight(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	for i := 1; i <= 5; i++ {
		d.PushBack(i)
	}
	left := FoldLeft(d, 0, func(acc, x int) int { return acc*10 + x })
	assert.Equal(t, 12345, left)
	right := FoldRight(d, 0, func(x, acc int) int { return acc*10 + x })
	assert.Equal(t, 54321, right)
}

func TestSumProductAndWith(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	for i := 1; i <= 5; i++ {
		d.PushBack(i)
	}
	assert.Equal(t, 15, Sum(d))
	assert.Equal(t, 120, Product(d))
	assert.Equal(t, int64(30), SumWith(d, func(x int) int64 { return int64(x * 2) }))
	assert.Equal(t, 120, ProductWith(d, func(x int) int { return x }))
}

func TestJoinAndJoinWith(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	a := New[int]()
	a.PushBack(1)
	a.PushBack(2)
	b := New[int]()
	b.PushBack(3)
	b.PushBack(4)
	b.PushBack(5)

	joined := Join(a, b)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, joined.ToList())

	zipped := JoinWith(a, b, func(x, y int) int { return x + y })
	assert.Equal(t, []int{4, 6}, zipped.ToList())
}

func TestSameElements(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	a := New[int]()
	a.PushBack(1)
	a.PushBack(2)
	a.PushBack(3)
	b := New[int]()
	b.PushFront(3)
	b.PushFront(2)
	b.PushFront(1)
	assert.True(t, SameElements(a, b))

	c := New[int]()
	c.PushBack(1)
	c.PushBack(2)
	assert.False(t, SameElements(a, c))
}

func TestPeekFrontBack(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	_, ok := maybe.Get(d.PeekFront())
	assert.False(t, ok)
	d.PushBack(1)
	d.PushBack(2)
	f, ok := maybe.Get(d.PeekFront())
	require.True(t, ok)
	assert.Equal(t, 1, f)
	back, ok := maybe.Get(d.PeekBack())
	require.True(t, ok)
	assert.Equal(t, 2, back)
	assert.Equal(t, 2, d.Size(), "peek must not remove elements")
}

func TestSprintDoesNotPanic(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	d.PushBack(1)
	d.PushBack(2)
	assert.NotPanics(t, func() { _ = d.Sprint() })
}

func TestWraparoundResizePreservesOrder(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.deque")()
	d := New[int]()
	// move front and back to index 3 by pushing on the back and popping on
	// the front, so the later pushes wrap back past index 0 before the
	// buffer grows, exercising the two-segment copy.
	for i := 0; i < 3; i++ {
		d.PushBack(i)
	}
	for i := 0; i < 3; i++ {
		_, _ = maybe.Get(d.PopFront())
	}
	for i := 0; i < 10; i++ {
		d.PushBack(i)
	}
	want := make([]int, 10)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, d.ToList())
}
