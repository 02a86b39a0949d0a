package rbt

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/order"
	"github.com/lamina-lang/corelib/par"
)

func intTree() Tree[int, string] {
	return New[int, string](order.Natural[int]())
}

// checkInvariants walks n verifying §3.1's invariants: no red node has a
// red child, and every root-to-leaf path has the same black count. It
// fails the test (rather than panicking) so a violation reports which
// tree triggered it.
func checkInvariants[V any](t *testing.T, n *node[int, V]) int {
	t.Helper()
	if isLeaf(n) {
		return 1
	}
	require.False(t, n.dbLeaf, "a persisted tree must never expose a DoubleBlackLeaf")
	require.NotEqual(t, doubleBlack, n.color, "a persisted tree must never expose a doubleBlack node")
	require.NotEqual(t, negativeBlack, n.color, "a persisted tree must never expose a negativeBlack node")
	if n.color == red {
		require.False(t, isRedNode(n.left), "red node has a red left child")
		require.False(t, isRedNode(n.right), "red node has a red right child")
	}
	lh := checkInvariants(t, n.left)
	rh := checkInvariants(t, n.right)
	require.Equal(t, lh, rh, "unequal black-height between left and right subtrees")
	if n.color == black {
		return lh + 1
	}
	return lh
}

func assertSorted(t *testing.T, tr Tree[int, string]) {
	t.Helper()
	var keys []int
	tr.Foreach(func(k int, _ string) { keys = append(keys, k) })
	require.True(t, sort.IntsAreSorted(keys), "in-order traversal must yield sorted keys")
}

func TestInsertGetMember(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0} {
		tr = tr.Insert(k, "v")
	}
	checkInvariants(t, tr.root)
	assertSorted(t, tr)
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0} {
		assert.True(t, tr.MemberOf(k))
	}
	assert.False(t, tr.MemberOf(42))
	assert.Equal(t, 10, tr.Size())
}

func TestInsertOverwritesValue(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree().Insert(1, "a").Insert(1, "b")
	v, ok := maybe.Get(tr.Get(1))
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, tr.Size())
}

func TestInsertWithMerges(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := New[int, int](order.Natural[int]())
	merge := func(k, vNew, vOld int) int { return vNew + vOld }
	tr = tr.InsertWith(merge, 1, 10)
	tr = tr.InsertWith(merge, 1, 5)
	v, _ := maybe.Get(tr.Get(1))
	assert.Equal(t, 15, v)
}

func TestUpdateWithNoOpPreservesIdentity(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree().Insert(1, "a").Insert(2, "b")
	same := tr.UpdateWith(func(int, string) (string, bool) { return "", false }, 1)
	assert.Same(t, tr.root, same.root, "a no-op UpdateWith must return the same root")

	absent := tr.UpdateWith(func(int, string) (string, bool) { return "z", true }, 99)
	assert.Same(t, tr.root, absent.root, "UpdateWith on an absent key must be a no-op")
}

func TestUpdateWithReplaces(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree().Insert(1, "a")
	tr = tr.UpdateWith(func(_ int, old string) (string, bool) { return old + old, true }, 1)
	v, _ := maybe.Get(tr.Get(1))
	assert.Equal(t, "aa", v)
}

func TestRemoveMiddle(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		tr = tr.Insert(k, "v")
	}
	tr = tr.Remove(5)
	checkInvariants(t, tr.root)
	assertSorted(t, tr)
	assert.False(t, tr.MemberOf(5))
	assert.Equal(t, 6, tr.Size())
}

func TestRemoveAll(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	keys := []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0, 10, 11, -1, -2}
	tr := intTree()
	for _, k := range keys {
		tr = tr.Insert(k, "v")
	}
	rng := rand.New(rand.NewSource(1))
	perm := append([]int(nil), keys...)
	rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	for _, k := range perm {
		tr = tr.Remove(k)
		checkInvariants(t, tr.root)
		assertSorted(t, tr)
	}
	assert.True(t, tr.IsEmpty())
	assert.Equal(t, 0, tr.Size())
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree().Insert(1, "a").Insert(2, "b")
	same := tr.Remove(99)
	assert.Equal(t, tr.Size(), same.Size())
	assert.True(t, same.MemberOf(1))
	assert.True(t, same.MemberOf(2))
}

func TestRandomInsertRemoveKeepsInvariants(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	rng := rand.New(rand.NewSource(42))
	tr := intTree()
	present := map[int]bool{}
	for i := 0; i < 500; i++ {
		k := rng.Intn(200)
		if rng.Intn(3) == 0 && len(present) > 0 {
			tr = tr.Remove(k)
			delete(present, k)
		} else {
			tr = tr.Insert(k, "v")
			present[k] = true
		}
	}
	checkInvariants(t, tr.root)
	assertSorted(t, tr)
	assert.Equal(t, len(present), tr.Size())
}

func TestMinimumMaximumKey(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	empty := intTree()
	assert.True(t, maybe.IsNothing(empty.MinimumKey()))
	assert.True(t, maybe.IsNothing(empty.MaximumKey()))

	tr := intTree()
	for _, k := range []int{5, 3, 8, 1, 9} {
		tr = tr.Insert(k, "v")
	}
	mn, _ := maybe.Get(tr.MinimumKey())
	mx, _ := maybe.Get(tr.MaximumKey())
	assert.Equal(t, 1, mn)
	assert.Equal(t, 9, mx)
}

func TestExistsForall(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree()
	for _, k := range []int{2, 4, 6, 8} {
		tr = tr.Insert(k, "v")
	}
	assert.True(t, tr.Exists(func(k int, _ string) bool { return k == 6 }))
	assert.False(t, tr.Exists(func(k int, _ string) bool { return k == 7 }))
	assert.True(t, tr.Forall(func(k int, _ string) bool { return k%2 == 0 }))
	assert.False(t, tr.Forall(func(k int, _ string) bool { return k > 2 }))
}

func TestFoldLeftRight(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree()
	for _, k := range []int{3, 1, 2} {
		tr = tr.Insert(k, "v")
	}
	var order []int
	FoldLeft(tr, struct{}{}, func(z struct{}, k int, _ string) struct{} {
		order = append(order, k)
		return z
	})
	assert.Equal(t, []int{1, 2, 3}, order)

	order = nil
	FoldRight(tr, struct{}{}, func(k int, _ string, z struct{}) struct{} {
		order = append(order, k)
		return z
	})
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestReduceLeftRight(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := New[int, int](order.Natural[int]())
	for _, k := range []int{1, 2, 3, 4} {
		tr = tr.Insert(k, k*10)
	}
	sum, ok := maybe.Get(ReduceLeft(tr, func(acc int, _ int, v int) int { return acc + v }))
	require.True(t, ok)
	assert.Equal(t, 100, sum)

	// right fold seeded with 40: 30-40 = -10, 20-(-10) = 30, 10-30 = -20
	diff, ok := maybe.Get(ReduceRight(tr, func(_ int, v int, acc int) int { return v - acc }))
	require.True(t, ok)
	assert.Equal(t, -20, diff)

	empty := New[int, int](order.Natural[int]())
	assert.True(t, maybe.IsNothing(ReduceLeft(empty, func(acc, _, v int) int { return acc + v })))
}

func TestFindLeftRight(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree()
	for _, k := range []int{1, 2, 3, 4, 5} {
		tr = tr.Insert(k, "v")
	}
	e, ok := maybe.Get(FindLeft(tr, func(k int, _ string) bool { return k > 2 }))
	require.True(t, ok)
	assert.Equal(t, 3, e.Key)

	e, ok = maybe.Get(FindRight(tr, func(k int, _ string) bool { return k < 4 }))
	require.True(t, ok)
	assert.Equal(t, 3, e.Key)

	assert.True(t, maybe.IsNothing(FindLeft(tr, func(k int, _ string) bool { return k > 100 })))
}

func TestQueryAndQueryWith(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree()
	for _, k := range []int{1, 2, 3, 4, 5, 6, 7} {
		tr = tr.Insert(k, "v")
	}
	// range query: keys in [3, 5]
	inRange := func(k int) order.Ordering {
		switch {
		case k < 3:
			return order.LessThan
		case k > 5:
			return order.GreaterThan
		default:
			return order.EqualTo
		}
	}
	matches := Query(tr, inRange)
	var keys []int
	for _, e := range matches {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []int{3, 4, 5}, keys)

	doubled := QueryWith(tr, inRange, func(k int, _ string) int { return k * 2 })
	assert.Equal(t, []int{6, 8, 10}, doubled)

	exact := func(target int) func(int) order.Ordering {
		return func(k int) order.Ordering {
			switch {
			case k < target:
				return order.LessThan
			case k > target:
				return order.GreaterThan
			default:
				return order.EqualTo
			}
		}
	}
	single := Query(tr, exact(4))
	require.Len(t, single, 1)
	assert.Equal(t, 4, single[0].Key)
}

func TestParMapWithKey(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := New[int, int](order.Natural[int]())
	for i := 0; i < 2000; i++ {
		tr = tr.Insert(i, i)
	}
	doubled := ParMapWithKey(tr, func(k, v int) int { return v * 2 })
	assert.Equal(t, tr.Size(), doubled.Size())
	doubled.Foreach(func(k, v int) {
		assert.Equal(t, k*2, v)
	})
}

func TestParCount(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := New[int, int](order.Natural[int]())
	for i := 0; i < 2000; i++ {
		tr = tr.Insert(i, i)
	}
	n := ParCount(tr, func(k, _ int) bool { return k%2 == 0 })
	assert.Equal(t, 1000, n)
}

func TestParMinimumMaximumBy(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := New[int, int](order.Natural[int]())
	for i := 0; i < 2000; i++ {
		tr = tr.Insert(i, 1999-i)
	}
	less := func(a, b int) bool { return a < b }
	byVal := func(_ int, v int) int { return v }

	minEntry, ok := maybe.Get(ParMinimumBy(tr, less, byVal))
	require.True(t, ok)
	assert.Equal(t, 0, minEntry.Val)

	maxEntry, ok := maybe.Get(ParMaximumBy(tr, less, byVal))
	require.True(t, ok)
	assert.Equal(t, 1999, maxEntry.Val)
}

func TestBlackHeight(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := New[int, int](order.Natural[int]())
	assert.Equal(t, 0, tr.BlackHeight())
	for i := 0; i < 64; i++ {
		tr = tr.Insert(i, i)
	}
	checkInvariants(t, tr.root)
}

func TestMapWithKeyCountMinMaxDispatch(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := New[int, int](order.Natural[int]())
	for i := 0; i < 50; i++ {
		tr = tr.Insert(i, i)
	}
	doubledPure := MapWithKey(tr, par.Pure, func(k, v int) int { return v * 2 })
	doubledEffectful := MapWithKey(tr, par.Effectful, func(k, v int) int { return v * 2 })
	assert.Equal(t, tr.Size(), doubledPure.Size())
	assert.Equal(t, tr.Size(), doubledEffectful.Size())

	assert.Equal(t, 25, Count(tr, par.Pure, func(k, _ int) bool { return k%2 == 0 }))
	assert.Equal(t, 25, Count(tr, par.Effectful, func(k, _ int) bool { return k%2 == 0 }))

	less := func(a, b int) bool { return a < b }
	byVal := func(_ int, v int) int { return v }
	mn, _ := maybe.Get(MinimumBy(tr, par.Pure, less, byVal))
	assert.Equal(t, 0, mn.Val)
	mx, _ := maybe.Get(MaximumBy(tr, par.Effectful, less, byVal))
	assert.Equal(t, 49, mx.Val)
}

func TestSprintDoesNotPanic(t *testing.T) {
	defer gotestingadapter.QuickConfig(t, "core.rbt")()
	tr := intTree().Insert(1, "a").Insert(2, "b").Insert(0, "c")
	out := tr.Sprint()
	assert.NotEmpty(t, out)
}
