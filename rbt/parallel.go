package rbt

import (
	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/par"
)

// ParMapWithKey rebuilds t with every value replaced by f(k, v), forking
// across subtrees while the walk's remaining budget and the subtree's
// black-height both justify it (§5). Structure and colors are untouched —
// only values change — so no rebalancing is needed on the way back up.
func ParMapWithKey[K, V, V2 any](t Tree[K, V], f func(K, V) V2) Tree[K, V2] {
	tracer().Debugf("parMapWithKey: starting fork/join walk, blackHeight=%d", t.BlackHeight())
	b := par.Default()
	return Tree[K, V2]{root: parMapNode(b, t.root, f), cmp: t.cmp}
}

func parMapNode[K, V, V2 any](b par.Budget, n *node[K, V], f func(K, V) V2) *node[K, V2] {
	if isLeaf(n) {
		return nil
	}
	if b.Sequential() || !par.ShouldParallelize(blackHeightOf(n)) {
		return mkNode(n.color, mapNodeSeq(n.left, f), n.key, f(n.key, n.val), mapNodeSeq(n.right, f))
	}
	tracer().Debugf("parMapWithKey: forking at key=%v, budget=%d", n.key, b.N)
	lb, rb := b.Split()
	newVal := f(n.key, n.val)
	left, right := par.Join(
		func() *node[K, V2] { return parMapNode(lb, n.left, f) },
		func() *node[K, V2] { return parMapNode(rb, n.right, f) },
	)
	return mkNode(n.color, left, n.key, newVal, right)
}

func mapNodeSeq[K, V, V2 any](n *node[K, V], f func(K, V) V2) *node[K, V2] {
	if isLeaf(n) {
		return nil
	}
	return mkNode(n.color, mapNodeSeq(n.left, f), n.key, f(n.key, n.val), mapNodeSeq(n.right, f))
}

// blackHeightOf computes a subtree's black-height directly on nodes,
// mirroring Tree.BlackHeight but usable before a Tree wrapper exists for
// the subtree in question.
func blackHeightOf[K, V any](n *node[K, V]) int {
	h := 0
	for ; !isLeaf(n); n = n.left {
		if n.color == black {
			h++
		}
	}
	return h
}

// ParCount counts entries satisfying pred, forking the walk per §5.
func ParCount[K, V any](t Tree[K, V], pred func(K, V) bool) int {
	tracer().Debugf("parCount: starting fork/join walk, blackHeight=%d", t.BlackHeight())
	return parCountNode(par.Default(), t.root, pred)
}

func parCountNode[K, V any](b par.Budget, n *node[K, V], pred func(K, V) bool) int {
	if isLeaf(n) {
		return 0
	}
	if b.Sequential() || !par.ShouldParallelize(blackHeightOf(n)) {
		c := 0
		if pred(n.key, n.val) {
			c = 1
		}
		return countSeq(n.left, pred) + c + countSeq(n.right, pred)
	}
	tracer().Debugf("parCount: forking at key=%v, budget=%d", n.key, b.N)
	lb, rb := b.Split()
	c := 0
	if pred(n.key, n.val) {
		c = 1
	}
	left, right := par.Join(
		func() int { return parCountNode(lb, n.left, pred) },
		func() int { return parCountNode(rb, n.right, pred) },
	)
	return left + c + right
}

func countSeq[K, V any](n *node[K, V], pred func(K, V) bool) int {
	if isLeaf(n) {
		return 0
	}
	c := 0
	if pred(n.key, n.val) {
		c = 1
	}
	return countSeq(n.left, pred) + c + countSeq(n.right, pred)
}

// ParMinimumBy returns the entry minimizing key(v), forking per §5. Ties
// keep the leftmost (smallest-key) entry, matching the sequential fold's
// left-to-right tie-breaking. Empty trees yield Nothing.
func ParMinimumBy[K, V, C any](t Tree[K, V], less func(a, b C) bool, key func(K, V) C) maybe.Maybe[Entry[K, V]] {
	if isLeaf(t.root) {
		return maybe.Nothing[Entry[K, V]]()
	}
	best := parExtremeNode(par.Default(), t.root, key, func(a, b C) bool { return less(a, b) })
	return maybe.Just(best)
}

// ParMaximumBy is ParMinimumBy with the comparison inverted.
func ParMaximumBy[K, V, C any](t Tree[K, V], less func(a, b C) bool, key func(K, V) C) maybe.Maybe[Entry[K, V]] {
	if isLeaf(t.root) {
		return maybe.Nothing[Entry[K, V]]()
	}
	best := parExtremeNode(par.Default(), t.root, key, func(a, b C) bool { return less(b, a) })
	return maybe.Just(best)
}

// parExtremeNode finds the entry whose key(k,v) is extremal under
// "keep": keep(candidate, current) == true means candidate wins. Uses
// Budget.SequentialZero, the min/max walk's zero-threshold fallback §5
// calls out specifically (distinct from the budget<=1 fallback the other
// parallel primitives use).
func parExtremeNode[K, V, C any](b par.Budget, n *node[K, V], key func(K, V) C, keep func(candidate, current C) bool) Entry[K, V] {
	if b.SequentialZero() || !par.ShouldParallelize(blackHeightOf(n)) {
		return extremeSeq(n, key, keep)
	}
	tracer().Debugf("parExtremeNode: forking at key=%v, budget=%d", n.key, b.N)
	lb, rb := b.Split()
	self := Entry[K, V]{Key: n.key, Val: n.val}
	var leftBest, rightBest *Entry[K, V]
	l, r := par.Join(
		func() *Entry[K, V] {
			if isLeaf(n.left) {
				return nil
			}
			e := parExtremeNode(lb, n.left, key, keep)
			return &e
		},
		func() *Entry[K, V] {
			if isLeaf(n.right) {
				return nil
			}
			e := parExtremeNode(rb, n.right, key, keep)
			return &e
		},
	)
	leftBest, rightBest = l, r
	// Seed from leftBest (if any) rather than self, and only displace it on
	// a strict win: the left subtree is visited first by the in-order walk
	// extremeSeq performs, so on a tie straddling the node/left-subtree
	// boundary the left entry must keep priority, matching extremeSeq's
	// left-to-right tie-breaking exactly.
	best := self
	if leftBest != nil {
		best = *leftBest
	}
	if keep(key(self.Key, self.Val), key(best.Key, best.Val)) {
		best = self
	}
	if rightBest != nil && keep(key(rightBest.Key, rightBest.Val), key(best.Key, best.Val)) {
		best = *rightBest
	}
	return best
}

func extremeSeq[K, V, C any](n *node[K, V], key func(K, V) C, keep func(candidate, current C) bool) Entry[K, V] {
	first := n
	for !isLeaf(first.left) {
		first = first.left
	}
	best := Entry[K, V]{Key: first.key, Val: first.val}
	var walk func(*node[K, V])
	walk = func(m *node[K, V]) {
		if isLeaf(m) {
			return
		}
		walk(m.left)
		if keep(key(m.key, m.val), key(best.Key, best.Val)) {
			best = Entry[K, V]{Key: m.key, Val: m.val}
		}
		walk(m.right)
	}
	walk(n)
	return best
}

// MapWithKey is the purity-dispatching form of mapWithKey (§4.1.1). An
// effectful f runs in the sequential, effect-order-preserving walk; a pure
// f dispatches to ParMapWithKey once the threshold (§5) is met.
func MapWithKey[K, V, V2 any](t Tree[K, V], purity par.Purity, f func(K, V) V2) Tree[K, V2] {
	if purity == par.Pure && par.ShouldParallelize(t.BlackHeight()) {
		return ParMapWithKey(t, f)
	}
	return Tree[K, V2]{root: mapNodeSeq(t.root, f), cmp: t.cmp}
}

// Count is the purity-dispatching counterpart to ParCount, mirroring
// MapWithKey: a pure predicate above the §5 threshold runs in parallel,
// otherwise the sequential walk runs.
func Count[K, V any](t Tree[K, V], purity par.Purity, pred func(K, V) bool) int {
	if purity == par.Pure && par.ShouldParallelize(t.BlackHeight()) {
		return ParCount(t, pred)
	}
	return countSeq(t.root, pred)
}

// MinimumBy is the purity-dispatching counterpart to ParMinimumBy.
func MinimumBy[K, V, C any](t Tree[K, V], purity par.Purity, less func(a, b C) bool, key func(K, V) C) maybe.Maybe[Entry[K, V]] {
	if isLeaf(t.root) {
		return maybe.Nothing[Entry[K, V]]()
	}
	if purity == par.Pure && par.ShouldParallelize(t.BlackHeight()) {
		return ParMinimumBy(t, less, key)
	}
	return maybe.Just(extremeSeq(t.root, key, func(a, b C) bool { return less(a, b) }))
}

// MaximumBy is the purity-dispatching counterpart to ParMaximumBy.
func MaximumBy[K, V, C any](t Tree[K, V], purity par.Purity, less func(a, b C) bool, key func(K, V) C) maybe.Maybe[Entry[K, V]] {
	if isLeaf(t.root) {
		return maybe.Nothing[Entry[K, V]]()
	}
	if purity == par.Pure && par.ShouldParallelize(t.BlackHeight()) {
		return ParMaximumBy(t, less, key)
	}
	return maybe.Just(extremeSeq(t.root, key, func(a, b C) bool { return less(b, a) }))
}
