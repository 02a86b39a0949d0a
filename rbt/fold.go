package rbt

import (
	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/order"
)

// Entry is a key/value pair, used where an operation needs to hand back
// or receive a pair rather than two separate values.
type Entry[K, V any] struct {
	Key K
	Val V
}

// FoldLeft folds over t in ascending key order: f(...f(f(z, k0, v0), k1, v1)..., kn, vn).
func FoldLeft[K, V, A any](t Tree[K, V], z A, f func(A, K, V) A) A {
	return foldLeftNode(t.root, z, f)
}

func foldLeftNode[K, V, A any](n *node[K, V], z A, f func(A, K, V) A) A {
	if isLeaf(n) {
		return z
	}
	z = foldLeftNode(n.left, z, f)
	z = f(z, n.key, n.val)
	return foldLeftNode(n.right, z, f)
}

// FoldRight folds over t in descending key order: f(k0, v0, f(k1, v1, ...f(kn, vn, z)...)).
func FoldRight[K, V, A any](t Tree[K, V], z A, f func(K, V, A) A) A {
	return foldRightNode(t.root, z, f)
}

func foldRightNode[K, V, A any](n *node[K, V], z A, f func(K, V, A) A) A {
	if isLeaf(n) {
		return z
	}
	z = foldRightNode(n.right, z, f)
	z = f(n.key, n.val, z)
	return foldRightNode(n.left, z, f)
}

// ReduceLeft folds t's values (ascending key order), seeding the
// accumulator with the leftmost value instead of a caller-supplied zero.
// Returns Nothing for an empty tree, since there is no value to seed with.
func ReduceLeft[K, V any](t Tree[K, V], f func(acc V, k K, v V) V) maybe.Maybe[V] {
	if isLeaf(t.root) {
		return maybe.Nothing[V]()
	}
	first := true
	var acc V
	t.Foreach(func(k K, v V) {
		if first {
			acc, first = v, false
			return
		}
		acc = f(acc, k, v)
	})
	return maybe.Just(acc)
}

// ReduceRight is ReduceLeft's mirror, seeding with the rightmost value and
// folding leftward.
func ReduceRight[K, V any](t Tree[K, V], f func(k K, v V, acc V) V) maybe.Maybe[V] {
	if isLeaf(t.root) {
		return maybe.Nothing[V]()
	}
	first := true
	var acc V
	foldRightNode(t.root, struct{}{}, func(k K, v V, z struct{}) struct{} {
		if first {
			acc, first = v, false
			return z
		}
		acc = f(k, v, acc)
		return z
	})
	return maybe.Just(acc)
}

// FindLeft returns the first entry (in ascending key order) satisfying
// pred, or Nothing.
func FindLeft[K, V any](t Tree[K, V], pred func(K, V) bool) maybe.Maybe[Entry[K, V]] {
	return findLeftNode(t.root, pred)
}

func findLeftNode[K, V any](n *node[K, V], pred func(K, V) bool) maybe.Maybe[Entry[K, V]] {
	if isLeaf(n) {
		return maybe.Nothing[Entry[K, V]]()
	}
	if m := findLeftNode(n.left, pred); maybe.IsJust(m) {
		return m
	}
	if pred(n.key, n.val) {
		return maybe.Just(Entry[K, V]{Key: n.key, Val: n.val})
	}
	return findLeftNode(n.right, pred)
}

// FindRight is FindLeft's mirror: the first match in descending key order.
func FindRight[K, V any](t Tree[K, V], pred func(K, V) bool) maybe.Maybe[Entry[K, V]] {
	return findRightNode(t.root, pred)
}

func findRightNode[K, V any](n *node[K, V], pred func(K, V) bool) maybe.Maybe[Entry[K, V]] {
	if isLeaf(n) {
		return maybe.Nothing[Entry[K, V]]()
	}
	if m := findRightNode(n.right, pred); maybe.IsJust(m) {
		return m
	}
	if pred(n.key, n.val) {
		return maybe.Just(Entry[K, V]{Key: n.key, Val: n.val})
	}
	return findRightNode(n.left, pred)
}

// Query collects every entry whose key compares EqualTo under p, in
// ascending key order, pruning subtrees p's three-way result rules out
// entirely (§4.1.1: "uses three-way compare to prune subtrees"). p(k)
// returns LessThan when k lies before the entries being sought (so only
// the right subtree can still match), GreaterThan when k lies after (only
// the left subtree can still match), and EqualTo for a match — in which
// case both subtrees are still searched, since a range-shaped p can match
// more than one key.
func Query[K, V any](t Tree[K, V], p func(K) order.Ordering) []Entry[K, V] {
	var out []Entry[K, V]
	queryNode(t.root, p, func(k K, v V) { out = append(out, Entry[K, V]{Key: k, Val: v}) })
	return out
}

// QueryWith applies f to every entry Query would collect, instead of
// collecting Entry values.
func QueryWith[K, V, A any](t Tree[K, V], p func(K) order.Ordering, f func(K, V) A) []A {
	var out []A
	queryNode(t.root, p, func(k K, v V) { out = append(out, f(k, v)) })
	return out
}

func queryNode[K, V any](n *node[K, V], p func(K) order.Ordering, emit func(K, V)) {
	if isLeaf(n) {
		return
	}
	switch p(n.key) {
	case order.LessThan:
		queryNode(n.right, p, emit)
	case order.GreaterThan:
		queryNode(n.left, p, emit)
	default:
		queryNode(n.left, p, emit)
		emit(n.key, n.val)
		queryNode(n.right, p, emit)
	}
}
