package rbt

import (
	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/order"
)

// Tree is an immutable, ordered key-value map backed by a red-black tree
// (§3.1). The zero value is not usable; construct one with New.
type Tree[K, V any] struct {
	root *node[K, V]
	cmp  order.Order[K]
}

// New returns the empty tree ordered by cmp.
func New[K, V any](cmp order.Order[K]) Tree[K, V] {
	return Tree[K, V]{cmp: cmp}
}

// Order returns t's comparator, so wrapper types (ordmap.Map, delaymap's
// DelayMap) can construct a fresh empty tree/map with the same ordering
// without threading an Order[K] value through separately.
func (t Tree[K, V]) Order() order.Order[K] {
	return t.cmp
}

// IsEmpty reports whether t has no entries.
func (t Tree[K, V]) IsEmpty() bool {
	return isLeaf(t.root)
}

// Size counts the entries in t. This is O(n): nodes carry no cached
// subtree size, matching the teacher's persistent structures, which never
// trade structural-sharing simplicity for a maintained counter.
func (t Tree[K, V]) Size() int {
	n := 0
	t.Foreach(func(K, V) { n++ })
	return n
}

// Get looks up k, returning Nothing if it is absent.
func (t Tree[K, V]) Get(k K) maybe.Maybe[V] {
	n := t.root
	for !isLeaf(n) {
		switch t.cmp(k, n.key) {
		case order.LessThan:
			n = n.left
		case order.GreaterThan:
			n = n.right
		default:
			return maybe.Just(n.val)
		}
	}
	return maybe.Nothing[V]()
}

// MemberOf reports whether k has a mapping in t.
func (t Tree[K, V]) MemberOf(k K) bool {
	return maybe.IsJust(t.Get(k))
}

// MinimumKey returns the smallest key in t, or Nothing if t is empty.
func (t Tree[K, V]) MinimumKey() maybe.Maybe[K] {
	if isLeaf(t.root) {
		return maybe.Nothing[K]()
	}
	n := t.root
	for !isLeaf(n.left) {
		n = n.left
	}
	return maybe.Just(n.key)
}

// MaximumKey returns the largest key in t, or Nothing if t is empty.
func (t Tree[K, V]) MaximumKey() maybe.Maybe[K] {
	if isLeaf(t.root) {
		return maybe.Nothing[K]()
	}
	n := t.root
	for !isLeaf(n.right) {
		n = n.right
	}
	return maybe.Just(n.key)
}

// BlackHeight counts the black nodes on the leftmost root-to-leaf path.
// Invariant 3 of §3.1 guarantees every root-to-leaf path has the same
// count, so the leftmost spine is as good as any.
func (t Tree[K, V]) BlackHeight() int {
	h := 0
	for n := t.root; !isLeaf(n); n = n.left {
		if n.color == black {
			h++
		}
	}
	return h
}

// Exists reports whether any entry satisfies pred, short-circuiting on
// the first match.
func (t Tree[K, V]) Exists(pred func(K, V) bool) bool {
	return existsNode(t.root, pred)
}

func existsNode[K, V any](n *node[K, V], pred func(K, V) bool) bool {
	if isLeaf(n) {
		return false
	}
	return pred(n.key, n.val) || existsNode(n.left, pred) || existsNode(n.right, pred)
}

// Forall reports whether every entry satisfies pred.
func (t Tree[K, V]) Forall(pred func(K, V) bool) bool {
	return !t.Exists(func(k K, v V) bool { return !pred(k, v) })
}

// Foreach applies f to every entry in ascending key order.
func (t Tree[K, V]) Foreach(f func(K, V)) {
	foreachNode(t.root, f)
}

func foreachNode[K, V any](n *node[K, V], f func(K, V)) {
	if isLeaf(n) {
		return
	}
	foreachNode(n.left, f)
	f(n.key, n.val)
	foreachNode(n.right, f)
}
