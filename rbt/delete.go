package rbt

import "github.com/lamina-lang/corelib/order"

// Remove deletes k's mapping if present, restoring all four invariants of
// §3.1. Absent keys leave the entries unchanged (§7.1), though the root
// may come back recolored by reddenRootIfNeeded.
func (t Tree[K, V]) Remove(k K) Tree[K, V] {
	tracer().Debugf("remove: key=%v", k)
	prepared := reddenRootIfNeeded(t.root)
	out := finalizeRoot(removeNode(t.cmp, prepared, k))
	tracer().Debugf("remove: key=%v done", k)
	return Tree[K, V]{root: out, cmp: t.cmp}
}

// reddenRootIfNeeded is step 1 of §4.1.4: turn a black root red when both
// of its children are black nodes with all-black children, the
// precondition the recursive descent relies on to keep the "a doubleBlack
// sibling is never a bare Leaf" argument sound.
func reddenRootIfNeeded[K, V any](n *node[K, V]) *node[K, V] {
	if n == nil || n.dbLeaf || n.color != black {
		return n
	}
	if allBlackChildren(n.left) && allBlackChildren(n.right) {
		return n.withColor(red)
	}
	return n
}

func allBlackChildren[K, V any](n *node[K, V]) bool {
	if isLeaf(n) {
		return true
	}
	return n.color == black && isBlackNode(n.left) && isBlackNode(n.right)
}

// finalizeRoot is step 5 of §4.1.4: a DoubleBlackLeaf root demotes to
// Leaf; a lingering doubleBlack root (should never happen — see the Open
// Question note in DESIGN.md) demotes to black.
func finalizeRoot[K, V any](n *node[K, V]) *node[K, V] {
	if isDBLeaf(n) {
		return nil
	}
	if n != nil && !n.dbLeaf && n.color == doubleBlack {
		return n.withColor(black)
	}
	return n
}

// removeNode is §4.1.4's removeHelper: recurse down, splice out the
// target (via removeAt), bubble doubleBlack markers back up on the way.
func removeNode[K, V any](cmp order.Order[K], n *node[K, V], k K) *node[K, V] {
	if isLeaf(n) {
		return n
	}
	switch cmp(k, n.key) {
	case order.LessThan:
		newLeft := removeNode(cmp, n.left, k)
		if newLeft == n.left {
			return n
		}
		tracer().Debugf("remove: bubble after descending left of %v", n.key)
		return bubble(mkNode(n.color, newLeft, n.key, n.val, n.right))
	case order.GreaterThan:
		newRight := removeNode(cmp, n.right, k)
		if newRight == n.right {
			return n
		}
		tracer().Debugf("remove: bubble after descending right of %v", n.key)
		return bubble(mkNode(n.color, n.left, n.key, n.val, newRight))
	default:
		tracer().Debugf("remove: splicing out key=%v", n.key)
		return removeAt(n)
	}
}

// removeAt splices n itself out of the tree. The first four cases are
// the terminal shapes §4.1.4 step 2 handles directly (the one-red-child
// shape appears once per side); the default case
// splices in the in-order successor via minDelete, per §4.1.5.
func removeAt[K, V any](n *node[K, V]) *node[K, V] {
	leftLeaf, rightLeaf := isLeaf(n.left), isLeaf(n.right)
	switch {
	case n.color == red && leftLeaf && rightLeaf:
		return nil
	case n.color == black && leftLeaf && rightLeaf:
		return dbLeafNode[K, V]()
	case n.color == black && leftLeaf && !rightLeaf && n.right.color == red:
		r := n.right
		return mkNode(black, r.left, r.key, r.val, r.right)
	case n.color == black && !leftLeaf && n.left.color == red && rightLeaf:
		l := n.left
		return mkNode(black, l.left, l.key, l.val, l.right)
	default:
		sk, sv, newRight := minDeleteNode(n.right)
		return bubble(mkNode(n.color, n.left, sk, sv, newRight))
	}
}

// minDeleteNode descends the leftmost spine of n (which must be non-empty
// — callers only ever invoke it on a subtree already known to be
// non-leaf, per removeAt's default case) and returns the leftmost node's
// key/value together with the subtree that results from removing it.
//
// The default arm below is the one "unreachable" §4.1.6 allows: it is
// only reached if a caller passes a tree that already violated the BST
// or black-height invariant, i.e. a programmer error, not a runtime
// condition.
func minDeleteNode[K, V any](n *node[K, V]) (K, V, *node[K, V]) {
	if isLeaf(n) {
		panic("rbt: minDelete called on an empty subtree")
	}
	if isLeaf(n.left) {
		switch {
		case n.color == red && isLeaf(n.right):
			return n.key, n.val, nil
		case n.color == black && isLeaf(n.right):
			return n.key, n.val, dbLeafNode[K, V]()
		case n.color == black && isRedNode(n.right):
			r := n.right
			return n.key, n.val, mkNode(black, r.left, r.key, r.val, r.right)
		default:
			panic("rbt: minDelete found a leftmost node with an inconsistent shape")
		}
	}
	k, v, newLeft := minDeleteNode(n.left)
	return k, v, bubble(mkNode(n.color, newLeft, n.key, n.val, n.right))
}

// bubble is the "rotate" step of §4.1.4: if either freshly-rebuilt child
// is doubleBlack, the missing black is absorbed into this node (which
// itself becomes one shade blacker) and both children are compensated one
// shade redder before balance does the actual rotation. Otherwise it is
// just balance.
func bubble[K, V any](n *node[K, V]) *node[K, V] {
	if isDoubleBlack(n.left) || isDoubleBlack(n.right) {
		tracer().Debugf("bubble: absorbing doubleBlack child at key=%v", n.key)
		return balance(mkNode(n.color.addBlack(), addRedSubtree(n.left), n.key, n.val, addRedSubtree(n.right)))
	}
	return balance(n)
}

// addRedSubtree makes a child one shade redder, the counterpart to
// addBlack in bubble. Called only on children of a node about to be
// bubbled, which by the black-height invariant can never be a bare Leaf
// (its doubleBlack sibling carries at least one black) — addRedSubtree(Leaf) is exactly as unreachable as minDelete's
// default arm.
func addRedSubtree[K, V any](n *node[K, V]) *node[K, V] {
	if isLeaf(n) {
		panic("rbt: addRed on an empty subtree is unreachable by invariant")
	}
	if n.dbLeaf {
		return nil
	}
	return n.withColor(n.color.addRed())
}
