package rbt

import "github.com/lamina-lang/corelib/order"

// balance re-establishes the no-red-red invariant (and, for the
// doubleBlack cases, absorbs a missing black) for a node one level above
// a change. It is Okasaki's four-case insertion rebalance (§4.1.2) plus
// the two additional doubleBlack configurations §4.1.2 calls out for
// deletion — a doubleBlack parent with a red child that itself has a red
// child, on either side — handled by the same four sub-patterns, just
// re-colored by n.color.addRed() so black parents produce red results and
// doubleBlack parents produce black results.
func balance[K, V any](n *node[K, V]) *node[K, V] {
	switch n.color {
	case black, doubleBlack:
		out := n.color.addRed()
		if l := n.left; isRedNode(l) {
			if ll := l.left; isRedNode(ll) {
				return mkNode(out,
					mkNode(black, ll.left, ll.key, ll.val, ll.right),
					l.key, l.val,
					mkNode(black, l.right, n.key, n.val, n.right))
			}
			if lr := l.right; isRedNode(lr) {
				return mkNode(out,
					mkNode(black, l.left, l.key, l.val, lr.left),
					lr.key, lr.val,
					mkNode(black, lr.right, n.key, n.val, n.right))
			}
		}
		if r := n.right; isRedNode(r) {
			if rl := r.left; isRedNode(rl) {
				return mkNode(out,
					mkNode(black, n.left, n.key, n.val, rl.left),
					rl.key, rl.val,
					mkNode(black, rl.right, r.key, r.val, r.right))
			}
			if rr := r.right; isRedNode(rr) {
				return mkNode(out,
					mkNode(black, n.left, n.key, n.val, r.left),
					r.key, r.val,
					mkNode(black, rr.left, rr.key, rr.val, rr.right))
			}
		}
	}
	if n.color == doubleBlack {
		return balanceDoubleBlackNegative(n)
	}
	return n
}

// balanceDoubleBlackNegative absorbs a negativeBlack child produced by
// bubble (delete.go) into a doubleBlack parent — the remaining two of the
// "twelve rotate configurations" §4.1.4 describes that the four red-red
// patterns above don't cover. Grounded on the same case analysis as
// other_examples/jsouthworth-immutable__rb.go's balance(), adapted to
// this package's node representation (DoubleBlackLeaf-as-sentinel rather
// than a typed leaf interface) and to successor-based (not predecessor-
// based) splicing elsewhere in this package.
func balanceDoubleBlackNegative[K, V any](n *node[K, V]) *node[K, V] {
	isBlackInternal := func(m *node[K, V]) bool {
		return m != nil && !m.dbLeaf && m.color == black
	}
	if l := n.left; l != nil && !l.dbLeaf && l.color == negativeBlack {
		if ll := l.left; isBlackInternal(ll) {
			if lr := l.right; isBlackInternal(lr) {
				return mkNode(black,
					balance(mkNode(black, reddenChild(ll), l.key, l.val, lr.left)),
					lr.key, lr.val,
					mkNode(black, lr.right, n.key, n.val, n.right))
			}
		}
	}
	if r := n.right; r != nil && !r.dbLeaf && r.color == negativeBlack {
		if rl := r.left; isBlackInternal(rl) {
			if rr := r.right; isBlackInternal(rr) {
				return mkNode(black,
					mkNode(black, n.left, n.key, n.val, rl.left),
					rl.key, rl.val,
					balance(mkNode(black, rl.right, r.key, r.val, reddenChild(rr))))
			}
		}
	}
	return n
}

// blacken forces the root black if it is red with a red child — the only
// no-red-red violation insertion at the root can produce.
func blacken[K, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	if n.color == red && (isRedNode(n.left) || isRedNode(n.right)) {
		return n.withColor(black)
	}
	return n
}

// Insert adds or overwrites key k with value v, returning a new tree that
// shares every untouched subtree with t.
func (t Tree[K, V]) Insert(k K, v V) Tree[K, V] {
	tracer().Debugf("insert: key=%v", k)
	return Tree[K, V]{root: blacken(insertNode(t.cmp, t.root, k, v)), cmp: t.cmp}
}

func insertNode[K, V any](cmp order.Order[K], n *node[K, V], k K, v V) *node[K, V] {
	if isLeaf(n) {
		tracer().Debugf("insert: new leaf node for key=%v", k)
		return mkNode(red, nil, k, v, nil)
	}
	switch cmp(k, n.key) {
	case order.LessThan:
		tracer().Debugf("insert: descend left of %v", n.key)
		return balance(mkNode(n.color, insertNode(cmp, n.left, k, v), n.key, n.val, n.right))
	case order.GreaterThan:
		tracer().Debugf("insert: descend right of %v", n.key)
		return balance(mkNode(n.color, n.left, n.key, n.val, insertNode(cmp, n.right, k, v)))
	default:
		tracer().Debugf("insert: overwrite value at key=%v", k)
		return mkNode(n.color, n.left, k, v, n.right)
	}
}

// InsertWith adds k/v if absent; if k is already present, the stored value
// becomes f(k, v, oldValue) instead of v (§4.1.3).
func (t Tree[K, V]) InsertWith(f func(k K, vNew, vOld V) V, k K, v V) Tree[K, V] {
	tracer().Debugf("insertWith: key=%v", k)
	return Tree[K, V]{root: blacken(insertWithNode(t.cmp, f, t.root, k, v)), cmp: t.cmp}
}

func insertWithNode[K, V any](cmp order.Order[K], f func(K, V, V) V, n *node[K, V], k K, v V) *node[K, V] {
	if isLeaf(n) {
		return mkNode(red, nil, k, v, nil)
	}
	switch cmp(k, n.key) {
	case order.LessThan:
		return balance(mkNode(n.color, insertWithNode(cmp, f, n.left, k, v), n.key, n.val, n.right))
	case order.GreaterThan:
		return balance(mkNode(n.color, n.left, n.key, n.val, insertWithNode(cmp, f, n.right, k, v)))
	default:
		return mkNode(n.color, n.left, k, f(k, v, n.val), n.right)
	}
}

// UpdateWith replaces k's value with v' if f(k, oldValue) = Just(v'); if f
// returns Nothing, or k is absent, t is returned unchanged — including
// structural identity, so callers relying on sharing see no allocation
// (§4.1.3).
func (t Tree[K, V]) UpdateWith(f func(k K, vOld V) (V, bool), k K) Tree[K, V] {
	newRoot, changed := updateWithNode(t.cmp, f, t.root, k)
	if !changed {
		tracer().Debugf("updateWith: key=%v unchanged", k)
		return t
	}
	tracer().Debugf("updateWith: key=%v replaced", k)
	return Tree[K, V]{root: newRoot, cmp: t.cmp}
}

func updateWithNode[K, V any](cmp order.Order[K], f func(K, V) (V, bool), n *node[K, V], k K) (*node[K, V], bool) {
	if isLeaf(n) {
		return n, false
	}
	switch cmp(k, n.key) {
	case order.LessThan:
		newLeft, changed := updateWithNode(cmp, f, n.left, k)
		if !changed {
			return n, false
		}
		return mkNode(n.color, newLeft, n.key, n.val, n.right), true
	case order.GreaterThan:
		newRight, changed := updateWithNode(cmp, f, n.right, k)
		if !changed {
			return n, false
		}
		return mkNode(n.color, n.left, n.key, n.val, newRight), true
	default:
		if v2, ok := f(k, n.val); ok {
			return mkNode(n.color, n.left, k, v2, n.right), true
		}
		return n, false
	}
}
