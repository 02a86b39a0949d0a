// Package ordmap implements Map[K,V] (§3.2, §4.2): a thin, persistent,
// domain-oriented wrapper over rbt.Tree[K,V]. It carries no state beyond
// the wrapped tree — every operation here either delegates straight
// through to rbt or composes a handful of rbt primitives.
package ordmap

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/lamina-lang/corelib"
	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/order"
	"github.com/lamina-lang/corelib/par"
	"github.com/lamina-lang/corelib/rbt"
)

// tracer traces with key 'core.ordmap'.
func tracer() tracing.Trace {
	return tracing.Select("core.ordmap")
}

// Map is an immutable, ordered key-value map.
type Map[K, V any] struct {
	t rbt.Tree[K, V]
}

// New returns the empty map ordered by cmp.
func New[K, V any](cmp order.Order[K]) Map[K, V] {
	return Map[K, V]{t: rbt.New[K, V](cmp)}
}

// FromTree wraps an existing rbt.Tree as a Map, with no copying.
func FromTree[K, V any](t rbt.Tree[K, V]) Map[K, V] {
	return Map[K, V]{t: t}
}

// Tree unwraps m, exposing the backing rbt.Tree for callers (ordmap's
// sibling packages, or tests) that need tree-level operations this
// wrapper doesn't re-expose.
func (m Map[K, V]) Tree() rbt.Tree[K, V] {
	return m.t
}

func (m Map[K, V]) IsEmpty() bool           { return m.t.IsEmpty() }
func (m Map[K, V]) Size() int               { return m.t.Size() }
func (m Map[K, V]) Get(k K) maybe.Maybe[V]  { return m.t.Get(k) }
func (m Map[K, V]) MemberOf(k K) bool       { return m.t.MemberOf(k) }
func (m Map[K, V]) MinimumKey() maybe.Maybe[K] { return m.t.MinimumKey() }
func (m Map[K, V]) MaximumKey() maybe.Maybe[K] { return m.t.MaximumKey() }
func (m Map[K, V]) Exists(pred func(K, V) bool) bool { return m.t.Exists(pred) }
func (m Map[K, V]) Forall(pred func(K, V) bool) bool { return m.t.Forall(pred) }
func (m Map[K, V]) Foreach(f func(K, V))             { m.t.Foreach(f) }

func (m Map[K, V]) Insert(k K, v V) Map[K, V] {
	tracer().Debugf("map insert: key=%v, size before=%d", k, m.Size())
	return Map[K, V]{t: m.t.Insert(k, v)}
}

func (m Map[K, V]) InsertWith(f func(k K, vNew, vOld V) V, k K, v V) Map[K, V] {
	tracer().Debugf("map insertWith: key=%v", k)
	return Map[K, V]{t: m.t.InsertWith(f, k, v)}
}

func (m Map[K, V]) UpdateWith(f func(k K, vOld V) (V, bool), k K) Map[K, V] {
	tracer().Debugf("map updateWith: key=%v", k)
	return Map[K, V]{t: m.t.UpdateWith(f, k)}
}

func (m Map[K, V]) Remove(k K) Map[K, V] {
	tracer().Debugf("map remove: key=%v, size before=%d", k, m.Size())
	return Map[K, V]{t: m.t.Remove(k)}
}

// ToList returns m's entries in ascending key order.
func (m Map[K, V]) ToList() []rbt.Entry[K, V] {
	var out []rbt.Entry[K, V]
	m.Foreach(func(k K, v V) { out = append(out, rbt.Entry[K, V]{Key: k, Val: v}) })
	return out
}

// FromList builds a Map from pairs, later pairs overwriting earlier ones
// on key collision — the inverse of ToList, satisfying the §8.2 law
// fromList(toList(m)) = m.
func FromList[K, V any](cmp order.Order[K], pairs []rbt.Entry[K, V]) Map[K, V] {
	tracer().Debugf("map fromList: %d pairs", len(pairs))
	m := New[K, V](cmp)
	for _, p := range pairs {
		m = m.Insert(p.Key, p.Val)
	}
	return m
}

// FoldLeft and FoldRight are free functions, not methods, because Go
// forbids a method from introducing a type parameter the receiver
// doesn't already carry (the fold's accumulator type A).
func FoldLeft[K, V, A any](m Map[K, V], z A, f func(A, K, V) A) A {
	return rbt.FoldLeft(m.t, z, f)
}

func FoldRight[K, V, A any](m Map[K, V], z A, f func(K, V, A) A) A {
	return rbt.FoldRight(m.t, z, f)
}

func (m Map[K, V]) ReduceLeft(f func(acc V, k K, v V) V) maybe.Maybe[V] {
	return rbt.ReduceLeft(m.t, f)
}

func (m Map[K, V]) ReduceRight(f func(k K, v V, acc V) V) maybe.Maybe[V] {
	return rbt.ReduceRight(m.t, f)
}

func (m Map[K, V]) FindLeft(pred func(K, V) bool) maybe.Maybe[rbt.Entry[K, V]] {
	return rbt.FindLeft(m.t, pred)
}

func (m Map[K, V]) FindRight(pred func(K, V) bool) maybe.Maybe[rbt.Entry[K, V]] {
	return rbt.FindRight(m.t, pred)
}

// Query returns the in-order list of pairs where p(k) = EqualTo (§4.2).
func (m Map[K, V]) Query(p func(K) order.Ordering) []rbt.Entry[K, V] {
	return rbt.Query(m.t, p)
}

func QueryWith[K, V, A any](m Map[K, V], p func(K) order.Ordering, f func(K, V) A) []A {
	return rbt.QueryWith(m.t, p, f)
}

// MapWithKey transforms every value with f, dispatching to a parallel
// walk when f is Pure and large enough to clear the §5 threshold.
func MapWithKey[K, V, V2 any](m Map[K, V], purity par.Purity, f func(K, V) V2) Map[K, V2] {
	return Map[K, V2]{t: rbt.MapWithKey(m.t, purity, f)}
}

// MapValues is MapWithKey specialized to a value-only transform.
func MapValues[K, V, V2 any](m Map[K, V], purity par.Purity, f func(V) V2) Map[K, V2] {
	return MapWithKey(m, purity, func(_ K, v V) V2 { return f(v) })
}

// ComposeMapValues chains two value transforms through fp.Compose and
// applies the result in a single tree walk, instead of building the
// intermediate Map[K, V2] two chained MapValues calls would materialize.
func ComposeMapValues[K, V, V2, V3 any](m Map[K, V], purity par.Purity, f func(V) V2, g func(V2) V3) Map[K, V3] {
	return MapValues(m, purity, fp.Compose(f, g))
}

// Count counts entries satisfying pred, dispatching to a parallel walk
// under the same rule as MapWithKey — the Map-level caller for
// rbt.ParCount §5 names as Map::count's backing primitive.
func Count[K, V any](m Map[K, V], purity par.Purity, pred func(K, V) bool) int {
	return rbt.Count(m.t, purity, pred)
}

// MinimumValueBy and MaximumValueBy are the Map-level callers for
// rbt.MinimumBy/MaximumBy (§5: "used by Map::minimumValueBy, etc.") —
// spec.md names the underlying RBT primitives but leaves the Map-level
// method implicit; this supplies it (SPEC_FULL §5).
func MinimumValueBy[K, V, C any](m Map[K, V], purity par.Purity, less func(a, b C) bool, key func(K, V) C) maybe.Maybe[rbt.Entry[K, V]] {
	return rbt.MinimumBy(m.t, purity, less, key)
}

func MaximumValueBy[K, V, C any](m Map[K, V], purity par.Purity, less func(a, b C) bool, key func(K, V) C) maybe.Maybe[rbt.Entry[K, V]] {
	return rbt.MaximumBy(m.t, purity, less, key)
}

// String renders m as its sorted pair sequence, the representation §3.2
// defines equality/ordering/hashing over.
func (m Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("Map{")
	first := true
	m.Foreach(func(k K, v V) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", k, v)
	})
	b.WriteString("}")
	return b.String()
}

// Equal reports whether a and b contain exactly the same pairs, per §3.2's
// "defined by sorted sequence" contract, for comparable K and V.
func Equal[K, V comparable](a, b Map[K, V]) bool {
	if a.Size() != b.Size() {
		return false
	}
	as, bs := a.ToList(), b.ToList()
	for i := range as {
		if as[i].Key != bs[i].Key || as[i].Val != bs[i].Val {
			return false
		}
	}
	return true
}

// EqualWith is Equal's generic sibling for value types with no built-in
// equality.
func EqualWith[K comparable, V any](a, b Map[K, V], eq func(V, V) bool) bool {
	if a.Size() != b.Size() {
		return false
	}
	as, bs := a.ToList(), b.ToList()
	for i := range as {
		if as[i].Key != bs[i].Key || !eq(as[i].Val, bs[i].Val) {
			return false
		}
	}
	return true
}

// Hash combines m's sorted pair sequence into a single hash, via the
// String representation — consistent with Equal by construction: equal
// maps have an identical sorted pair sequence and therefore an identical
// string and hash.
func (m Map[K, V]) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(m.String()))
	return h.Sum64()
}
