package ordmap

import (
	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/order"
)

// Union is left-biased by default: on a key present in both maps, a's
// value wins (§4.2).
func Union[K, V any](a, b Map[K, V]) Map[K, V] {
	return UnionWith(a, b, func(vLeft, _ V) V { return vLeft })
}

// UnionWithKey merges a and b, resolving collisions with f(k, vLeft, vRight).
//
// Per §4.2, when the two trees have unequal black-heights, the shallower
// tree is folded into the deeper one to cut the work down from O(m+n) to
// O(m log n) for a much-smaller m. Folding a's entries into b requires no
// argument swap (f already receives left-then-right); folding b's entries
// into a does, because each b-originating insertWith call would otherwise
// receive (vRight, vLeft) where f expects (vLeft, vRight).
func UnionWithKey[K, V any](a, b Map[K, V], f func(k K, vLeft, vRight V) V) Map[K, V] {
	if a.t.BlackHeight() >= b.t.BlackHeight() {
		tracer().Debugf("union: folding b (size=%d) into a (size=%d)", b.Size(), a.Size())
		out := a
		b.Foreach(func(k K, vRight V) {
			out = out.InsertWith(func(k K, vNewRight, vOldLeft V) V { return f(k, vOldLeft, vNewRight) }, k, vRight)
		})
		return out
	}
	tracer().Debugf("union: folding a (size=%d) into b (size=%d)", a.Size(), b.Size())
	out := b
	a.Foreach(func(k K, vLeft V) {
		out = out.InsertWith(func(k K, vNewLeft, vOldRight V) V { return f(k, vNewLeft, vOldRight) }, k, vLeft)
	})
	return out
}

// UnionWith is UnionWithKey without access to the colliding key.
func UnionWith[K, V any](a, b Map[K, V], f func(vLeft, vRight V) V) Map[K, V] {
	return UnionWithKey(a, b, func(_ K, vLeft, vRight V) V { return f(vLeft, vRight) })
}

// Intersection keeps a's keys that are also in b, with b's value —
// {k ↦ v_m2 : k ∈ m1} per §4.2.
func Intersection[K, V any](a, b Map[K, V]) Map[K, V] {
	return IntersectionWithKey(a, b, func(_ K, _, vRight V) V { return vRight })
}

// IntersectionWithKey keeps keys present in both, merged with
// f(k, vLeft, vRight), applied exactly where both maps contain k (§4.2's
// "fold through adjustWithKey").
func IntersectionWithKey[K, V any](a, b Map[K, V], f func(k K, vLeft, vRight V) V) Map[K, V] {
	out := New[K, V](treeCmp(a))
	a.Foreach(func(k K, vLeft V) {
		if vRight, ok := maybe.Get(b.Get(k)); ok {
			out = out.Insert(k, f(k, vLeft, vRight))
		}
	})
	return out
}

// IntersectionWith is IntersectionWithKey without the key.
func IntersectionWith[K, V any](a, b Map[K, V], f func(vLeft, vRight V) V) Map[K, V] {
	return IntersectionWithKey(a, b, func(_ K, vLeft, vRight V) V { return f(vLeft, vRight) })
}

// Difference keeps a's keys that are absent from b (§4.2).
func Difference[K, V any](a, b Map[K, V]) Map[K, V] {
	out := New[K, V](treeCmp(a))
	a.Foreach(func(k K, v V) {
		if !b.MemberOf(k) {
			out = out.Insert(k, v)
		}
	})
	return out
}

// DifferenceWithKey keeps a's keys absent from b unconditionally, and for
// keys present in both calls f(k, vLeft, vRight): a Just(v') keeps the
// pair with v', a Nothing drops it (§4.2).
func DifferenceWithKey[K, V any](a, b Map[K, V], f func(k K, vLeft, vRight V) maybe.Maybe[V]) Map[K, V] {
	out := New[K, V](treeCmp(a))
	a.Foreach(func(k K, vLeft V) {
		vRight, ok := maybe.Get(b.Get(k))
		if !ok {
			out = out.Insert(k, vLeft)
			return
		}
		if v2, keep := maybe.Get(f(k, vLeft, vRight)); keep {
			out = out.Insert(k, v2)
		}
	})
	return out
}

// DifferenceWith is DifferenceWithKey without the key.
func DifferenceWith[K, V any](a, b Map[K, V], f func(vLeft, vRight V) maybe.Maybe[V]) Map[K, V] {
	return DifferenceWithKey(a, b, func(_ K, vLeft, vRight V) maybe.Maybe[V] { return f(vLeft, vRight) })
}

// IsSubmapOf reports whether every pair of a appears in b.
func IsSubmapOf[K, V comparable](a, b Map[K, V]) bool {
	return a.Forall(func(k K, v V) bool {
		bv, ok := maybe.Get(b.Get(k))
		return ok && bv == v
	})
}

// IsProperSubmapOf is IsSubmapOf plus a strict size check.
func IsProperSubmapOf[K, V comparable](a, b Map[K, V]) bool {
	return a.Size() < b.Size() && IsSubmapOf(a, b)
}

func treeCmp[K, V any](m Map[K, V]) order.Order[K] {
	return m.t.Order()
}
