// Package delaymap implements DelayMap[K,V] (§3.3, §4.3): a map backed by
// RBT[K, Thunk[V]] that defers every value computation until something
// actually reads it. Every combinator that takes a caller-supplied
// function exists as a lazy/eager pair, with a dispatching wrapper picking
// between them from a par.Purity tag — the two-API resolution of the
// purity-reification collaborator (§6.1, §7) Go has no runtime hook for.
package delaymap

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/order"
	"github.com/lamina-lang/corelib/ordmap"
	"github.com/lamina-lang/corelib/par"
	"github.com/lamina-lang/corelib/rbt"
)

// tracer traces with key 'core.delaymap'.
func tracer() tracing.Trace {
	return tracing.Select("core.delaymap")
}

// DelayMap is an immutable, ordered map whose values are forced on demand.
type DelayMap[K, V any] struct {
	t rbt.Tree[K, *Thunk[V]]
}

// New returns the empty DelayMap ordered by cmp.
func New[K, V any](cmp order.Order[K]) DelayMap[K, V] {
	return DelayMap[K, V]{t: rbt.New[K, *Thunk[V]](cmp)}
}

func (m DelayMap[K, V]) IsEmpty() bool { return m.t.IsEmpty() }
func (m DelayMap[K, V]) Size() int     { return m.t.Size() }
func (m DelayMap[K, V]) MemberOf(k K) bool { return m.t.MemberOf(k) }
func (m DelayMap[K, V]) MinimumKey() maybe.Maybe[K] { return m.t.MinimumKey() }
func (m DelayMap[K, V]) MaximumKey() maybe.Maybe[K] { return m.t.MaximumKey() }

// Insert stores v as an already-evaluated thunk (Done): v is a plain value,
// so there is no computation left to defer.
func (m DelayMap[K, V]) Insert(k K, v V) DelayMap[K, V] {
	tracer().Debugf("delaymap insert: key=%v (value already forced by caller)", k)
	return DelayMap[K, V]{t: m.t.Insert(k, Done(v))}
}

// InsertWithPure is InsertWith's lazy variant: the merge runs only when the
// resulting entry is itself forced, and forces vOld only then too — an
// absent-until-read entry is never touched at insert time (§4.3).
func (m DelayMap[K, V]) InsertWithPure(f func(k K, vNew, vOld V) V, k K, v V) DelayMap[K, V] {
	tracer().Debugf("delaymap insertWithPure: key=%v, merge deferred", k)
	return DelayMap[K, V]{t: m.t.InsertWith(func(k K, tNew, tOld *Thunk[V]) *Thunk[V] {
		return Delay(func() V { return f(k, tNew.Force(), tOld.Force()) })
	}, k, Done(v))}
}

// InsertWithEffectful is InsertWith's eager variant: runs f immediately,
// forcing the existing entry it needs right away.
func (m DelayMap[K, V]) InsertWithEffectful(f func(k K, vNew, vOld V) V, k K, v V) DelayMap[K, V] {
	tracer().Debugf("delaymap insertWithEffectful: key=%v, merge runs now", k)
	return DelayMap[K, V]{t: m.t.InsertWith(func(k K, tNew, tOld *Thunk[V]) *Thunk[V] {
		return Done(f(k, tNew.Force(), tOld.Force()))
	}, k, Done(v))}
}

// InsertWith dispatches to InsertWithPure or InsertWithEffectful by purity.
func (m DelayMap[K, V]) InsertWith(purity par.Purity, f func(k K, vNew, vOld V) V, k K, v V) DelayMap[K, V] {
	if purity == par.Pure {
		return m.InsertWithPure(f, k, v)
	}
	return m.InsertWithEffectful(f, k, v)
}

// UpdateWithPure is UpdateWith's lazy variant. It always rebuilds the spine
// with a fresh thunk that decides replace-or-keep only when forced, rather
// than forcing vOld now to make that decision — this trades away the
// structural-identity-on-no-op optimization rbt.Tree.UpdateWith gives the
// eager path, since that optimization needs the decision made up front.
func (m DelayMap[K, V]) UpdateWithPure(f func(k K, vOld V) (V, bool), k K) DelayMap[K, V] {
	return DelayMap[K, V]{t: m.t.UpdateWith(func(k K, tOld *Thunk[V]) (*Thunk[V], bool) {
		return Delay(func() V {
			if v2, ok := f(k, tOld.Force()); ok {
				return v2
			}
			return tOld.Force()
		}), true
	}, k)}
}

// UpdateWithEffectful is UpdateWith's eager variant: forces vOld now, and
// preserves t's structural identity when f declines to replace (§4.1.3).
func (m DelayMap[K, V]) UpdateWithEffectful(f func(k K, vOld V) (V, bool), k K) DelayMap[K, V] {
	return DelayMap[K, V]{t: m.t.UpdateWith(func(k K, tOld *Thunk[V]) (*Thunk[V], bool) {
		if v2, ok := f(k, tOld.Force()); ok {
			return Done(v2), true
		}
		return tOld, false
	}, k)}
}

// UpdateWith dispatches to UpdateWithPure or UpdateWithEffectful by purity.
func (m DelayMap[K, V]) UpdateWith(purity par.Purity, f func(k K, vOld V) (V, bool), k K) DelayMap[K, V] {
	if purity == par.Pure {
		return m.UpdateWithPure(f, k)
	}
	return m.UpdateWithEffectful(f, k)
}

// Remove deletes k's mapping if present; there is no function argument, so
// there is no lazy/eager distinction to make.
func (m DelayMap[K, V]) Remove(k K) DelayMap[K, V] {
	tracer().Debugf("delaymap remove: key=%v", k)
	return DelayMap[K, V]{t: m.t.Remove(k)}
}

// MapWithKeyPure is MapWithKey's lazy variant: each new entry's
// transformation is itself a thunk, forced only when the entry is read.
func MapWithKeyPure[K, V, V2 any](m DelayMap[K, V], f func(K, V) V2) DelayMap[K, V2] {
	return DelayMap[K, V2]{t: rbt.MapWithKey(m.t, par.Pure, func(k K, tOld *Thunk[V]) *Thunk[V2] {
		return Delay(func() V2 { return f(k, tOld.Force()) })
	})}
}

// MapWithKeyEffectful is MapWithKey's eager variant: every value is forced
// and transformed immediately, walking sequentially.
func MapWithKeyEffectful[K, V, V2 any](m DelayMap[K, V], f func(K, V) V2) DelayMap[K, V2] {
	return DelayMap[K, V2]{t: rbt.MapWithKey(m.t, par.Effectful, func(k K, tOld *Thunk[V]) *Thunk[V2] {
		return Done(f(k, tOld.Force()))
	})}
}

// MapWithKey dispatches to MapWithKeyPure or MapWithKeyEffectful by purity
// (free function, not a method: Go forbids a method from introducing the
// new type parameter V2 the receiver doesn't already carry).
func MapWithKey[K, V, V2 any](m DelayMap[K, V], purity par.Purity, f func(K, V) V2) DelayMap[K, V2] {
	if purity == par.Pure {
		return MapWithKeyPure(m, f)
	}
	return MapWithKeyEffectful(m, f)
}

// Get forces and returns k's value, or Nothing if k is absent — the only
// value forced by this call (§4.3).
func (m DelayMap[K, V]) Get(k K) maybe.Maybe[V] {
	t, ok := maybe.Get(m.t.Get(k))
	if !ok {
		return maybe.Nothing[V]()
	}
	return maybe.Just(t.Force())
}

// GetWithDefault forces and returns k's value, or def if k is absent.
func (m DelayMap[K, V]) GetWithDefault(k K, def V) V {
	if v, ok := maybe.Get(m.Get(k)); ok {
		return v
	}
	return def
}

// Foreach forces and visits every entry in ascending key order.
func (m DelayMap[K, V]) Foreach(f func(K, V)) {
	m.t.Foreach(func(k K, t *Thunk[V]) { f(k, t.Force()) })
}

// ToList forces every value and returns the entries in ascending key
// order.
func (m DelayMap[K, V]) ToList() []rbt.Entry[K, V] {
	var out []rbt.Entry[K, V]
	m.t.Foreach(func(k K, t *Thunk[V]) {
		out = append(out, rbt.Entry[K, V]{Key: k, Val: t.Force()})
	})
	return out
}

// ToMap forces every value and rebuilds an ordmap.Map, forcing in parallel
// once size reaches par.Threshold (§4.3, §5).
func (m DelayMap[K, V]) ToMap() ordmap.Map[K, V] {
	var keys []K
	var thunks []*Thunk[V]
	m.t.Foreach(func(k K, t *Thunk[V]) {
		keys = append(keys, k)
		thunks = append(thunks, t)
	})
	if len(thunks) >= par.Threshold {
		tracer().Debugf("toMap: %d entries clears threshold, forcing in parallel", len(thunks))
		forceAll(thunks, par.Default())
	}
	out := ordmap.New[K, V](m.t.Order())
	for i, k := range keys {
		out = out.Insert(k, thunks[i].Force())
	}
	return out
}

// forceAll forces every thunk in ts, splitting the slice in half at each
// fork point exactly as the rbt package's tree-shaped parallel walks do,
// just over a flat slice instead of a tree's left/right children — ToMap
// only needs every value forced as a side effect, not a shape to rebuild
// in parallel.
func forceAll[V any](ts []*Thunk[V], budget par.Budget) {
	if len(ts) == 0 {
		return
	}
	if budget.Sequential() || len(ts) == 1 {
		for _, t := range ts {
			t.Force()
		}
		return
	}
	mid := len(ts) / 2
	left, right := budget.Split()
	tracer().Debugf("forceAll: forking %d thunks at mid=%d, budget=%d", len(ts), mid, budget.N)
	par.Join(
		func() struct{} { forceAll(ts[:mid], left); return struct{}{} },
		func() struct{} { forceAll(ts[mid:], right); return struct{}{} },
	)
}
