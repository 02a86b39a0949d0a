package ordmap

import (
	"github.com/lamina-lang/corelib/applicative"
	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/result"
)

// TraverseWithKeyMaybe rebuilds m inside the Maybe applicative: conceptually
// nodeA(..., traverse(L), k, f(k, v), traverse(R)) per §9's design note,
// specialized to maybe.Maybe via the applicative package rather than a
// higher-kinded Applicative[M] Go has no way to express directly.
func TraverseWithKeyMaybe[K, V, V2 any](m Map[K, V], f func(K, V) maybe.Maybe[V2]) maybe.Maybe[Map[K, V2]] {
	acc := maybe.Just(New[K, V2](m.t.Order()))
	m.Foreach(func(k K, v V) {
		insertAt := applicative.MaybeMap(func(built Map[K, V2]) func(V2) Map[K, V2] {
			return func(v2 V2) Map[K, V2] { return built.Insert(k, v2) }
		}, acc)
		acc = applicative.MaybeAp(insertAt, f(k, v))
	})
	return acc
}

// TraverseMaybe is TraverseWithKeyMaybe without access to the key.
func TraverseMaybe[K, V, V2 any](m Map[K, V], f func(V) maybe.Maybe[V2]) maybe.Maybe[Map[K, V2]] {
	return TraverseWithKeyMaybe(m, func(_ K, v V) maybe.Maybe[V2] { return f(v) })
}

// SequenceMaybe is TraverseMaybe specialized to the identity function —
// flips Map[K, Maybe[V]] and Maybe[Map[K, V]] (§4.2).
func SequenceMaybe[K, V any](m Map[K, maybe.Maybe[V]]) maybe.Maybe[Map[K, V]] {
	return TraverseMaybe(m, func(v maybe.Maybe[V]) maybe.Maybe[V] { return v })
}

// TraverseWithKeyResult is TraverseWithKeyMaybe's Result-applicative sibling.
func TraverseWithKeyResult[K, V, V2 any](m Map[K, V], f func(K, V) result.Result[V2]) result.Result[Map[K, V2]] {
	acc := result.Ok(New[K, V2](m.t.Order()))
	m.Foreach(func(k K, v V) {
		insertAt := applicative.ResultMap(func(built Map[K, V2]) func(V2) Map[K, V2] {
			return func(v2 V2) Map[K, V2] { return built.Insert(k, v2) }
		}, acc)
		acc = applicative.ResultAp(insertAt, f(k, v))
	})
	return acc
}

// TraverseResult is TraverseWithKeyResult without access to the key.
func TraverseResult[K, V, V2 any](m Map[K, V], f func(V) result.Result[V2]) result.Result[Map[K, V2]] {
	return TraverseWithKeyResult(m, func(_ K, v V) result.Result[V2] { return f(v) })
}

// SequenceResult is TraverseResult specialized to the identity function.
func SequenceResult[K, V any](m Map[K, result.Result[V]]) result.Result[Map[K, V]] {
	return TraverseResult(m, func(r result.Result[V]) result.Result[V] { return r })
}
