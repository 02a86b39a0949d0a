// Package applicative provides the Applicative[M] collaborator from
// spec §6.1: point/map/ap, used by ordmap.Traverse and ordmap.Sequence to
// rebuild a tree's shape inside an effect without hand-rolling that
// rebuild for every effect type.
//
// Go's type system can't express a higher-kinded "M[_]" directly, so this
// package follows the spec's §9 fallback and specializes the applicative
// to the two effects the rest of this module already carries: maybe.Maybe
// and result.Result. Each specialization only needs Map and Ap (point is
// just Just/Ok at the call site).
package applicative

import (
	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/result"
)

// MaybeMap lifts a plain function into Maybe — point+map composed.
func MaybeMap[T, S any](f func(T) S, m maybe.Maybe[T]) maybe.Maybe[S] {
	return maybe.MapTo(f, m)
}

// MaybeAp applies a Maybe-wrapped function to a Maybe-wrapped argument.
func MaybeAp[T, S any](mf maybe.Maybe[func(T) S], mx maybe.Maybe[T]) maybe.Maybe[S] {
	f, ok := maybe.Get(mf)
	if !ok {
		return maybe.Nothing[S]()
	}
	x, ok := maybe.Get(mx)
	if !ok {
		return maybe.Nothing[S]()
	}
	return maybe.Just(f(x))
}

// ResultMap lifts a plain function into Result.
func ResultMap[T, S any](f func(T) S, r result.Result[T]) result.Result[S] {
	return result.MapTo(f, r)
}

// ResultAp applies a Result-wrapped function to a Result-wrapped argument,
// satisfying the law-abiding requirement (identity, composition) §6.1
// demands of Applicative.Ap: Ok(id) `Ap` rx == rx, and Ap composes left
// to right exactly as function application does.
func ResultAp[T, S any](rf result.Result[func(T) S], rx result.Result[T]) result.Result[S] {
	return result.Ap(rf, rx)
}
