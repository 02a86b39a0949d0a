package maybe

import "github.com/lamina-lang/corelib"

// IsJust reports whether x holds a value.
func IsJust[T any](x Maybe[T]) bool {
	var v T
	// Checked against nil rather than through a switch on the matcher: a
	// switch compares matcher values with ==, which panics for a
	// non-comparable T.
	return x.Match().Just(&v) != nil
}

// IsNothing reports whether x holds no value.
func IsNothing[T any](x Maybe[T]) bool {
	return !IsJust(x)
}

// Get unwraps x, returning ok=false for Nothing instead of panicking —
// the Go-idiomatic two-result shape, for call sites that would rather not
// thread the Match()/Matcher dance through every read.
func Get[T any](x Maybe[T]) (T, bool) {
	var v T
	if x.Match().Just(&v) != nil { // see IsJust for why this is not a switch
		return v, true
	}
	var zero T
	return zero, false
}

// MapTo is the heterogeneous sibling of Map: the teacher's Map is
// constrained to endofunctions (func(T) T) because Maybe[T]'s method set
// can't express a different result type parameter on a method. MapTo is a
// free function and can.
func MapTo[T, S any](f func(T) S, x Maybe[T]) Maybe[S] {
	if v, ok := Get(x); ok {
		return Just(f(v))
	}
	return Nothing[S]()
}

// OrElse returns x if it holds a value, else the result of calling def.
func OrElse[T any](x Maybe[T], def func() T) T {
	if v, ok := Get(x); ok {
		return v
	}
	return def()
}

// OrElseValue is OrElse for callers holding a plain default value rather
// than a thunk, built on fp.Const to adapt def into the zero-argument
// shape OrElse expects.
func OrElseValue[T any](x Maybe[T], def T) T {
	return OrElse(x, fp.Const(def))
}
