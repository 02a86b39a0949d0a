package result

// Get unwraps r, mirroring maybe.Get's two-result shape.
func Get[T any](r Result[T]) (T, error) {
	var v T
	var e error
	// Checked against nil rather than through a switch on the matcher: a
	// switch compares matcher values with ==, which panics for a
	// non-comparable T such as a function type.
	m := r.Match()
	if m.Ok(&v) != nil {
		return v, nil
	}
	m.Err(&e)
	return v, e
}

// MapTo applies f to a successful result, short-circuiting on Err.
func MapTo[T, S any](f func(T) S, r Result[T]) Result[S] {
	if v, err := Get(r); err == nil {
		return Ok(f(v))
	}
	_, err := Get(r)
	return Err[S](err)
}

// Ap is the applicative <*> for Result: it applies a function wrapped in
// a Result to a value wrapped in a Result, short-circuiting on the first
// Err encountered (function before argument). This is the Applicative[M]
// collaborator from the spec's §6.1, instantiated for Result.
func Ap[T, S any](rf Result[func(T) S], rx Result[T]) Result[S] {
	f, err := Get(rf)
	if err != nil {
		return Err[S](err)
	}
	x, err := Get(rx)
	if err != nil {
		return Err[S](err)
	}
	return Ok(f(x))
}
