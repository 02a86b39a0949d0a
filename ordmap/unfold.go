package ordmap

import (
	"github.com/lamina-lang/corelib/maybe"
	"github.com/lamina-lang/corelib/order"
)

// Unfold repeatedly applies f to a state, inserting each produced pair,
// until f returns Nothing (§4.2).
func Unfold[K, V, S any](cmp order.Order[K], seed S, f func(S) maybe.Maybe[UnfoldStep[K, V, S]]) Map[K, V] {
	out := New[K, V](cmp)
	state := seed
	for {
		step, ok := maybe.Get(f(state))
		if !ok {
			return out
		}
		out = out.Insert(step.Key, step.Val)
		state = step.Next
	}
}

// UnfoldStep is the (k, v, nextState) triple an Unfold generator produces.
type UnfoldStep[K, V, S any] struct {
	Key  K
	Val  V
	Next S
}

// UnfoldWithIter is Unfold's variant over a stateful producer that
// returns Option<(k, v)> directly, carrying its own internal state
// instead of threading an explicit seed (§4.2).
func UnfoldWithIter[K, V any](cmp order.Order[K], next func() maybe.Maybe[Pair[K, V]]) Map[K, V] {
	out := New[K, V](cmp)
	for {
		p, ok := maybe.Get(next())
		if !ok {
			return out
		}
		out = out.Insert(p.Key, p.Val)
	}
}

// Pair is a plain key/value pair, used by UnfoldWithIter's producer
// signature where rbt.Entry would be a misleading name (this pair was
// never a tree entry to begin with).
type Pair[K, V any] struct {
	Key K
	Val V
}
