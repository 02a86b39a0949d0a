package ordmap

import "github.com/lamina-lang/corelib/order"

// Invert produces the reverse mapping V -> Set[K], folding with
// insertWith(set-union) (§4.2). A "set of K" has no dedicated type in
// this module (spec.md treats Set as an external, abstract collaborator);
// it is realized here as Map[K, struct{}], reusing this package's own
// persistent map rather than inventing a second structure.
func Invert[K, V any](m Map[K, V], cmpV order.Order[V]) Map[V, Map[K, struct{}]] {
	cmpK := m.t.Order()
	out := New[V, Map[K, struct{}]](cmpV)
	m.Foreach(func(k K, v V) {
		singleton := New[K, struct{}](cmpK).Insert(k, struct{}{})
		out = out.InsertWith(func(_ V, vNew, vOld Map[K, struct{}]) Map[K, struct{}] {
			return Union(vNew, vOld)
		}, v, singleton)
	})
	return out
}
