/*
Package rbt implements an immutable, ordered red-black tree: the core
persistent key-value structure the rest of this module (ordmap, delaymap)
is built on.

Deletion follows the Kahrs / Germane & Might scheme: a DoubleBlack color
and a transient DoubleBlackLeaf variant carry a "missing black" up the
tree during remove, absorbed by balance/bubble on the way back up. An
internal negativeBlack marker (never exposed outside this package) is
used the same way Germane & Might's paper uses it, to keep the
case-analysis for rebalancing a double-black node to a small, closed set
of rotations instead of an open-ended one.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package rbt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'core.rbt'.
func tracer() tracing.Trace {
	return tracing.Select("core.rbt")
}
