// Package deque implements Deque[T] (§3.4, §4.4): a mutable, single-owner
// ring buffer. Unlike rbt, ordmap and delaymap, this structure is not
// persistent — §5 is explicit that a Deque has "no internal
// synchronization; callers concurrently mutating one deque violate the
// contract" — so it follows the pointer-receiver, in-place-mutation style
// of other_examples/LucasGdosR-deque__deque.go rather than the
// structural-sharing style of this module's other packages.
package deque

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/xlab/treeprint"

	"github.com/lamina-lang/corelib"
	"github.com/lamina-lang/corelib/maybe"
)

// tracer traces with key 'core.deque'.
func tracer() tracing.Trace {
	return tracing.Select("core.deque")
}

// Tuning constants from §6.3.
const (
	minCapacity   = 8
	minLoadFactor = 0.25
	maxLoadFactor = 0.75
)

// Deque is a double-ended queue backed by a power-of-two-sized ring buffer
// (§3.4).
type Deque[T any] struct {
	buf         []T
	front, back int
}

// New returns an empty Deque with capacity minCapacity.
func New[T any]() *Deque[T] {
	return &Deque[T]{buf: make([]T, minCapacity)}
}

func (d *Deque[T]) mask() int { return len(d.buf) - 1 }

// Size returns the number of elements currently held, via invariant 5
// (§3.4) rather than a maintained counter.
func (d *Deque[T]) Size() int {
	if d.front <= d.back {
		return d.back - d.front
	}
	return len(d.buf) - (d.front - d.back)
}

// IsEmpty reports whether d holds no elements.
func (d *Deque[T]) IsEmpty() bool {
	return d.front == d.back
}

// PushFront inserts x at the front, growing the buffer if the post-push
// load factor reaches MAX_LF (§4.4.1, §4.4.2).
func (d *Deque[T]) PushFront(x T) {
	d.front = (d.front - 1) & d.mask()
	d.buf[d.front] = x
	d.growIfNeeded()
}

// PushBack inserts x at the back, growing the buffer if the post-push load
// factor reaches MAX_LF.
func (d *Deque[T]) PushBack(x T) {
	d.buf[d.back] = x
	d.back = (d.back + 1) & d.mask()
	d.growIfNeeded()
}

// PopFront removes and returns the front element, or Nothing if d is empty.
// Shrinks the buffer if the post-pop load factor drops to MIN_LF and
// capacity exceeds MIN_CAPACITY.
func (d *Deque[T]) PopFront() maybe.Maybe[T] {
	if d.IsEmpty() {
		return maybe.Nothing[T]()
	}
	x := d.buf[d.front]
	d.buf[d.front] = fp.Unit(d.buf[d.front]) // drop the retained reference before the slot goes idle
	d.front = (d.front + 1) & d.mask()
	d.shrinkIfNeeded()
	return maybe.Just(x)
}

// PopBack is PopFront's mirror image, removing from the back.
func (d *Deque[T]) PopBack() maybe.Maybe[T] {
	if d.IsEmpty() {
		return maybe.Nothing[T]()
	}
	d.back = (d.back - 1) & d.mask()
	x := d.buf[d.back]
	d.buf[d.back] = fp.Unit(d.buf[d.back])
	d.shrinkIfNeeded()
	return maybe.Just(x)
}

// PeekFront returns the front element without removing it.
func (d *Deque[T]) PeekFront() maybe.Maybe[T] {
	if d.IsEmpty() {
		return maybe.Nothing[T]()
	}
	return maybe.Just(d.buf[d.front])
}

// PeekBack returns the back element without removing it.
func (d *Deque[T]) PeekBack() maybe.Maybe[T] {
	if d.IsEmpty() {
		return maybe.Nothing[T]()
	}
	return maybe.Just(d.buf[(d.back-1)&d.mask()])
}

func (d *Deque[T]) growIfNeeded() {
	size := d.Size()
	if float64(size)/float64(len(d.buf)) >= maxLoadFactor {
		tracer().Debugf("deque grow: size=%d cap=%d -> %d", size, len(d.buf), len(d.buf)*2)
		d.resize(len(d.buf) * 2)
	}
}

func (d *Deque[T]) shrinkIfNeeded() {
	size := d.Size()
	if len(d.buf) > minCapacity && float64(size)/float64(len(d.buf)) <= minLoadFactor {
		tracer().Debugf("deque shrink: size=%d cap=%d -> %d", size, len(d.buf), len(d.buf)/2)
		d.resize(len(d.buf) / 2)
	}
}

// resize allocates a fresh buffer of newCap, copies elements in logical
// order to [0, size), and resets front=0, back=size (§4.4.2). The
// wrap-around case concatenates the two contiguous segments
// buf[front:capacity) and buf[0:back).
func (d *Deque[T]) resize(newCap int) {
	size := d.Size()
	newBuf := make([]T, newCap)
	if d.front <= d.back {
		copy(newBuf, d.buf[d.front:d.back])
	} else {
		n := copy(newBuf, d.buf[d.front:])
		copy(newBuf[n:], d.buf[:d.back])
	}
	d.buf = newBuf
	d.front = 0
	d.back = size
}

// ToList returns d's elements in logical (front-to-back) order.
func (d *Deque[T]) ToList() []T {
	return FoldLeft(d, make([]T, 0, d.Size()), func(acc []T, x T) []T {
		return append(acc, x)
	})
}

// FoldLeft walks d front-to-back, using the mask-arithmetic index advance
// (§4.4.1). A free function, not a method, because it introduces the
// accumulator type parameter A the receiver doesn't carry.
func FoldLeft[T, A any](d *Deque[T], z A, f func(A, T) A) A {
	acc := z
	n := d.Size()
	idx := d.front
	for i := 0; i < n; i++ {
		acc = f(acc, d.buf[idx])
		idx = (idx + 1) & d.mask()
	}
	return acc
}

// FoldRight walks d back-to-front.
func FoldRight[T, A any](d *Deque[T], z A, f func(T, A) A) A {
	acc := z
	n := d.Size()
	idx := (d.back - 1) & d.mask()
	for i := 0; i < n; i++ {
		acc = f(d.buf[idx], acc)
		idx = (idx - 1) & d.mask()
	}
	return acc
}

// number is the subset of builtin kinds sum/product can fold over.
type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Sum folds d with +, seeded at zero.
func Sum[T number](d *Deque[T]) T {
	var zero T
	return FoldLeft(d, zero, func(acc, x T) T { return acc + x })
}

// Product folds d with *, seeded at one.
func Product[T number](d *Deque[T]) T {
	var one T = 1
	return FoldLeft(d, one, func(acc, x T) T { return acc * x })
}

// SumWith sums f(x) over every x in d.
func SumWith[T any, N number](d *Deque[T], f func(T) N) N {
	var zero N
	return FoldLeft(d, zero, func(acc N, x T) N { return acc + f(x) })
}

// ProductWith multiplies f(x) over every x in d.
func ProductWith[T any, N number](d *Deque[T], f func(T) N) N {
	var one N = 1
	return FoldLeft(d, one, func(acc N, x T) N { return acc * f(x) })
}

// Join concatenates a and b, a's elements first, into a freshly-allocated
// Deque — the sequence analogue of Map's union family, with no collision
// to resolve so no merge function is needed (§4.4.1).
func Join[T any](a, b *Deque[T]) *Deque[T] {
	out := New[T]()
	for _, x := range a.ToList() {
		out.PushBack(x)
	}
	for _, x := range b.ToList() {
		out.PushBack(x)
	}
	return out
}

// JoinWith combines a and b position-by-position with f, up to the length
// of the shorter operand — the "...With" sibling every merge-capable op in
// this module carries, specialized here to an elementwise zip since a
// Deque has no keys to collide on.
func JoinWith[T, U, R any](a *Deque[T], b *Deque[U], f func(T, U) R) *Deque[R] {
	as, bs := a.ToList(), b.ToList()
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	out := New[R]()
	for i := 0; i < n; i++ {
		out.PushBack(f(as[i], bs[i]))
	}
	return out
}

// SameElements reports structural equality: equal size and equal element
// sequence in logical order (§4.4.3).
func SameElements[T comparable](a, b *Deque[T]) bool {
	if a.Size() != b.Size() {
		return false
	}
	as, bs := a.ToList(), b.ToList()
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// Sprint renders d's logical contents as an indented tree, mirroring
// rbt.Tree.Sprint for the same debugging purpose.
func (d *Deque[T]) Sprint() string {
	root := treeprint.New()
	root.SetValue(fmt.Sprintf("Deque(size=%d, cap=%d)", d.Size(), len(d.buf)))
	for _, x := range d.ToList() {
		root.AddNode(fmt.Sprintf("%v", x))
	}
	return root.String()
}
