// Package interval provides a self-balancing interval tree for lazy
// range-overlap queries.
//
// The tree is an AVL tree ordered by interval start. Every node caches its
// height and the maximum end point found anywhere in its subtree (max). An
// overlap query skips any subtree whose max does not reach past the query
// start, and any right subtree whose starts lie at or beyond the query end.
//
// Intervals that share a start are kept as a multiset: an interval whose
// start equals an existing node's start is placed in that node's left
// subtree. The resulting shapes are deterministic for a given insertion order.
//
// A Tree is not safe for concurrent use. Guard it with a sync.RWMutex when
// shared: Find may run concurrently with other Find calls, but never with
// Insert.
package interval

import (
	"cmp"
	"errors"
	"fmt"
)

var (
	// ErrInvertedInterval is returned when an interval's start is greater than its end.
	ErrInvertedInterval = errors.New("interval: start is greater than end")

	// ErrCorruptTree reports a broken structural invariant.
	ErrCorruptTree = errors.New("interval: corrupt tree")
)

// Interval is a closed range [Start, End] with Start <= End.
type Interval[K cmp.Ordered] struct {
	Start K
	End   K
}

// NewInterval returns the interval [start, end], or an error wrapping
// ErrInvertedInterval if start is greater than end.
func NewInterval[K cmp.Ordered](start, end K) (Interval[K], error) {
	iv := Interval[K]{Start: start, End: end}

	err := iv.validate()
	if err != nil {
		return Interval[K]{}, err
	}

	return iv, nil
}

// Intersects reports whether i and other intersect.
// Two intervals intersect when each one starts strictly before the other ends,
// so [0, 8] and [8, 9] do not intersect.
func (i Interval[K]) Intersects(other Interval[K]) bool {
	return i.Start < other.End && other.Start < i.End
}

// String renders the interval as "[start, end]".
func (i Interval[K]) String() string {
	return fmt.Sprintf("[%v, %v]", i.Start, i.End)
}

func (i Interval[K]) validate() error {
	if i.Start > i.End {
		return fmt.Errorf("%w: %s", ErrInvertedInterval, i)
	}

	return nil
}
