package interval

import (
	"cmp"
	"iter"
)

// Entry is a read-only view of a stored interval and its value.
type Entry[K cmp.Ordered, V any] struct {
	n *node[K, V]
}

// Key returns the stored interval.
func (e Entry[K, V]) Key() Interval[K] {
	return e.n.key
}

// Get returns the value stored with the interval.
func (e Entry[K, V]) Get() V {
	return e.n.value
}

// Find is a lazy cursor over the stored intervals that intersect a query.
//
// The cursor walks the tree depth-first with an explicit stack, visiting a
// node before its right subtree and its right subtree before its left one.
// Repeated searches with the same query on an unmodified tree yield the same
// entries in the same order. The tree must not be modified while a cursor is
// in use. Dropping a cursor early is safe.
type Find[K cmp.Ordered, V any] struct {
	nodes []*node[K, V]
	query Interval[K]
	stats *counters
}

// Find returns a cursor over the entries whose keys intersect query.
//
// Find panics with an error wrapping ErrInvertedInterval if query.Start > query.End.
func (t *Tree[K, V]) Find(query Interval[K]) *Find[K, V] {
	err := query.validate()
	if err != nil {
		panic(err)
	}

	f := &Find[K, V]{
		query: query,
		stats: t.stats,
	}

	if t.root != nil {
		// A pop pushes at most two children, one of which is popped next.
		f.nodes = make([]*node[K, V], 0, t.root.height+1)
		f.nodes = append(f.nodes, t.root)
	}

	t.stats.searched()

	return f
}

// Next returns the next matching entry. It returns false once the search is exhausted.
func (f *Find[K, V]) Next() (Entry[K, V], bool) {
	for len(f.nodes) > 0 {
		last := len(f.nodes) - 1
		n := f.nodes[last]
		f.nodes[last] = nil
		f.nodes = f.nodes[:last]

		f.stats.visit()

		// Nothing in this subtree reaches past the query start.
		if f.query.Start >= n.max {
			f.stats.prune()

			continue
		}

		if n.left != nil {
			f.nodes = append(f.nodes, n.left)
		}

		// n and its right subtree start at or after the query end.
		if f.query.End <= n.key.Start {
			continue
		}

		if n.right != nil {
			f.nodes = append(f.nodes, n.right)
		}

		if f.query.Intersects(n.key) {
			f.stats.match()

			return Entry[K, V]{n: n}, true
		}
	}

	return Entry[K, V]{}, false
}

// All returns an iterator that drains the cursor.
func (f *Find[K, V]) All() iter.Seq2[Interval[K], V] {
	return func(yield func(Interval[K], V) bool) {
		for {
			e, ok := f.Next()
			if !ok || !yield(e.Key(), e.Get()) {
				return
			}
		}
	}
}
