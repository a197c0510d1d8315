package interval

import (
	"cmp"
	"iter"
	"log/slog"
)

// Tree is an AVL interval tree mapping intervals to values.
// The zero value is not usable; create trees with New.
type Tree[K cmp.Ordered, V any] struct {
	root   *node[K, V]
	size   int
	logger *slog.Logger
	stats  *counters // Nil when statistics are disabled.
}

// Option configures a Tree.
type Option[K cmp.Ordered, V any] func(*Tree[K, V])

// WithLogger makes the tree emit a debug record for every rebalance.
func WithLogger[K cmp.Ordered, V any](logger *slog.Logger) Option[K, V] {
	return func(t *Tree[K, V]) {
		t.logger = logger
	}
}

// WithStats enables or disables operation counters. Counters are on by default.
func WithStats[K cmp.Ordered, V any](enabled bool) Option[K, V] {
	return func(t *Tree[K, V]) {
		if enabled {
			t.stats = new(counters)
		} else {
			t.stats = nil
		}
	}
}

// New creates an empty interval tree.
func New[K cmp.Ordered, V any](opts ...Option[K, V]) *Tree[K, V] {
	t := &Tree[K, V]{stats: new(counters)}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Len returns the number of intervals in the tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Height returns the height of the tree; 0 when empty.
func (t *Tree[K, V]) Height() int {
	return int(height(t.root))
}

// Insert adds key with the given value. Keys are not unique: inserting an
// interval whose start is already present adds a new node to the left of the
// existing one.
//
// Insert panics with an error wrapping ErrInvertedInterval if key.Start > key.End.
func (t *Tree[K, V]) Insert(key Interval[K], value V) {
	err := key.validate()
	if err != nil {
		panic(err)
	}

	t.root = t.insert(t.root, key, value)
	t.size++

	t.stats.inserted(t.size, t.root.height)
}

// insert adds key below n and returns the rebalanced subtree root.
func (t *Tree[K, V]) insert(n *node[K, V], key Interval[K], value V) *node[K, V] {
	if n == nil {
		return newNode(key, value)
	}

	if key.Start <= n.key.Start {
		n.left = t.insert(n.left, key, value)
	} else {
		n.right = t.insert(n.right, key, value)
	}

	n.update()

	return t.rebalance(n)
}

// All returns an iterator over every stored interval and value in start order.
// Equal starts are yielded in reverse insertion order.
func (t *Tree[K, V]) All() iter.Seq2[Interval[K], V] {
	return func(yield func(Interval[K], V) bool) {
		stack := make([]*node[K, V], 0, height(t.root))

		for n := t.root; n != nil || len(stack) > 0; {
			for n != nil {
				stack = append(stack, n)
				n = n.left
			}

			n = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(n.key, n.value) {
				return
			}

			n = n.right
		}
	}
}
