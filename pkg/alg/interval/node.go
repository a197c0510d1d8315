package interval

import "cmp"

// node is an AVL tree node augmented with the maximum end point of its subtree.
type node[K cmp.Ordered, V any] struct {
	key         Interval[K]
	value       V
	max         K
	height      uint32
	left, right *node[K, V]
}

func newNode[K cmp.Ordered, V any](key Interval[K], value V) *node[K, V] {
	return &node[K, V]{
		key:    key,
		value:  value,
		max:    key.End,
		height: 1,
	}
}

// height returns the cached height of n, treating nil as 0.
func height[K cmp.Ordered, V any](n *node[K, V]) uint32 {
	if n == nil {
		return 0
	}

	return n.height
}

// updateHeight recomputes n.height from its direct children.
func (n *node[K, V]) updateHeight() {
	n.height = max(height(n.left), height(n.right)) + 1
}

// updateMax recomputes n.max from its own end point and its direct children.
func (n *node[K, V]) updateMax() {
	m := n.key.End

	if n.left != nil && n.left.max > m {
		m = n.left.max
	}

	if n.right != nil && n.right.max > m {
		m = n.right.max
	}

	n.max = m
}

// update refreshes both cached fields. Children must already be up to date.
func (n *node[K, V]) update() {
	n.updateHeight()
	n.updateMax()
}
