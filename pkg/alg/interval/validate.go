package interval

import (
	"cmp"
	"fmt"
)

// summary describes a validated subtree.
type summary[K cmp.Ordered] struct {
	height   uint32
	max      K
	minStart K
	maxStart K
}

// Validate checks every structural invariant of the tree and returns an error
// wrapping ErrCorruptTree for the first violation found. It runs in O(n).
//
// Starts must be non-decreasing in order. Descent places an equal start to the
// left, but a later rotation may lift that node above its twin, so an equal
// start on the right is accepted.
func (t *Tree[K, V]) Validate() error {
	if t.root == nil {
		if t.size != 0 {
			return fmt.Errorf("%w: empty tree reports %d intervals", ErrCorruptTree, t.size)
		}

		return nil
	}

	_, count, err := validateNode(t.root)
	if err != nil {
		return err
	}

	if count != t.size {
		return fmt.Errorf("%w: counted %d nodes, tree reports %d", ErrCorruptTree, count, t.size)
	}

	return nil
}

func validateNode[K cmp.Ordered, V any](n *node[K, V]) (summary[K], int, error) {
	if n.key.Start > n.key.End {
		return summary[K]{}, 0, fmt.Errorf("%w: inverted key %s", ErrCorruptTree, n.key)
	}

	s := summary[K]{
		max:      n.key.End,
		minStart: n.key.Start,
		maxStart: n.key.Start,
	}
	count := 1

	var lh, rh uint32

	if n.left != nil {
		ls, lc, err := validateNode(n.left)
		if err != nil {
			return summary[K]{}, 0, err
		}

		if ls.maxStart > n.key.Start {
			return summary[K]{}, 0, fmt.Errorf("%w: left subtree of %s starts at %v", ErrCorruptTree, n.key, ls.maxStart)
		}

		lh = ls.height
		s.max = max(s.max, ls.max)
		s.minStart = ls.minStart
		count += lc
	}

	if n.right != nil {
		rs, rc, err := validateNode(n.right)
		if err != nil {
			return summary[K]{}, 0, err
		}

		if rs.minStart < n.key.Start {
			return summary[K]{}, 0, fmt.Errorf("%w: right subtree of %s starts at %v", ErrCorruptTree, n.key, rs.minStart)
		}

		rh = rs.height
		s.max = max(s.max, rs.max)
		s.maxStart = rs.maxStart
		count += rc
	}

	s.height = max(lh, rh) + 1

	switch {
	case n.height != s.height:
		return summary[K]{}, 0, fmt.Errorf("%w: %s caches height %d, want %d", ErrCorruptTree, n.key, n.height, s.height)
	case n.max != s.max:
		return summary[K]{}, 0, fmt.Errorf("%w: %s caches max %v, want %v", ErrCorruptTree, n.key, n.max, s.max)
	case lh > rh+1 || rh > lh+1:
		return summary[K]{}, 0, fmt.Errorf("%w: %s is unbalanced (%d vs %d)", ErrCorruptTree, n.key, lh, rh)
	}

	return s, count, nil
}
