package interval

import (
	"cmp"
	"fmt"
	"log/slog"
)

// rotationCase names the four AVL imbalance shapes.
type rotationCase uint8

const (
	caseLL rotationCase = iota // Left child is left-heavy or even: single right rotation.
	caseLR                     // Left child is right-heavy: left then right.
	caseRR                     // Right child is right-heavy or even: single left rotation.
	caseRL                     // Right child is left-heavy: right then left.
)

func (c rotationCase) String() string {
	switch c {
	case caseLL:
		return "LL"
	case caseLR:
		return "LR"
	case caseRR:
		return "RR"
	case caseRL:
		return "RL"
	default:
		return fmt.Sprintf("rotationCase(%d)", uint8(c))
	}
}

func (c rotationCase) double() bool {
	return c == caseLR || c == caseRL
}

// balanceFactor returns height(left) - height(right).
func balanceFactor[K cmp.Ordered, V any](n *node[K, V]) int {
	return int(height(n.left)) - int(height(n.right))
}

// rotateLeft re-roots the subtree at root.right and returns the new root.
// Only root and its right child change; both are updated child first.
func rotateLeft[K cmp.Ordered, V any](root *node[K, V]) *node[K, V] {
	pivot := root.right
	if pivot == nil {
		panic(fmt.Errorf("%w: rotate left at %s: missing right child", ErrCorruptTree, root.key))
	}

	root.right = pivot.left
	pivot.left = root

	root.update()
	pivot.update()

	return pivot
}

// rotateRight re-roots the subtree at root.left and returns the new root.
func rotateRight[K cmp.Ordered, V any](root *node[K, V]) *node[K, V] {
	pivot := root.left
	if pivot == nil {
		panic(fmt.Errorf("%w: rotate right at %s: missing left child", ErrCorruptTree, root.key))
	}

	root.left = pivot.right
	pivot.right = root

	root.update()
	pivot.update()

	return pivot
}

// rebalance restores the AVL property at n, whose children are balanced and
// whose cached fields are current, and returns the new subtree root.
//
// A child whose heavy side points inward is pre-rotated so that a single
// rotation at n suffices. Ties between the child's subtrees take the single
// rotation.
func (t *Tree[K, V]) rebalance(n *node[K, V]) *node[K, V] {
	var rc rotationCase

	switch bf := balanceFactor(n); bf {
	case -1, 0, 1:
		return n
	case -2:
		rc = caseRR
		if height(n.right.left) > height(n.right.right) {
			n.right = rotateRight(n.right)
			rc = caseRL
		}

		n = rotateLeft(n)
	case 2:
		rc = caseLL
		if height(n.left.left) < height(n.left.right) {
			n.left = rotateLeft(n.left)
			rc = caseLR
		}

		n = rotateRight(n)
	default:
		panic(fmt.Errorf("%w: balance factor %d at %s", ErrCorruptTree, bf, n.key))
	}

	t.stats.rotated(rc.double())

	if t.logger != nil {
		t.logger.Debug("interval.rotate",
			slog.String("case", rc.String()),
			slog.String("root", n.key.String()),
			slog.Uint64("height", uint64(n.height)),
		)
	}

	return n
}
