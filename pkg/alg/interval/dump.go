package interval

import (
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
)

const emptyTreeLabel = "(empty)"

// String renders the tree structure, one node per line.
func (t *Tree[K, V]) String() string {
	var sb strings.Builder

	// strings.Builder never fails.
	_ = t.Fprint(&sb)

	return sb.String()
}

// Fprint writes the tree structure to w. Each line shows the side the node
// hangs from (L or R), its interval, subtree max, height and value.
func (t *Tree[K, V]) Fprint(w io.Writer) error {
	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedLight)

	if t.root == nil {
		lw.AppendItem(emptyTreeLabel)
	} else {
		appendNode(lw, t.root, "*")
	}

	_, err := io.WriteString(w, lw.Render()+"\n")
	if err != nil {
		return fmt.Errorf("interval: write tree: %w", err)
	}

	return nil
}

func appendNode[K cmp.Ordered, V any](lw list.Writer, n *node[K, V], side string) {
	lw.AppendItem(fmt.Sprintf("%s %s max=%v h=%d => %v", side, n.key, n.max, n.height, n.value))

	if n.left == nil && n.right == nil {
		return
	}

	lw.Indent()

	if n.left != nil {
		appendNode(lw, n.left, "L")
	}

	if n.right != nil {
		appendNode(lw, n.right, "R")
	}

	lw.UnIndent()
}
