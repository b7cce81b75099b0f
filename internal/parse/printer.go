package parse

import (
	"strings"

	"github.com/treeforge/treeforge/internal/tree"
)

// printUnit is the canonical indentation step used by Print.
const printUnit = 4

// Print renders a tree in canonical indented form: four spaces per level and
// a trailing "/" on directories. Parsing the output reproduces a structurally
// identical tree, which makes Print the normal form for storing or diffing
// parsed input.
func Print(root *tree.Node) string {
	var b strings.Builder
	tree.Walk(root, func(n *tree.Node, _ []string) bool {
		b.WriteString(strings.Repeat(" ", n.Depth*printUnit))
		b.WriteString(n.Name)
		if n.Kind == tree.Directory {
			b.WriteByte('/')
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
