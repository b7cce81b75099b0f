package parse

import (
	"strings"

	"github.com/treeforge/treeforge/internal/tree"
)

// frame is one open ancestor on the indentation stack.
type frame struct {
	width      int        // leading whitespace width of the node's own line
	node       *tree.Node // node that accepts children deeper than width
	childWidth int        // width established by the first child, -1 until seen
}

// parseIndent builds a tree from indentation-format lines. Nesting is driven
// by a stack of (width, node) frames: a wider line is a child of the frame on
// top, an equal line is a sibling, and a narrower line pops back to the
// matching ancestor.
//
// Widths must be consistent: the first child under a parent fixes that
// parent's child width, later direct children must match it, and the first
// observed nesting gap fixes the document's indentation unit, so every new
// level must step exactly one unit deeper. Anything else is a BadIndent.
func parseIndent(lines []line) (*tree.Node, error) {
	root := tree.NewRoot()
	stack := []*frame{{width: -1, node: root, childWidth: -1}}
	unit := 0 // document indentation unit, 0 until the first nesting gap

	for _, ln := range lines {
		width := indentWidth(ln.text)
		name, kind, perr := splitName(ln.text[widthBytes(ln.text):], ln.num)
		if perr != nil {
			return nil, perr
		}

		// Pop ancestors whose level is deeper than this line.
		for width < top(stack).width {
			stack = stack[:len(stack)-1]
		}
		if width == top(stack).width {
			// Sibling of the top frame: replace it under the same parent.
			stack = stack[:len(stack)-1]
		}
		parent := top(stack)

		switch {
		case parent.childWidth != -1 && width != parent.childWidth:
			return nil, errAt(ln.num, BadIndent,
				"indented by %d, but entries under %s are indented by %d",
				width, describe(parent.node), parent.childWidth)
		case parent.childWidth == -1 && unit != 0 && !parent.node.IsRoot() && width != parent.width+unit:
			return nil, errAt(ln.num, BadIndent,
				"indented by %d, expected %d (one %d-column step below %s)",
				width, parent.width+unit, unit, describe(parent.node))
		}
		if parent.childWidth == -1 {
			parent.childWidth = width
			if unit == 0 && parent.width >= 0 {
				unit = width - parent.width
			}
		}

		node, perr := attach(parent.node, name, kind, ln.num)
		if perr != nil {
			return nil, perr
		}
		stack = append(stack, &frame{width: width, node: node, childWidth: -1})
	}
	return root, nil
}

func top(stack []*frame) *frame {
	return stack[len(stack)-1]
}

func describe(n *tree.Node) string {
	if n.IsRoot() {
		return "the top level"
	}
	return "\"" + n.Name + "\""
}

// indentWidth measures leading whitespace in columns, counting a tab as one.
func indentWidth(s string) int {
	w := 0
	for _, r := range s {
		if r != ' ' && r != '\t' {
			break
		}
		w++
	}
	return w
}

// widthBytes returns the byte offset where leading whitespace ends.
func widthBytes(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
