package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/treeforge/treeforge/internal/tree"
)

// parseASCII builds a tree from ASCII-tree-format lines (the `tree` command
// style). Depth comes from the branch prefix before the marker glyphs, one
// level per four columns, with the same push/pop stack discipline as the
// indentation parser but keyed on level rather than raw width. The marker
// itself ("├──" vs "└──") is cosmetic and ignored.
func parseASCII(lines []line) (*tree.Node, error) {
	root := tree.NewRoot()
	type level struct {
		depth int
		node  *tree.Node
	}
	stack := []level{{depth: -1, node: root}}

	// Inputs that start below the top level (pasted fragments with no root
	// line) are shifted so their first entry sits at depth zero.
	offset := -1

	for _, ln := range lines {
		// A line with a branch marker is always an entry, whatever its name
		// looks like; only marker-less lines can be the summary trailer.
		if idx, _ := findMarker(ln.text); idx == -1 && isTreeSummary(ln.text) {
			continue
		}

		rawDepth, rest, perr := asciiDepth(ln)
		if perr != nil {
			return nil, perr
		}
		if offset == -1 {
			offset = rawDepth
		}
		depth := rawDepth - offset
		if depth < 0 {
			return nil, errAt(ln.num, BadIndent, "entry sits above the document's first entry")
		}

		name, kind, perr := splitName(rest, ln.num)
		if perr != nil {
			return nil, perr
		}

		if depth > stack[len(stack)-1].depth+1 {
			return nil, errAt(ln.num, BadIndent, "entry skips %d nesting level(s)",
				depth-stack[len(stack)-1].depth-1)
		}
		for depth <= stack[len(stack)-1].depth {
			stack = stack[:len(stack)-1]
		}

		node, perr := attach(stack[len(stack)-1].node, name, kind, ln.num)
		if perr != nil {
			return nil, perr
		}
		stack = append(stack, level{depth: depth, node: node})
	}
	if tree.Count(root) == 0 {
		return nil, errAt(1, EmptyName, "input contains no entries")
	}
	return root, nil
}

// asciiDepth classifies one ASCII-format line, returning its nesting level
// and the raw name text after the branch marker. A line with no marker is a
// top-level entry when flush left, and a MixedFormat error when indented,
// since the document already committed to the tree grammar.
func asciiDepth(ln line) (depth int, rest string, err *ParseError) {
	idx, marker := findMarker(ln.text)
	if idx == -1 {
		if indentWidth(ln.text) > 0 {
			return 0, "", errAt(ln.num, MixedFormat,
				"indented entry without a branch marker in an ASCII tree document")
		}
		return 0, ln.text, nil
	}
	cells := prefixCells(ln.text[:idx])
	return cells/4 + 1, ln.text[idx+len(marker):], nil
}

// findMarker locates the earliest branch marker in s.
func findMarker(s string) (int, string) {
	best := -1
	var used string
	for _, m := range branchMarkers {
		if i := strings.Index(s, m); i != -1 && (best == -1 || i < best) {
			best = i
			used = m
		}
	}
	return best, used
}

// prefixCells counts the display columns of a branch prefix. All connector
// glyphs are single-width, so the column count is the rune count.
func prefixCells(prefix string) int {
	return utf8.RuneCountInString(prefix)
}

// treeSummaryPattern matches the "N directories, M files" trailer that the
// `tree` command appends.
var treeSummaryPattern = regexp.MustCompile(`^\d+ director(y|ies)(, \d+ files?)?$`)

func isTreeSummary(s string) bool {
	return treeSummaryPattern.MatchString(strings.TrimSpace(s))
}
