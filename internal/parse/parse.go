// Package parse turns a text description of a directory hierarchy into a
// tree.Node structure.
//
// Two notations are accepted:
// - Indented: nesting from leading whitespace, directories end with "/"
// - ASCII tree: the output style of the `tree` command, with branch glyphs
//   like "├──"/"└──" or their plain-ASCII forms "|--"/"`--"/"+--"
//
// The format is decided once for the whole document. Comments start at "#"
// and run to end of line; blank lines are discarded. Parsing is strict: the
// first malformed line aborts with a ParseError carrying its 1-based line
// number, and no partial tree is returned.
package parse

import (
	"strings"

	"github.com/treeforge/treeforge/internal/tree"
)

// Format identifies which line grammar the document uses.
type Format int

const (
	Indent Format = iota
	ASCII
)

func (f Format) String() string {
	if f == ASCII {
		return "ASCII tree"
	}
	return "indented"
}

// branchMarkers are the glyph runs that introduce a name in ASCII tree
// format, longest first so prefix matching picks the full marker.
var branchMarkers = []string{"├── ", "└── ", "|-- ", "`-- ", "+-- ", "├──", "└──", "|--", "`--", "+--"}

// line is one surviving input line after comment stripping.
type line struct {
	num  int    // 1-based position in the original input
	text string // comment-free, right-trimmed, leading whitespace intact
}

// Detect reports which notation the document uses. The decision is made for
// the whole document: the presence of any branch glyph commits it to ASCII
// tree format.
func Detect(text string) Format {
	for _, ln := range splitLines(text) {
		if hasTreeGlyphs(ln.text) {
			return ASCII
		}
	}
	return Indent
}

// Parse detects the notation and builds the tree. The returned root is the
// synthetic node owning all top-level entries.
func Parse(text string) (*tree.Node, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, errAt(1, EmptyName, "input contains no entries")
	}
	if Detect(text) == ASCII {
		return parseASCII(lines)
	}
	return parseIndent(lines)
}

// splitLines strips comments, drops blank lines, and keeps original line
// numbers for error reporting.
func splitLines(text string) []line {
	var out []line
	for i, raw := range strings.Split(text, "\n") {
		ln := stripComment(strings.TrimRight(raw, "\r"))
		if strings.TrimSpace(ln) == "" {
			continue
		}
		out = append(out, line{num: i + 1, text: strings.TrimRight(ln, " \t")})
	}
	return out
}

// stripComment truncates s at the first "#" that starts the line or follows
// whitespace. A "#" glued to preceding name text is kept (e.g. dotfiles or
// names containing the character).
func stripComment(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != '#' {
			continue
		}
		if i == 0 || s[i-1] == ' ' || s[i-1] == '\t' {
			return s[:i]
		}
	}
	return s
}

func hasTreeGlyphs(s string) bool {
	if strings.ContainsAny(s, "│├└─") {
		return true
	}
	for _, m := range []string{"|--", "`--", "+--"} {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// splitName separates the directory marker from a raw name, validating that
// what remains is a usable single path segment.
func splitName(raw string, num int) (name string, kind tree.Kind, err *ParseError) {
	name = strings.TrimSpace(raw)
	kind = tree.File
	if strings.HasSuffix(name, "/") {
		kind = tree.Directory
		name = strings.TrimSuffix(name, "/")
	}
	if name == "" {
		return "", 0, errAt(num, EmptyName, "entry has no name")
	}
	if name == "." || name == ".." {
		return "", 0, errAt(num, EmptyName, "reserved name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", 0, errAt(num, EmptyName, "name %q contains a path separator", name)
	}
	return name, kind, nil
}

// attach adds a child under parent, enforcing the duplicate-sibling rule and
// promoting a File parent that turns out to own children.
func attach(parent *tree.Node, name string, kind tree.Kind, num int) (*tree.Node, *ParseError) {
	if parent.Kind == tree.File {
		parent.Kind = tree.Directory
	}
	if parent.HasChild(name, kind) {
		return nil, errAt(num, DuplicateSibling, "%s %q repeats an earlier sibling", kind, name)
	}
	return parent.AddChild(name, kind), nil
}
