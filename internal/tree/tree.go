// Package tree defines the in-memory model for a parsed directory hierarchy.
//
// A tree is built once by the parser and is read-only afterwards:
// - Nodes carry a name, a kind (directory or file), and a depth
// - Children keep source order
// - The materializer walks the tree in pre-order and never mutates it
package tree

// Kind distinguishes directory nodes from file nodes.
type Kind int

const (
	Directory Kind = iota
	File
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Node is one entry in the parsed hierarchy. The synthetic root produced by
// the parser has an empty Name and Depth -1 so that its top-level children
// sit at depth 0.
type Node struct {
	Name     string
	Kind     Kind
	Depth    int
	Children []*Node
}

// NewRoot returns the synthetic root that owns all top-level entries.
func NewRoot() *Node {
	return &Node{Kind: Directory, Depth: -1}
}

// IsRoot reports whether n is the synthetic root.
func (n *Node) IsRoot() bool {
	return n.Name == "" && n.Depth == -1
}

// AddChild appends a child named name under n, assigning its depth from n.
func (n *Node) AddChild(name string, kind Kind) *Node {
	child := &Node{
		Name:  name,
		Kind:  kind,
		Depth: n.Depth + 1,
	}
	n.Children = append(n.Children, child)
	return child
}

// HasChild reports whether n already owns a child with the same name and kind.
func (n *Node) HasChild(name string, kind Kind) bool {
	for _, c := range n.Children {
		if c.Name == name && c.Kind == kind {
			return true
		}
	}
	return false
}

// Walk visits every node under n (excluding the synthetic root itself) in
// pre-order: parent before children, children in source order. The walk stops
// early if fn returns false.
func Walk(n *Node, fn func(node *Node, ancestors []string) bool) {
	walk(n, nil, fn)
}

func walk(n *Node, ancestors []string, fn func(*Node, []string) bool) bool {
	if !n.IsRoot() {
		if !fn(n, ancestors) {
			return false
		}
		ancestors = append(ancestors, n.Name)
	}
	for _, c := range n.Children {
		if !walk(c, ancestors, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes under n, excluding the synthetic root.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node, []string) bool {
		total++
		return true
	})
	return total
}

// Stats tallies directories and files under n.
func Stats(n *Node) (dirs, files int) {
	Walk(n, func(node *Node, _ []string) bool {
		if node.Kind == Directory {
			dirs++
		} else {
			files++
		}
		return true
	})
	return dirs, files
}
