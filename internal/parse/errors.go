package parse

import "fmt"

// ErrKind classifies parse failures.
type ErrKind int

const (
	// BadIndent marks an indentation width that is not a consistent multiple
	// of the unit established by its parent's first child.
	BadIndent ErrKind = iota
	// MixedFormat marks a line that does not match the grammar the document
	// committed to during format detection.
	MixedFormat
	// EmptyName marks a line whose name is empty or not a single path segment.
	EmptyName
	// DuplicateSibling marks a repeated name+kind under the same parent.
	DuplicateSibling
)

func (k ErrKind) String() string {
	switch k {
	case BadIndent:
		return "bad indentation"
	case MixedFormat:
		return "mixed format"
	case EmptyName:
		return "invalid name"
	case DuplicateSibling:
		return "duplicate sibling"
	default:
		return "parse error"
	}
}

// ParseError reports a malformed input line. Line is 1-based and refers to
// the original input, counting discarded blank and comment-only lines.
type ParseError struct {
	Line   int
	Kind   ErrKind
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Reason)
}

func errAt(line int, kind ErrKind, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
