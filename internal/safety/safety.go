// Package safety validates entry names and confines joined paths to the
// materialization root.
package safety

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateName checks that name is a single path segment: non-empty, not "."
// or "..", and free of path separators.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("reserved name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name %q contains a path separator", name)
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("absolute path %q not allowed", name)
	}
	return nil
}

// SafeJoin joins root with parts and verifies the result stays inside root.
func SafeJoin(root string, parts ...string) (string, error) {
	joined := filepath.Join(append([]string{root}, parts...)...)
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(joined))
	if err != nil {
		return "", err
	}
	relSlash := filepath.ToSlash(rel)
	if relSlash == ".." || strings.HasPrefix(relSlash, "../") {
		return "", fmt.Errorf("path %q escapes root %q", joined, root)
	}
	return filepath.Clean(joined), nil
}
