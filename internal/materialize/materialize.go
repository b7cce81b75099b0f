// Package materialize creates real directories and empty files from a parsed
// tree.
//
// The walk is pre-order and synchronous: a node is only attempted after its
// parent's attempt has been recorded, one progress event is emitted per node
// before moving on, and per-node failures are collected in the report instead
// of aborting the run. The single fatal precondition is the target root
// itself, which must exist and be a directory.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/treeforge/treeforge/internal/safety"
	"github.com/treeforge/treeforge/internal/tree"
)

// ErrInvalidRoot reports that the target root is missing or not a directory.
// It is the only error Materialize returns; everything else lands in the
// report.
var ErrInvalidRoot = errors.New("target root is not an existing directory")

// Outcome is the result of one node's creation attempt.
type Outcome int

const (
	Created Outcome = iota
	Skipped         // entry already existed with the right kind
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Reason classifies a per-node failure.
type Reason int

const (
	PermissionDenied Reason = iota
	NameTypeConflict        // an existing entry occupies the name with the wrong kind
	CascadedAncestorFailure // failed only because an ancestor already failed
	OtherFailure
)

func (r Reason) String() string {
	switch r {
	case PermissionDenied:
		return "permission denied"
	case NameTypeConflict:
		return "name occupied by wrong kind"
	case CascadedAncestorFailure:
		return "ancestor directory was not created"
	default:
		return "error"
	}
}

// Failure records one node that could not be created.
type Failure struct {
	Path   string `json:"path"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail"`
}

// Report is the aggregate result of one materialization walk. For a completed
// walk, CreatedDirs + CreatedFiles + SkippedExisting + len(Failures) equals
// the node count of the tree.
type Report struct {
	CreatedDirs     int       `json:"created_dirs"`
	CreatedFiles    int       `json:"created_files"`
	SkippedExisting int       `json:"skipped_existing"`
	Failures        []Failure `json:"failures,omitempty"`
	Incomplete      bool      `json:"incomplete,omitempty"`
}

// ProgressEvent describes the outcome of one node, emitted synchronously
// after each attempt. Index is 1-based; Total is fixed before the walk.
type ProgressEvent struct {
	Path    string
	Kind    tree.Kind
	Outcome Outcome
	Index   int
	Total   int
}

// Options control creation behavior.
type Options struct {
	DirPerm  os.FileMode // permissions for created directories
	FilePerm os.FileMode // permissions for created files
	DryRun   bool        // report what would happen without touching disk
}

// DefaultOptions returns the standard 0755/0644 permission set.
func DefaultOptions() Options {
	return Options{DirPerm: 0o755, FilePerm: 0o644}
}

// Materialize walks root in pre-order and creates its entries under target.
// Existing directories and files of the right kind are skipped. A failed node
// is recorded and the walk continues; descendants of a failed directory are
// still attempted and recorded as cascaded failures. onProgress, if non-nil,
// is invoked in walk order on the caller's goroutine. Cancellation via ctx is
// checked between nodes and yields a partial report with Incomplete set.
func Materialize(ctx context.Context, root *tree.Node, target string, opts Options, onProgress func(ProgressEvent)) (*Report, error) {
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, target)
	}
	if opts.DirPerm == 0 {
		opts.DirPerm = 0o755
	}
	if opts.FilePerm == 0 {
		opts.FilePerm = 0o644
	}

	report := &Report{}
	total := tree.Count(root)
	index := 0
	failed := make(map[string]bool) // node paths whose creation failed

	tree.Walk(root, func(n *tree.Node, ancestors []string) bool {
		if ctx.Err() != nil {
			report.Incomplete = true
			return false
		}
		index++

		path, joinErr := safety.SafeJoin(target, append(append([]string(nil), ancestors...), n.Name)...)
		if joinErr != nil {
			path = filepath.Join(append([]string{target}, append(ancestors, n.Name)...)...)
			record(report, failed, Failure{Path: path, Reason: OtherFailure, Detail: joinErr.Error()})
			emit(onProgress, ProgressEvent{Path: path, Kind: n.Kind, Outcome: Failed, Index: index, Total: total})
			return true
		}

		parentFailed := len(ancestors) > 0 && failed[filepath.Dir(path)]

		outcome := createNode(n, path, opts, parentFailed, report, failed)
		emit(onProgress, ProgressEvent{Path: path, Kind: n.Kind, Outcome: outcome, Index: index, Total: total})
		return true
	})

	return report, nil
}

// createNode attempts one node and updates the report counters.
func createNode(n *tree.Node, path string, opts Options, parentFailed bool, report *Report, failed map[string]bool) Outcome {
	info, statErr := os.Lstat(path)

	switch {
	case statErr == nil && n.Kind == tree.Directory && info.IsDir():
		report.SkippedExisting++
		return Skipped

	case statErr == nil && n.Kind == tree.File && !info.IsDir():
		report.SkippedExisting++
		return Skipped

	case statErr == nil:
		// Entry exists with the wrong kind.
		record(report, failed, Failure{
			Path:   path,
			Reason: NameTypeConflict,
			Detail: fmt.Sprintf("a %s already occupies this path", kindOf(info)),
		})
		return Failed

	case !os.IsNotExist(statErr):
		record(report, failed, Failure{Path: path, Reason: classify(statErr, parentFailed), Detail: statErr.Error()})
		return Failed
	}

	if opts.DryRun {
		if parentFailed {
			record(report, failed, Failure{Path: path, Reason: CascadedAncestorFailure, Detail: "parent directory would not exist"})
			return Failed
		}
		if n.Kind == tree.Directory {
			report.CreatedDirs++
		} else {
			report.CreatedFiles++
		}
		return Created
	}

	if n.Kind == tree.Directory {
		if err := os.Mkdir(path, opts.DirPerm); err != nil {
			record(report, failed, Failure{Path: path, Reason: classify(err, parentFailed), Detail: err.Error()})
			return Failed
		}
		report.CreatedDirs++
		return Created
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, opts.FilePerm)
	if err != nil {
		record(report, failed, Failure{Path: path, Reason: classify(err, parentFailed), Detail: err.Error()})
		return Failed
	}
	_ = f.Close()
	report.CreatedFiles++
	return Created
}

func record(report *Report, failed map[string]bool, f Failure) {
	report.Failures = append(report.Failures, f)
	failed[f.Path] = true
}

// classify maps a filesystem error to a failure reason. A node under an
// already-failed ancestor is always a cascaded failure, whatever the
// underlying errno says.
func classify(err error, parentFailed bool) Reason {
	if parentFailed {
		return CascadedAncestorFailure
	}
	if errors.Is(err, fs.ErrPermission) {
		return PermissionDenied
	}
	return OtherFailure
}

func kindOf(info os.FileInfo) string {
	if info.IsDir() {
		return "directory"
	}
	return "file"
}

func emit(onProgress func(ProgressEvent), ev ProgressEvent) {
	if onProgress != nil {
		onProgress(ev)
	}
}
