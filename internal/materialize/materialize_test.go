package materialize

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeforge/treeforge/internal/parse"
	"github.com/treeforge/treeforge/internal/tree"
)

func mustParse(t *testing.T, text string) *tree.Node {
	t.Helper()
	root, err := parse.Parse(text)
	require.NoError(t, err)
	return root
}

func collect(events *[]ProgressEvent) func(ProgressEvent) {
	return func(ev ProgressEvent) {
		*events = append(*events, ev)
	}
}

func TestMaterializeProject(t *testing.T) {
	root := mustParse(t, "project/\n    src/\n        main.py\n    README.md")
	target := t.TempDir()

	var events []ProgressEvent
	report, err := Materialize(context.Background(), root, target, DefaultOptions(), collect(&events))
	require.NoError(t, err)

	assert.Equal(t, 2, report.CreatedDirs)
	assert.Equal(t, 2, report.CreatedFiles)
	assert.Equal(t, 0, report.SkippedExisting)
	assert.Empty(t, report.Failures)
	assert.False(t, report.Incomplete)

	assert.DirExists(t, filepath.Join(target, "project", "src"))
	assert.FileExists(t, filepath.Join(target, "project", "src", "main.py"))
	assert.FileExists(t, filepath.Join(target, "project", "README.md"))

	// One event per node, in pre-order, with a fixed total.
	require.Len(t, events, 4)
	assert.Equal(t, filepath.Join(target, "project"), events[0].Path)
	assert.Equal(t, filepath.Join(target, "project", "src"), events[1].Path)
	assert.Equal(t, filepath.Join(target, "project", "src", "main.py"), events[2].Path)
	assert.Equal(t, filepath.Join(target, "project", "README.md"), events[3].Path)
	for i, ev := range events {
		assert.Equal(t, i+1, ev.Index)
		assert.Equal(t, 4, ev.Total)
		assert.Equal(t, Created, ev.Outcome)
	}
}

func TestRerunSkipsExisting(t *testing.T) {
	root := mustParse(t, "project/\n├── data/\n│   └── .gitkeep\n└── main.py\n")
	target := t.TempDir()

	// Pre-create part of the structure the way a previous run would have.
	require.NoError(t, os.MkdirAll(filepath.Join(target, "project", "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "project", "data", ".gitkeep"), nil, 0o644))

	var events []ProgressEvent
	report, err := Materialize(context.Background(), root, target, DefaultOptions(), collect(&events))
	require.NoError(t, err)

	assert.Empty(t, report.Failures)
	assert.Equal(t, 3, report.SkippedExisting)
	assert.Equal(t, 1, report.CreatedFiles)

	for _, ev := range events {
		if ev.Path == filepath.Join(target, "project", "data", ".gitkeep") {
			assert.Equal(t, Skipped, ev.Outcome)
		}
	}
}

func TestReportCountsSumToTotal(t *testing.T) {
	text := "project/\n    data/\n        keep.txt\n    main.py\n    docs/\n        index.md\n"
	root := mustParse(t, text)
	target := t.TempDir()

	// Occupy "data" with a file so the directory and its child both fail.
	require.NoError(t, os.MkdirAll(filepath.Join(target, "project"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "project", "data"), nil, 0o644))

	report, err := Materialize(context.Background(), root, target, DefaultOptions(), nil)
	require.NoError(t, err)

	sum := report.CreatedDirs + report.CreatedFiles + report.SkippedExisting + len(report.Failures)
	assert.Equal(t, tree.Count(root), sum)
}

func TestNameTypeConflictAndCascade(t *testing.T) {
	root := mustParse(t, "out/\n    sub/\n        a.txt\n")
	target := t.TempDir()

	// A file already occupies the name of the intended "sub" directory.
	require.NoError(t, os.Mkdir(filepath.Join(target, "out"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "out", "sub"), nil, 0o644))

	report, err := Materialize(context.Background(), root, target, DefaultOptions(), nil)
	require.NoError(t, err)

	require.Len(t, report.Failures, 2)
	assert.Equal(t, filepath.Join(target, "out", "sub"), report.Failures[0].Path)
	assert.Equal(t, NameTypeConflict, report.Failures[0].Reason)
	assert.Equal(t, filepath.Join(target, "out", "sub", "a.txt"), report.Failures[1].Path)
	assert.Equal(t, CascadedAncestorFailure, report.Failures[1].Reason)
}

func TestInvalidRootFailsFast(t *testing.T) {
	root := mustParse(t, "project/\n    a.txt\n")

	notADir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notADir, nil, 0o644))

	var events []ProgressEvent
	for _, target := range []string{notADir, filepath.Join(t.TempDir(), "missing")} {
		report, err := Materialize(context.Background(), root, target, DefaultOptions(), collect(&events))
		assert.ErrorIs(t, err, ErrInvalidRoot)
		assert.Nil(t, report)
	}
	assert.Empty(t, events, "invalid root must emit no progress events")
}

func TestCancellationReturnsPartialReport(t *testing.T) {
	root := mustParse(t, "project/\n    a.txt\n    b.txt\n")
	target := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	var events []ProgressEvent
	report, err := Materialize(ctx, root, target, DefaultOptions(), func(ev ProgressEvent) {
		events = append(events, ev)
		if len(events) == 1 {
			cancel()
		}
	})
	require.NoError(t, err)

	assert.True(t, report.Incomplete)
	assert.Len(t, events, 1)
	assert.Equal(t, 1, report.CreatedDirs)
	assert.Equal(t, 0, report.CreatedFiles)
	assert.NoFileExists(t, filepath.Join(target, "project", "a.txt"))
}

func TestDryRunTouchesNothing(t *testing.T) {
	root := mustParse(t, "project/\n    src/\n        main.py\n")
	target := t.TempDir()

	opts := DefaultOptions()
	opts.DryRun = true
	report, err := Materialize(context.Background(), root, target, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.CreatedDirs)
	assert.Equal(t, 1, report.CreatedFiles)
	assert.NoDirExists(t, filepath.Join(target, "project"))
}

func TestFilePermissions(t *testing.T) {
	root := mustParse(t, "out/\n    run.sh\n")
	target := t.TempDir()

	opts := Options{DirPerm: 0o700, FilePerm: 0o755}
	_, err := Materialize(context.Background(), root, target, opts, nil)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(target, "out"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(target, "out", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
