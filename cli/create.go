package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/treeforge/treeforge/internal/colors"
	"github.com/treeforge/treeforge/internal/config"
	"github.com/treeforge/treeforge/internal/journal"
	"github.com/treeforge/treeforge/internal/materialize"
	"github.com/treeforge/treeforge/internal/parse"
)

var createCmd = &cobra.Command{
	Use:   "create [file]",
	Short: "Create the described structure on disk",
	Long: `Parses a tree description (from a file, or stdin when the argument is
omitted or "-") and creates the directories and empty files it describes
under the output directory.

Existing entries of the right kind are left alone and counted as skipped.
A single entry that cannot be created does not abort the run: the failure
is recorded, descendants are still attempted, and everything that could
not be created is listed at the end.

Exit codes: 0 everything created, 1 partially created, 2 nothing created
(parse error or invalid output directory).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringP("out", "o", ".", "Directory to create the structure under (must exist)")
	createCmd.Flags().Bool("dry-run", false, "Show what would be created without touching disk")
	createCmd.Flags().String("dperm", "", "Permissions for created directories (octal, default 0755)")
	createCmd.Flags().String("fperm", "", "Permissions for created files (octal, default 0644)")
	createCmd.Flags().Bool("no-journal", false, "Do not record this run in the journal")
	createCmd.Flags().BoolP("quiet", "q", false, "Suppress progress and summary output")
	createCmd.Flags().BoolP("verbose", "v", false, "Print one line per created entry")
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyColorConfig(cfg)

	text, err := readInput(args)
	if err != nil {
		return err
	}

	startedAt := time.Now()
	root, err := parse.Parse(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colors.Failed("parse error:"), err)
		fmt.Fprintln(os.Stderr, "nothing was created")
		os.Exit(2)
	}
	format := parse.Detect(text)

	target, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	if target, err = filepath.Abs(target); err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noJournal, _ := cmd.Flags().GetBool("no-journal")

	opts := materialize.DefaultOptions()
	opts.DryRun = dryRun
	if opts.DirPerm, err = resolvePerm(cmd, "dperm", cfg.Create.DirPerm, 0o755); err != nil {
		return err
	}
	if opts.FilePerm, err = resolvePerm(cmd, "fperm", cfg.Create.FilePerm, 0o644); err != nil {
		return err
	}

	if !dryRun && !quiet {
		warnIfUnwritable(target)
	}

	var onProgress func(materialize.ProgressEvent)
	var renderer *progressRenderer
	if !quiet {
		renderer = newProgressRenderer(verbose)
		onProgress = renderer.Handle
	}

	// Ctrl-C stops the walk between nodes and keeps the partial report.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := materialize.Materialize(ctx, root, target, opts, onProgress)
	if renderer != nil {
		renderer.Finish()
	}
	if err != nil {
		if errors.Is(err, materialize.ErrInvalidRoot) {
			fmt.Fprintf(os.Stderr, "%s %v\n", colors.Failed("error:"), err)
			fmt.Fprintln(os.Stderr, "nothing was created")
			os.Exit(2)
		}
		return err
	}

	printReport(report, quiet)

	if !dryRun && !noJournal && cfg.Journal.Enabled {
		recordRun(cfg, &journal.Record{
			Target:     target,
			Format:     format.String(),
			Canonical:  parse.Print(root),
			Report:     report,
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
		})
	}

	if len(report.Failures) > 0 || report.Incomplete {
		os.Exit(1)
	}
	return nil
}

// resolvePerm picks a permission value from the flag, then the config file,
// then the built-in default.
func resolvePerm(cmd *cobra.Command, flag, fromConfig string, def os.FileMode) (os.FileMode, error) {
	s, err := cmd.Flags().GetString(flag)
	if err != nil {
		return 0, err
	}
	if s == "" {
		s = fromConfig
	}
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	// base 0 accepts 755, 0755, and 0o755
	u, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value %q: %w", flag, s, err)
	}
	return os.FileMode(u), nil
}

// warnIfUnwritable probes the target with a throwaway file so permission
// problems surface before the walk rather than as a wall of failures.
func warnIfUnwritable(target string) {
	probe, err := os.CreateTemp(target, ".treeforge-probe-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s may not be writable: %v\n",
			colors.Warning("warning:"), target, err)
		return
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
}

// recordRun appends the run to the journal. Journal problems are warnings,
// never failures of the run itself.
func recordRun(cfg *config.Config, rec *journal.Record) {
	path, err := cfg.JournalPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s run not recorded: %v\n", colors.Warning("warning:"), err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "%s run not recorded: %v\n", colors.Warning("warning:"), err)
		return
	}
	db, err := journal.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s run not recorded: %v\n", colors.Warning("warning:"), err)
		return
	}
	defer db.Close()
	if err := db.Append(rec); err != nil {
		fmt.Fprintf(os.Stderr, "%s run not recorded: %v\n", colors.Warning("warning:"), err)
	}
}
