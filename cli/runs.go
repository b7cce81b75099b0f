package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treeforge/treeforge/internal/colors"
	"github.com/treeforge/treeforge/internal/config"
	"github.com/treeforge/treeforge/internal/journal"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded materialization runs",
	Long:  `Lists past create runs from the journal, most recent first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := journalFile()
		if err != nil {
			return err
		}
		// Listing is read-only: a missing journal means no runs, and must
		// not create an empty database as a side effect.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println("no runs recorded")
			return nil
		}

		db, err := journal.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer db.Close()

		runs, err := db.List()
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}
		for _, r := range runs {
			status := colors.Green("ok")
			if len(r.Report.Failures) > 0 {
				status = colors.Red(fmt.Sprintf("%d failed", len(r.Report.Failures)))
			}
			if r.Report.Incomplete {
				status += " " + colors.Warning("(incomplete)")
			}
			fmt.Printf("%s  %s  %s  %d dirs, %d files, %d skipped  %s\n",
				r.ID,
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				r.Target,
				r.Report.CreatedDirs, r.Report.CreatedFiles, r.Report.SkippedExisting,
				status)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded run in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := journalFile()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("no runs recorded")
		}

		db, err := journal.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer db.Close()

		rec, err := db.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("run:      %s\n", rec.ID)
		fmt.Printf("started:  %s\n", rec.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("finished: %s\n", rec.FinishedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("target:   %s\n", rec.Target)
		fmt.Printf("format:   %s\n", rec.Format)
		printReport(rec.Report, false)
		fmt.Println("\ntree:")
		fmt.Print(rec.Canonical)
		return nil
	},
}

// journalFile loads the config, applies its color setting, and resolves the
// journal database location.
func journalFile() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	applyColorConfig(cfg)
	return cfg.JournalPath()
}
