package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/treeforge/treeforge/internal/colors"
	"github.com/treeforge/treeforge/internal/materialize"
)

// progressRenderer turns the materializer's event stream into terminal
// output. On a terminal it rewrites a single status line per event; piped
// output gets one plain line per event instead. Events arrive synchronously
// in walk order, so no locking is needed.
type progressRenderer struct {
	isTerm  bool
	width   int
	verbose bool
	dirty   bool // a rewritable status line is on screen
}

func newProgressRenderer(verbose bool) *progressRenderer {
	r := &progressRenderer{verbose: verbose}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		r.isTerm = true
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			r.width = w
		}
	}
	return r
}

// Handle renders one progress event.
func (r *progressRenderer) Handle(ev materialize.ProgressEvent) {
	if r.verbose || !r.isTerm {
		fmt.Printf("%s %s %s\n", outcomeTag(ev.Outcome), ev.Kind, ev.Path)
		return
	}
	line := fmt.Sprintf("[%d/%d] %s %s", ev.Index, ev.Total, ev.Outcome, ev.Path)
	if r.width > 0 {
		line = truncateTo(line, r.width)
	}
	fmt.Printf("\r\033[K%s", line)
	r.dirty = true
}

// Finish clears the rewritable status line, if any.
func (r *progressRenderer) Finish() {
	if r.dirty {
		fmt.Print("\r\033[K")
		r.dirty = false
	}
}

// truncateTo limits s to width columns without splitting a multi-byte rune.
func truncateTo(s string, width int) string {
	if len(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

func outcomeTag(o materialize.Outcome) string {
	// Fixed-width tags keep the per-line output aligned.
	switch o {
	case materialize.Created:
		return colors.Created("create ")
	case materialize.Skipped:
		return colors.Skipped("skip   ")
	default:
		return colors.Failed("fail   ")
	}
}

// printReport writes the end-of-run summary and the itemized failure list.
func printReport(report *materialize.Report, quiet bool) {
	if !quiet {
		summary := fmt.Sprintf("%d directories and %d files created, %d already existed",
			report.CreatedDirs, report.CreatedFiles, report.SkippedExisting)
		if report.Incomplete {
			summary += " " + colors.Warning("(canceled before finishing)")
		}
		fmt.Println(summary)
	}
	if len(report.Failures) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", colors.Failed(fmt.Sprintf("%d entries could not be created:", len(report.Failures))))
	for _, f := range report.Failures {
		detail := f.Reason.String()
		if f.Reason == materialize.OtherFailure && f.Detail != "" {
			detail = f.Detail
		}
		fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Path, detail)
	}
}
