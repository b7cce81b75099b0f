package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treeforge/treeforge/internal/colors"
	"github.com/treeforge/treeforge/internal/parse"
	"github.com/treeforge/treeforge/internal/tree"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a tree description without creating anything",
	Long: `Parses the description and reports the detected format and entry counts.
On a malformed input the offending line number is printed and the command
exits non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}
		root, err := parse.Parse(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", colors.Failed("parse error:"), err)
			os.Exit(2)
		}
		dirs, files := tree.Stats(root)
		fmt.Printf("format: %s\n", parse.Detect(text))
		fmt.Printf("entries: %d (%d directories, %d files)\n", dirs+files, dirs, files)
		return nil
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Print a tree description in canonical indented form",
	Long: `Parses the description (either notation) and prints it back as indented
text with four-space nesting and a trailing "/" on directories. Useful for
normalizing pasted 'tree' output before keeping it in a project.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}
		root, err := parse.Parse(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", colors.Failed("parse error:"), err)
			os.Exit(2)
		}
		fmt.Print(parse.Print(root))
		return nil
	},
}
