package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treeforge/treeforge/internal/colors"
	"github.com/treeforge/treeforge/internal/config"
)

// Version can be overridden at build time with
// -ldflags "-X github.com/treeforge/treeforge/cli.Version=1.0.0".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "treeforge",
	Short: "Treeforge creates directory structures from text descriptions",
	Long: `Treeforge turns a text description of a directory hierarchy into real
directories and empty files. Two notations are accepted: indented text
(directories end with "/") and the ASCII tree style printed by the
'tree' command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the treeforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Core commands
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)

	// Run journal commands
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsShowCmd)

	// Settings
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(versionCmd)
}

// applyColorConfig turns colored output off when the config disables it.
// Terminal autodetection still applies when the config leaves it on.
func applyColorConfig(cfg *config.Config) {
	if !cfg.Color.UI {
		colors.SetColorEnabled(false)
	}
}
