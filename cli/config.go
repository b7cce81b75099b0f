package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/treeforge/treeforge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show treeforge settings",
	Long:  `Prints the effective configuration and where it comes from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfgPath, err := config.Path()
		if err != nil {
			return err
		}
		journalPath, err := cfg.JournalPath()
		if err != nil {
			return err
		}
		fmt.Printf("config file:      %s\n", cfgPath)
		fmt.Printf("create.dir_perm:  %s\n", cfg.Create.DirPerm)
		fmt.Printf("create.file_perm: %s\n", cfg.Create.FilePerm)
		fmt.Printf("journal.enabled:  %t\n", cfg.Journal.Enabled)
		fmt.Printf("journal.path:     %s\n", journalPath)
		fmt.Printf("color.ui:         %t\n", cfg.Color.UI)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and write the config file",
	Long: `Supported keys: create.dir_perm, create.file_perm, journal.enabled,
journal.path, color.ui.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		switch key {
		case "create.dir_perm", "create.file_perm":
			if _, err := strconv.ParseUint(value, 0, 32); err != nil {
				return fmt.Errorf("invalid permission value %q for %s", value, key)
			}
			if key == "create.dir_perm" {
				cfg.Create.DirPerm = value
			} else {
				cfg.Create.FilePerm = value
			}
		case "journal.path":
			cfg.Journal.Path = value
		case "journal.enabled", "color.ui":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q for %s", value, key)
			}
			if key == "journal.enabled" {
				cfg.Journal.Enabled = b
			} else {
				cfg.Color.UI = b
			}
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		return cfg.Save()
	},
}
