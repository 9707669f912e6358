package commands

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/examples"
	"github.com/pluqqy/stash-cli/pkg/files"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new stash",
		Long: `Creates the .stash folder structure and a default settings file in the
current directory. Pass --examples to seed a sample stash.`,
		Example: `  stash init
  stash init --examples
  stash init --examples books`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if theme != "" && !slices.Contains(examples.Themes(), theme) {
				return fmt.Errorf("invalid theme '%s'. Valid themes: %s",
					theme, strings.Join(examples.Themes(), ", "))
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine current directory: %w", err)
			}
			cli.PrintInfo("Initializing stash in %s...", cwd)

			if err := files.InitProjectStructure(); err != nil {
				return fmt.Errorf("failed to initialize stash structure: %w", err)
			}
			cli.PrintSuccess("Created %s folder structure", files.StashDir)

			written, err := files.WriteDefaultSettings()
			if err != nil {
				return err
			}
			if written {
				cli.PrintSuccess("Wrote default settings to %s", files.SettingsPath())
			}

			if theme != "" {
				if err := installExamples(cmd, commandContext(cmd), theme, false); err != nil {
					return err
				}
			}

			cli.PrintInfo("Run 'stash' to start the interactive TUI.")
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "examples", "", "Seed example records (music, books or all)")
	cmd.Flags().Lookup("examples").NoOptDefVal = "music"

	return cmd
}
