package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/cmd/commands"
	"github.com/pluqqy/stash-cli/internal/logging"
	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "stash",
	Short: "Terminal-based catalogue for your collections",
	Long: `Stash keeps collections of the things you own, the items in them and a wish
list, as plain YAML files (or a SQLite database) in a .stash folder. Run it
without a command for the interactive TUI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if .stash directory exists
		if _, err := os.Stat(files.StashDir); os.IsNotExist(err) {
			return fmt.Errorf("no .stash directory found in the current directory. Run 'stash init' first")
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		configPath, _ := cmd.Flags().GetString("config")

		// The alternate screen owns the terminal, so the TUI logs to a file
		logger, err := logging.InitFile(files.Path(files.LogsDir), verbose)
		if err != nil {
			return err
		}
		defer logging.Close()

		app, err := tui.NewApp(tui.Options{ConfigPath: configPath, Logger: logger})
		if err != nil {
			return err
		}
		defer app.Close()

		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Stash",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Stash version %s\n", version)
	},
}

func init() {
	commands.AddGlobalFlags(rootCmd)
	commands.Register(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if oopsErr, ok := oops.AsOops(err); ok && oopsErr.Hint() != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", oopsErr.Hint())
		}
		os.Exit(1)
	}
}
