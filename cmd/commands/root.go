package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/internal/logging"
)

// AddGlobalFlags registers the persistent flags every command shares and
// the hook that applies them
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringP("output", "o", "text", "Output format (text|json|yaml)")
	flags.BoolP("quiet", "q", false, "Suppress status messages")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("yes", "y", false, "Answer yes to every confirmation")
	flags.BoolP("verbose", "v", false, "Log debug details to stderr")
	flags.String("config", "", "Settings file (default .stash/settings.toml)")

	root.PersistentPreRunE = setup
}

// Register adds every subcommand to root
func Register(root *cobra.Command) {
	root.AddCommand(
		NewInitCommand(),
		NewListCommand(),
		NewSearchCommand(),
		NewShowCommand(),
		NewCreateCommand(),
		NewDeleteCommand(),
		NewOrderCommand(),
		NewAddToCommand(),
		NewExploreCommand(),
		NewCategoriesCommand(),
		NewExportCommand(),
		NewClipboardCommand(),
		NewExamplesCommand(),
	)
}

func setup(cmd *cobra.Command, args []string) error {
	format := outputFormat(cmd)
	if err := cli.ValidateOutputFormat(format); err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")
	yes, _ := cmd.Flags().GetBool("yes")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Structured output must stay parseable
	if format != string(cli.FormatText) {
		quiet = true
	}

	cli.SetGlobalFlags(quiet, noColor, yes)
	cli.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin())
	logging.InitCLI(cmd.ErrOrStderr(), verbose)
	return nil
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		return string(cli.FormatText)
	}
	return format
}

// commandContext builds the context for one command run
func commandContext(cmd *cobra.Command) *cli.CommandContext {
	configPath, _ := cmd.Flags().GetString("config")
	return cli.NewCommandContext(configPath, logging.Logger)
}

// requireProject is the PreRunE of every command that needs an initialized stash
func requireProject(cmd *cobra.Command, args []string) error {
	if err := commandContext(cmd).ValidateProject(); err != nil {
		return err
	}
	return nil
}

// structured writes data as json or yaml when -o asks for it
func structured(cmd *cobra.Command, data any) (bool, error) {
	format := outputFormat(cmd)
	if format == string(cli.FormatText) {
		return false, nil
	}
	if err := cli.OutputResults(cmd.OutOrStdout(), format, data); err != nil {
		return true, fmt.Errorf("failed to format output: %w", err)
	}
	return true, nil
}
