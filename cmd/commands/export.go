package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/composer"
	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/lists"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var flags listFlags
	var format string
	var toFile string

	cmd := &cobra.Command{
		Use:   "export <list> [collection-id]",
		Short: "Export a list as JSON, YAML or Markdown",
		Long: `Export a list exactly as 'stash list' would show it, in one of three formats.

Markdown exports without --to are written to .stash/exports/<title>.md.
JSON and YAML go to stdout unless --to names a file.

Examples:
  # The wish list as Markdown
  stash export wishlist --format markdown

  # One collection, custom order, as JSON
  stash export collection 9b2e41 --format json --to jazz.json

  # Favorite items as YAML
  stash export items --filter favorite=true --format yaml`,
		Args: cobra.RangeArgs(1, 2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json", "yaml", "markdown", "md":
			default:
				return fmt.Errorf("invalid format: %s (must be: json, yaml, or markdown)", format)
			}
			list, _, err := listArgs(args)
			if err != nil {
				return err
			}
			if list == lists.Explore {
				return nil
			}
			return requireProject(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			list, id, err := listArgs(args)
			if err != nil {
				return err
			}

			view, err := buildListView(cmd.Context(), commandContext(cmd), list, id, flags)
			if err != nil {
				return err
			}
			if view.Stale {
				cli.PrintWarning("Explore is offline, exporting the cached catalogue")
			}

			if format == "markdown" || format == "md" {
				path := toFile
				if path == "" {
					path = files.Path(files.ExportsDir, files.Slugify(view.Title)+".md")
				}
				written, err := composer.WriteMarkdown(view.Markdown, path, view.Title)
				if err != nil {
					return err
				}
				cli.PrintSuccess("Exported %s (%d %s) to: %s", view.Title, len(view.Rows), plural(len(view.Rows), "record", "records"), written)
				return nil
			}

			if toFile == "" {
				return cli.OutputResults(cmd.OutOrStdout(), format, view.Result)
			}

			file, err := os.Create(toFile)
			if err != nil {
				return fmt.Errorf("failed to create file: %w", err)
			}
			defer file.Close()

			if err := cli.OutputResults(file, format, view.Result); err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			cli.PrintSuccess("Exported %s to: %s (%s format)", view.Title, toFile, format)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "markdown", "Export format (json|yaml|markdown)")
	cmd.Flags().StringVar(&toFile, "to", "", "Write to this file")

	return cmd
}
