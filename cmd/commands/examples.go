package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/examples"
	"github.com/pluqqy/stash-cli/pkg/models"
)

func NewExamplesCommand() *cobra.Command {
	var listOnly bool
	var force bool

	cmd := &cobra.Command{
		Use:   "examples [theme]",
		Short: "Add example collections, items and wishes to your stash",
		Long: `Add a sample stash so every list has something to show.

Themes:
  music        - Records and a jazz collection (default)
  books        - A reading list and book shelf
  all          - Install every theme

Example records use ids prefixed with 'example-' so they are easy to tell
apart from your own, and existing records are left alone unless --force is set.`,
		Example: `  # Add the music examples
  stash examples

  # List available examples without installing
  stash examples --list

  # Reinstall every example, overwriting edits
  stash examples all --force`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := ""
			if len(args) > 0 {
				theme = args[0]
			}
			if theme == "" {
				if listOnly {
					theme = "all"
				} else {
					theme = "music"
				}
			}

			if !slices.Contains(examples.Themes(), theme) {
				return fmt.Errorf("invalid theme '%s'. Valid themes: %s",
					theme, strings.Join(examples.Themes(), ", "))
			}

			if listOnly {
				return listExamples(cmd, theme)
			}
			return installExamples(cmd, commandContext(cmd), theme, force)
		},
	}

	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List available examples without installing")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing example records")

	return cmd
}

func listExamples(cmd *cobra.Command, theme string) error {
	sets := examples.GetExamples(theme)
	if ok, err := structured(cmd, sets); ok {
		return err
	}

	out := cmd.OutOrStdout()
	if theme == "all" {
		fmt.Fprintf(out, "Available examples (all themes):\n\n")
	} else {
		fmt.Fprintf(out, "Available examples in theme '%s':\n\n", theme)
	}

	for _, set := range sets {
		fmt.Fprintf(out, "[%s] %s\n", set.Theme, set.Name)
		fmt.Fprintf(out, "  %s\n", set.Description)
		for _, c := range set.Collections {
			fmt.Fprintf(out, "  • collection %s (%d items)\n", c.Name, len(c.ItemIDs))
		}
		fmt.Fprintf(out, "  • %d items, %d wishes\n\n", len(set.Items), len(set.Wishes))
	}
	return nil
}

func installExamples(cmd *cobra.Command, cctx *cli.CommandContext, theme string, force bool) error {
	st, err := cctx.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	registry, err := cctx.Categories()
	if err != nil {
		return err
	}

	var installed, skipped int
	for _, set := range examples.GetExamples(theme) {
		cli.PrintInfo("Installing %s", set.Name)

		result, err := examples.Install(cmd.Context(), st, set, force)
		if err != nil {
			return err
		}
		installed += result.Installed
		skipped += result.Skipped

		if _, err := registry.Register(setCategories(set)...); err != nil {
			return fmt.Errorf("failed to register example categories: %w", err)
		}
	}

	cli.PrintSuccess("Installed %d example records", installed)
	if skipped > 0 {
		cli.PrintInfo("Skipped %d existing records (use --force to overwrite)", skipped)
	}
	return nil
}

func setCategories(set examples.ExampleSet) []string {
	var names []string
	for _, c := range set.Collections {
		names = append(names, c.Category)
	}
	for _, item := range set.Items {
		names = append(names, item.Category)
	}
	for _, w := range set.Wishes {
		names = append(names, w.Category)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// registerCategory adds a record's category to the registry so it gets a
// stable color
func registerCategory(cctx *cli.CommandContext, category string) {
	if category == "" {
		return
	}
	registry, err := cctx.Categories()
	if err != nil {
		cctx.Logger.Warn("category registry unavailable", "err", err)
		return
	}
	if _, err := registry.Register(models.NormalizeCategory(category)); err != nil {
		cctx.Logger.Warn("failed to register category", "category", category, "err", err)
	}
}
