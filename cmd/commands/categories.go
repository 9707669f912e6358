package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/categories"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// CategoryUsage represents one row of the categories command
type CategoryUsage struct {
	Name        string `json:"name" yaml:"name"`
	Color       string `json:"color" yaml:"color"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Registered  bool   `json:"registered" yaml:"registered"`
	Collections int    `json:"collections" yaml:"collections"`
	Items       int    `json:"items" yaml:"items"`
	Wishes      int    `json:"wishes" yaml:"wishes"`
	Total       int    `json:"total" yaml:"total"`
}

// NewCategoriesCommand creates the categories command
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Show categories and how often they are used",
		Long: `Show every category, registered or in use, with the number of collections,
items and wishes using it. Records without a category are counted under "none",
which is also the filter value for them.

Examples:
  stash categories
  stash categories add vinyl --color "#1abc9c" --description "Records"
  stash categories remove cassettes`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runCategories,
	}

	cmd.AddCommand(newCategoryAddCommand(), newCategoryRemoveCommand())
	return cmd
}

func runCategories(cmd *cobra.Command, args []string) error {
	cctx := commandContext(cmd)

	registry, err := cctx.Categories()
	if err != nil {
		return err
	}
	snap, err := cctx.LoadSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	usage := categories.AllUsage(registry, snap)
	rows := make([]CategoryUsage, 0, len(usage)+1)
	for name, stats := range usage {
		meta, registered := registry.Get(name)
		rows = append(rows, CategoryUsage{
			Name:        name,
			Color:       registry.Color(name),
			Description: meta.Description,
			Registered:  registered,
			Collections: stats.CollectionCount,
			Items:       stats.ItemCount,
			Wishes:      stats.WishCount,
			Total:       stats.TotalCount,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	if none := categories.CountUsage(snap, models.CategoryNone); none.TotalCount > 0 {
		rows = append(rows, CategoryUsage{
			Name:        models.CategoryNone,
			Collections: none.CollectionCount,
			Items:       none.ItemCount,
			Wishes:      none.WishCount,
			Total:       none.TotalCount,
		})
	}

	if ok, err := structured(cmd, rows); ok {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No categories yet.")
		return nil
	}

	table := cli.NewTable(out, "CATEGORY", "COLLECTIONS", "ITEMS", "WISHES", "TOTAL", "COLOR")
	for _, r := range rows {
		name := r.Name
		if !r.Registered && r.Name != models.CategoryNone {
			name += " *"
		}
		color := r.Color
		if color == "" {
			color = "-"
		}
		table.Row(name,
			strconv.Itoa(r.Collections),
			strconv.Itoa(r.Items),
			strconv.Itoa(r.Wishes),
			strconv.Itoa(r.Total),
			color,
		)
	}
	table.Render()
	if !cli.Quiet() {
		fmt.Fprintln(out, cli.Dim("* in use but not registered"))
	}
	return nil
}

func newCategoryAddCommand() *cobra.Command {
	var color, description string

	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Register a category or update its color and description",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := commandContext(cmd).Categories()
			if err != nil {
				return err
			}

			name := models.NormalizeCategory(args[0])
			if color == "" {
				color = models.CategoryColor(name, "")
			}
			if err := registry.Add(models.Category{Name: name, Color: color, Description: description}); err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}
			if err := registry.Save(); err != nil {
				return err
			}

			cli.PrintSuccess("Registered category '%s'", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	return cmd
}

func newCategoryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Short:   "Remove a category from the registry; records keep it",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := commandContext(cmd).Categories()
			if err != nil {
				return err
			}
			if err := registry.Remove(args[0]); err != nil {
				return fmt.Errorf("failed to remove category: %w", err)
			}
			if err := registry.Save(); err != nil {
				return err
			}

			cli.PrintSuccess("Removed category '%s' from the registry", models.NormalizeCategory(args[0]))
			return nil
		},
	}
}
