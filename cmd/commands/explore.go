package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/pkg/lists"
)

// NewExploreCommand creates the explore command
func NewExploreCommand() *cobra.Command {
	var flags listFlags
	var collectionID string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse public collections",
		Long: `Browse the public collection catalogue configured by explore.endpoint.

The catalogue is cached in .stash/cache; pass --refresh to refetch it. When
the catalogue cannot be reached the cached copy is shown with a warning.

Examples:
  # Public collections, most recently updated first
  stash explore

  # Refetch and search
  stash explore --refresh --search jazz

  # The items of one public collection
  stash explore --collection 9b2e41 --sort rating --order desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx := commandContext(cmd)

			if collectionID == "" {
				view, err := buildListView(cmd.Context(), cctx, lists.Explore, "", flags)
				if err != nil {
					return err
				}
				return render(cmd, view)
			}

			filters, err := flags.validate(lists.Items)
			if err != nil {
				return err
			}

			client := cctx.Explore()
			defer client.Close()

			items, err := client.CollectionItems(cmd.Context(), collectionID)
			if err != nil {
				return fmt.Errorf("failed to load public collection: %w", err)
			}

			c := lists.NewItemController(cctx.ListOptions())
			c.SetSource(items)
			applyList(c, lists.ParseItemSortKey, flags, filters)
			return render(cmd, itemsView(lists.Items, newResult(c, "Collection "+collectionID, filters)))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&collectionID, "collection", "", "Show the items of one public collection")

	return cmd
}
