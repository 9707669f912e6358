package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
)

// NewOrderCommand creates the order command
func NewOrderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order <collection-id> <item-id>...",
		Short: "Set the custom order of a collection",
		Long: `Move the given items to the front of a collection's custom order, in the
order given. Items not named keep their relative order after them.

The custom order is what 'stash list collection <id>' shows by default.

Examples:
  # Put two items first
  stash order 9b2e41 1f0c6a 77d0e2`,
		Args:    cobra.MinimumNArgs(2),
		PreRunE: requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID, itemIDs := args[0], args[1:]

			st, err := commandContext(cmd).OpenStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.OrderCollection(cmd.Context(), collectionID, itemIDs); err != nil {
				return fmt.Errorf("failed to order collection: %w", err)
			}

			cli.PrintSuccess("Reordered %d %s in %s", len(itemIDs), plural(len(itemIDs), "item", "items"), collectionID)
			return nil
		},
	}

	return cmd
}

// NewAddToCommand creates the add-to command
func NewAddToCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-to <collection-id> <item-id>...",
		Short: "Add items to a collection",
		Long: `Append items to the end of a collection's custom order. Items already in
the collection are left where they are.

Examples:
  stash add-to 9b2e41 1f0c6a`,
		Args:    cobra.MinimumNArgs(2),
		PreRunE: requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID, itemIDs := args[0], args[1:]

			st, err := commandContext(cmd).OpenStore()
			if err != nil {
				return err
			}
			defer st.Close()

			for _, itemID := range itemIDs {
				if err := st.AddToCollection(cmd.Context(), collectionID, itemID); err != nil {
					return fmt.Errorf("failed to add %s to collection: %w", itemID, err)
				}
			}

			cli.PrintSuccess("Added %d %s to %s", len(itemIDs), plural(len(itemIDs), "item", "items"), collectionID)
			return nil
		},
	}

	return cmd
}
