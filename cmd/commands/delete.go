package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/store"
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <collection|item|wish> <id>",
		Short: "Delete a collection, item or wish",
		Long: `Permanently delete a record.

Deleting an item removes it from every collection. Deleting a collection
keeps its items.

Examples:
  # Delete an item (with confirmation)
  stash delete item 1f0c6a

  # Force delete without confirmation
  stash delete collection 9b2e41 --force`,
		Args:    cobra.ExactArgs(2),
		PreRunE: requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := cli.NormalizeKind(args[0])
			if err != nil {
				return err
			}
			id := args[1]

			st, err := commandContext(cmd).OpenStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			name, err := recordName(cmd, st, kind, id)
			if err != nil {
				return err
			}

			if !force {
				prompt := fmt.Sprintf("Permanently delete %s '%s'? This cannot be undone.", kind, name)
				confirmed, err := cli.Confirm(prompt, false)
				if err != nil {
					return err
				}
				if !confirmed {
					cli.PrintInfo("Deletion cancelled")
					return nil
				}
			}

			switch kind {
			case store.KindCollection:
				err = st.DeleteCollection(ctx, id)
			case store.KindItem:
				err = st.DeleteItem(ctx, id)
			case store.KindWish:
				err = st.DeleteWishItem(ctx, id)
			}
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", kind, err)
			}

			cli.PrintSuccess("Deleted %s: %s", kind, name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Force deletion without confirmation")

	return cmd
}

// recordName loads a record to confirm it exists and returns its name
func recordName(cmd *cobra.Command, st store.Store, kind, id string) (string, error) {
	ctx := cmd.Context()
	switch kind {
	case store.KindCollection:
		c, err := st.Collection(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to load collection: %w", err)
		}
		return c.Name, nil
	case store.KindItem:
		item, err := st.Item(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to load item: %w", err)
		}
		return item.Name, nil
	case store.KindWish:
		w, err := st.WishItem(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to load wish: %w", err)
		}
		return w.Name, nil
	default:
		return "", fmt.Errorf("unknown kind: %s", kind)
	}
}
