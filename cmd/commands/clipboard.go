package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/lists"
)

// writeClipboard is swapped in tests; CI machines have no clipboard
var writeClipboard = clipboard.WriteAll

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "clipboard <list> [collection-id]",
		Short: "Copy a list to the clipboard as Markdown",
		Long: `Copy a list, shaped like 'stash list' shapes it, to the system clipboard as
a Markdown document ready to paste into notes or a message.

Examples:
  # Copy the wish list
  stash clipboard wishlist

  # Copy one collection in custom order
  stash clipboard collection 9b2e41

  # Copy favorite vinyl
  stash clipboard items --filter category=vinyl --filter favorite=true`,
		Args:    cobra.RangeArgs(1, 2),
		Aliases: []string{"clip", "copy"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
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

			if err := writeClipboard(view.Markdown); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}

			cli.PrintSuccess("Copied %s (%d %s) to clipboard", view.Title, len(view.Rows), plural(len(view.Rows), "record", "records"))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
