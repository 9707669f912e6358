package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/store"
)

// CollectionDetail is the structured output of show collection
type CollectionDetail struct {
	models.Collection `yaml:",inline"`
	Items             []lists.PositionedItem `json:"items" yaml:"items"`
}

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <collection|item|wish> <id>",
		Short: "Display one record",
		Long: `Display a collection, item or wish list entry.

Collections are shown with their items in custom order.

Examples:
  stash show collection example-jazz-classics
  stash show item example-blue-train -o yaml`,
		Args:    cobra.ExactArgs(2),
		PreRunE: requireProject,
		RunE:    runShow,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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
	out := cmd.OutOrStdout()

	switch kind {
	case store.KindCollection:
		collection, err := st.Collection(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load collection: %w", err)
		}
		items, err := st.Items(ctx)
		if err != nil {
			return fmt.Errorf("failed to load items: %w", err)
		}

		c := lists.NewCollectionItemController(lists.Options{})
		lists.ShowCollection(c, *collection, items)
		detail := CollectionDetail{Collection: *collection, Items: c.Result()}
		if ok, err := structured(cmd, detail); ok {
			return err
		}
		printCollection(out, detail)

	case store.KindItem:
		item, err := st.Item(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load item: %w", err)
		}
		if ok, err := structured(cmd, item); ok {
			return err
		}
		printItem(out, *item)

	case store.KindWish:
		wish, err := st.WishItem(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load wish: %w", err)
		}
		if ok, err := structured(cmd, wish); ok {
			return err
		}
		printWish(out, *wish)
	}

	return nil
}

func field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%-12s %s\n", label+":", value)
}

func printCollection(w io.Writer, detail CollectionDetail) {
	c := detail.Collection
	fmt.Fprintf(w, "Collection: %s\n", c.Name)
	field(w, "ID", c.ID)
	field(w, "Category", c.Category)
	field(w, "Tags", strings.Join(c.Tags, ", "))
	field(w, "Public", cli.FormatBool(c.Public))
	field(w, "Owner", c.Owner)
	field(w, "Created", cli.FormatDate(c.CreatedAt))
	field(w, "Updated", cli.FormatDate(c.UpdatedAt))
	if c.Description != "" {
		fmt.Fprintf(w, "\n%s\n", c.Description)
	}

	fmt.Fprintf(w, "\nItems (%d):\n", len(detail.Items))
	if len(detail.Items) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	table := cli.NewTable(w, "#", "ID", "NAME", "CATEGORY", "RATING")
	for _, item := range detail.Items {
		position := "-"
		if item.Position >= 0 {
			position = strconv.Itoa(item.Position + 1)
		}
		table.Row(position, item.ID, cli.TruncateString(item.Name, 40), cli.FormatCategory(item.Category), rating(item.Rating))
	}
	table.Render()
}

func printItem(w io.Writer, item models.Item) {
	fmt.Fprintf(w, "Item: %s\n", item.Name)
	field(w, "ID", item.ID)
	field(w, "Category", item.Category)
	field(w, "Tags", strings.Join(item.Tags, ", "))
	field(w, "Rating", rating(item.Rating))
	field(w, "Favorite", cli.FormatBool(item.Favorite))
	field(w, "Image", item.ImageURL)
	field(w, "In", strings.Join(item.CollectionIDs, ", "))
	if !item.AcquiredAt.IsZero() {
		field(w, "Acquired", cli.FormatDate(item.AcquiredAt))
	}
	field(w, "Created", cli.FormatDate(item.CreatedAt))
	field(w, "Updated", cli.FormatDate(item.UpdatedAt))
	if item.Description != "" {
		fmt.Fprintf(w, "\n%s\n", item.Description)
	}
}

func printWish(w io.Writer, wish models.WishItem) {
	fmt.Fprintf(w, "Wish: %s\n", wish.Name)
	field(w, "ID", wish.ID)
	field(w, "Category", wish.Category)
	field(w, "Priority", string(wish.Priority))
	if wish.Price > 0 {
		field(w, "Price", cli.FormatPrice(wish.Price))
	}
	field(w, "URL", wish.URL)
	field(w, "Purchased", cli.FormatBool(wish.Purchased))
	field(w, "Created", cli.FormatDate(wish.CreatedAt))
	if wish.Notes != "" {
		fmt.Fprintf(w, "\n%s\n", wish.Notes)
	}
}
