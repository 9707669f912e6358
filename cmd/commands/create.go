package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/store"
)

// recordFlags hold the fields every kind of record can be created with
type recordFlags struct {
	name        string
	description string
	category    string
	tags        []string
	// collection
	public bool
	// item
	rating      int
	favorite    bool
	image       string
	acquired    string
	collections []string
	// wish
	priority string
	price    float64
	url      string
}

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	var f recordFlags

	cmd := &cobra.Command{
		Use:   "create <collection|item|wish>",
		Short: "Create a collection, item or wish",
		Long: `Create a record. The id is generated and printed.

Examples:
  # A public collection
  stash create collection --name "Jazz classics" --category vinyl --public

  # An item, added to a collection
  stash create item --name "Blue Train" --category vinyl --rating 5 --collection 1f0c6a

  # A wish
  stash create wish --name "Turntable belt" --priority high --price 12.5`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"collection", "item", "wish"},
		PreRunE:   requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := cli.NormalizeKind(args[0])
			if err != nil {
				return err
			}
			if f.name == "" {
				return fmt.Errorf("--name is required")
			}

			cctx := commandContext(cmd)
			st, err := cctx.OpenStore()
			if err != nil {
				return err
			}
			defer st.Close()

			id, err := createRecord(cmd, st, kind, f)
			if err != nil {
				return err
			}
			registerCategory(cctx, f.category)

			if ok, err := structured(cmd, map[string]string{"kind": kind, "id": id}); ok {
				return err
			}
			cli.PrintSuccess("Created %s '%s'", kind, f.name)
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Name (required)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description, or notes for a wish")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category")
	cmd.Flags().StringSliceVarP(&f.tags, "tags", "t", nil, "Comma separated tags")
	cmd.Flags().BoolVar(&f.public, "public", false, "Collection: list it in Explore")
	cmd.Flags().IntVar(&f.rating, "rating", 0, "Item: rating from 1 to 5")
	cmd.Flags().BoolVar(&f.favorite, "favorite", false, "Item: mark as favorite")
	cmd.Flags().StringVar(&f.image, "image", "", "Item: image URL")
	cmd.Flags().StringVar(&f.acquired, "acquired", "", "Item: acquisition date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.collections, "collection", nil, "Item: add to these collections")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Wish: low, medium or high")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Wish: price")
	cmd.Flags().StringVar(&f.url, "url", "", "Wish: shop URL")

	return cmd
}

func createRecord(cmd *cobra.Command, st store.Store, kind string, f recordFlags) (string, error) {
	ctx := cmd.Context()

	switch kind {
	case store.KindCollection:
		c := &models.Collection{
			Name:        f.name,
			Description: f.description,
			Category:    f.category,
			Tags:        f.tags,
			Public:      f.public,
		}
		if err := st.SaveCollection(ctx, c); err != nil {
			return "", fmt.Errorf("failed to create collection: %w", err)
		}
		return c.ID, nil

	case store.KindItem:
		item := &models.Item{
			Name:        f.name,
			Description: f.description,
			Category:    f.category,
			Tags:        f.tags,
			Rating:      f.rating,
			Favorite:    f.favorite,
			ImageURL:    f.image,
		}
		if f.acquired != "" {
			acquired, err := time.Parse("2006-01-02", f.acquired)
			if err != nil {
				return "", fmt.Errorf("invalid --acquired date %q (expected YYYY-MM-DD)", f.acquired)
			}
			item.AcquiredAt = acquired
		}
		if err := st.SaveItem(ctx, item); err != nil {
			return "", fmt.Errorf("failed to create item: %w", err)
		}
		for _, collectionID := range f.collections {
			if err := st.AddToCollection(ctx, collectionID, item.ID); err != nil {
				return item.ID, fmt.Errorf("failed to add item to collection %s: %w", collectionID, err)
			}
		}
		return item.ID, nil

	case store.KindWish:
		wish := &models.WishItem{
			Name:     f.name,
			Notes:    f.description,
			Category: f.category,
			Price:    f.price,
			URL:      f.url,
		}
		if f.priority != "" {
			priority, ok := models.ParsePriority(f.priority)
			if !ok {
				return "", fmt.Errorf("invalid priority %q (must be: low, medium, or high)", f.priority)
			}
			wish.Priority = priority
		}
		if err := st.SaveWishItem(ctx, wish); err != nil {
			return "", fmt.Errorf("failed to create wish: %w", err)
		}
		return wish.ID, nil

	default:
		return "", fmt.Errorf("unknown kind: %s", kind)
	}
}
