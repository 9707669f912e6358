package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/composer"
	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// listFlags shape a list the way the list screens do: filter, then search,
// then sort. They are shared by list, export and clipboard.
type listFlags struct {
	sort    string
	order   string
	search  string
	filters []string
	refresh bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort key (see 'stash list --help')")
	cmd.Flags().StringVar(&f.order, "order", "", "Sort order (asc|desc)")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Fuzzy search text")
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, "Filter as key=value (repeatable, empty value clears)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "Refetch the explore catalogue instead of using the cache")
}

// validate checks the flags against the keys the list accepts
func (f *listFlags) validate(list string) ([]cli.FilterFlag, error) {
	filters, err := cli.ParseFilterFlags(f.filters)
	if err != nil {
		return nil, err
	}
	if err := cli.ValidateFilterKeys(list, filters); err != nil {
		return nil, err
	}
	if err := cli.ValidateSortKey(list, f.sort); err != nil {
		return nil, err
	}
	if err := cli.ValidateOrder(f.order); err != nil {
		return nil, err
	}
	return filters, nil
}

// ListResult represents the output structure for list-shaped commands
type ListResult[T any] struct {
	List    string   `json:"list" yaml:"list"`
	Title   string   `json:"title" yaml:"title"`
	Sort    string   `json:"sort" yaml:"sort"`
	Order   string   `json:"order" yaml:"order"`
	Search  string   `json:"search,omitempty" yaml:"search,omitempty"`
	Filters []string `json:"filters,omitempty" yaml:"filters,omitempty"`
	Count   int      `json:"count" yaml:"count"`
	Records []T      `json:"records" yaml:"records"`
}

// listView is one derived list ready for any output format
type listView struct {
	List     string
	Title    string
	Columns  []string
	Rows     [][]string
	Result   any
	Markdown string
	// Stale is set when the explore catalogue came from an old cache
	Stale bool
}

// applyList runs the flag transitions on a controller whose source is set
func applyList[T any, K ~string, F listing.Criteria[F]](c *listing.Controller[T, K, F], parse func(string) (K, bool), flags listFlags, filters []cli.FilterFlag) {
	for _, f := range filters {
		c.SetFilter(f.Key, f.Value)
	}
	if flags.search != "" {
		c.Search(flags.search)
	}

	state := c.State()
	by, order := state.SortBy, state.SortOrder
	if flags.sort != "" {
		if k, ok := parse(flags.sort); ok && k != by {
			by, order = k, listing.Ascending
		}
	}
	order = listing.ParseOrder(flags.order, order)
	if by != state.SortBy || order != state.SortOrder {
		c.Sort(by, order)
	}
}

func newResult[T any, K ~string, F listing.Criteria[F]](c *listing.Controller[T, K, F], title string, filters []cli.FilterFlag) ListResult[T] {
	state := c.State()
	result := ListResult[T]{
		List:    c.Name(),
		Title:   title,
		Sort:    string(state.SortBy),
		Order:   string(state.SortOrder),
		Search:  state.SearchValue,
		Count:   len(state.Result),
		Records: state.Result,
	}
	for _, f := range filters {
		result.Filters = append(result.Filters, f.Key+"="+f.Value)
	}
	return result
}

// buildListView loads the source of list, shapes it with flags and renders
// rows and Markdown for it. id names the collection of the collection list.
func buildListView(ctx context.Context, cctx *cli.CommandContext, list, id string, flags listFlags) (*listView, error) {
	filters, err := flags.validate(list)
	if err != nil {
		return nil, err
	}
	opts := cctx.ListOptions()

	switch list {
	case lists.Collections:
		snap, err := cctx.LoadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		c := lists.NewCollectionController(opts)
		c.SetSource(snap.Collections)
		applyList(c, lists.ParseCollectionSortKey, flags, filters)
		return collectionsView(list, "Collections", newResult(c, "Collections", filters)), nil

	case lists.Explore:
		client := cctx.Explore()
		defer client.Close()

		collections, stale, err := client.Load(ctx, flags.refresh)
		if err != nil {
			return nil, fmt.Errorf("failed to load explore catalogue: %w", err)
		}
		c := lists.NewExploreController(opts)
		c.SetSource(collections)
		applyList(c, lists.ParseCollectionSortKey, flags, filters)
		view := collectionsView(list, "Explore", newResult(c, "Explore", filters))
		view.Stale = stale
		return view, nil

	case lists.Items:
		snap, err := cctx.LoadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		c := lists.NewItemController(opts)
		c.SetSource(snap.Items)
		applyList(c, lists.ParseItemSortKey, flags, filters)
		return itemsView(list, newResult(c, "Items", filters)), nil

	case lists.CollectionItems:
		if id == "" {
			return nil, fmt.Errorf("the collection list needs a collection id")
		}
		st, err := cctx.OpenStore()
		if err != nil {
			return nil, err
		}
		defer st.Close()

		collection, err := st.Collection(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load collection: %w", err)
		}
		items, err := st.Items(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load items: %w", err)
		}

		c := lists.NewCollectionItemController(opts)
		lists.ShowCollection(c, *collection, items)
		applyList(c, lists.ParseCollectionItemSortKey, flags, filters)
		return collectionItemsView(*collection, newResult(c, collection.Name, filters)), nil

	case lists.WishList:
		snap, err := cctx.LoadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		c := lists.NewWishController(opts)
		c.SetSource(snap.WishItems)
		applyList(c, lists.ParseWishSortKey, flags, filters)
		return wishView(newResult(c, "Wish list", filters)), nil

	default:
		return nil, fmt.Errorf("unknown list: %s", list)
	}
}

func collectionsView(list, title string, result ListResult[models.Collection]) *listView {
	view := &listView{
		List:     list,
		Title:    title,
		Columns:  []string{"ID", "NAME", "CATEGORY", "ITEMS", "PUBLIC", "UPDATED"},
		Result:   result,
		Markdown: composer.ComposeCollections(title, result.Records),
	}
	for _, c := range result.Records {
		view.Rows = append(view.Rows, []string{
			c.ID,
			cli.TruncateString(c.Name, 40),
			cli.FormatCategory(c.Category),
			strconv.Itoa(len(c.ItemIDs)),
			cli.FormatBool(c.Public),
			cli.FormatDate(c.UpdatedAt),
		})
	}
	return view
}

func itemsView(list string, result ListResult[models.Item]) *listView {
	view := &listView{
		List:     list,
		Title:    result.Title,
		Columns:  []string{"ID", "NAME", "CATEGORY", "RATING", "FAVORITE", "UPDATED"},
		Result:   result,
		Markdown: composer.ComposeItems(result.Title, result.Records),
	}
	for _, item := range result.Records {
		view.Rows = append(view.Rows, itemRow(item))
	}
	return view
}

func itemRow(item models.Item) []string {
	return []string{
		item.ID,
		cli.TruncateString(item.Name, 40),
		cli.FormatCategory(item.Category),
		rating(item.Rating),
		cli.FormatBool(item.Favorite),
		cli.FormatDate(item.UpdatedAt),
	}
}

func collectionItemsView(collection models.Collection, result ListResult[lists.PositionedItem]) *listView {
	view := &listView{
		List:     lists.CollectionItems,
		Title:    collection.Name,
		Columns:  []string{"#", "ID", "NAME", "CATEGORY", "RATING", "FAVORITE", "UPDATED"},
		Result:   result,
		Markdown: composer.ComposeCollection(collection, result.Records),
	}
	for _, item := range result.Records {
		position := "-"
		if item.Position >= 0 {
			position = strconv.Itoa(item.Position + 1)
		}
		view.Rows = append(view.Rows, append([]string{position}, itemRow(item.Item)...))
	}
	return view
}

func wishView(result ListResult[models.WishItem]) *listView {
	view := &listView{
		List:     lists.WishList,
		Title:    result.Title,
		Columns:  []string{"ID", "NAME", "PRIORITY", "PRICE", "CATEGORY", "PURCHASED"},
		Result:   result,
		Markdown: composer.ComposeWishList(result.Title, result.Records),
	}
	for _, w := range result.Records {
		priority := string(w.Priority)
		if priority == "" {
			priority = "-"
		}
		view.Rows = append(view.Rows, []string{
			w.ID,
			cli.TruncateString(w.Name, 40),
			priority,
			cli.FormatPrice(w.Price),
			cli.FormatCategory(w.Category),
			cli.FormatBool(w.Purchased),
		})
	}
	return view
}

func rating(r int) string {
	if r == 0 {
		return "-"
	}
	return strings.Repeat("★", r)
}

// render writes a view in the requested output format
func render(cmd *cobra.Command, view *listView) error {
	if view.Stale {
		cli.PrintWarning("Explore is offline, showing the cached catalogue")
	}

	if ok, err := structured(cmd, view.Result); ok {
		return err
	}

	out := cmd.OutOrStdout()
	if len(view.Rows) == 0 {
		fmt.Fprintf(out, "No records in %s.\n", view.Title)
		return nil
	}

	table := cli.NewTable(out, view.Columns...)
	for _, row := range view.Rows {
		table.Row(row...)
	}
	table.Render()
	if !cli.Quiet() {
		fmt.Fprintln(out, cli.Dim(fmt.Sprintf("%d %s", len(view.Rows), plural(len(view.Rows), "record", "records"))))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// listArgs resolves the positional arguments of list-shaped commands
func listArgs(args []string) (string, string, error) {
	list, err := cli.NormalizeListName(args[0])
	if err != nil {
		return "", "", err
	}
	var id string
	if len(args) > 1 {
		id = args[1]
	}
	if list == lists.CollectionItems && id == "" {
		return "", "", fmt.Errorf("usage: collection <collection-id>")
	}
	if list != lists.CollectionItems && id != "" {
		return "", "", fmt.Errorf("unexpected argument %q for %s", id, list)
	}
	return list, id, nil
}

const listHelp = `Lists:
  collections          Your collections
  collection <id>      The items of one collection, in your custom order
  items                Every item
  wishlist             Your wish list
  explore              Public collections from the Explore catalogue

Sort keys:
  collections, explore   name, items, category, public, created, updated
  collection             custom, name, category, rating, favorite, collections, created, updated, acquired
  items                  name, category, rating, favorite, collections, created, updated, acquired
  wishlist               name, priority, price, category, created, updated

Filters (--filter key=value, value "none" for category means uncategorized):
  collections, explore   category, hasItems, public
  items, collection      category, favorite, hasImage, inCollection
  wishlist               priority, purchased, category`

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list <list> [collection-id]",
		Short: "List collections, items, the wish list or Explore",
		Long: `List records the way the list screens show them: filtered, searched and sorted.

` + listHelp + `

Examples:
  # Collections, most recently updated first
  stash list collections

  # Vinyl items sorted by rating
  stash list items --filter category=vinyl --sort rating --order desc

  # The items of one collection in custom order
  stash list collection 1f0c6a

  # Public collections matching "jazz"
  stash list explore --search jazz -o json`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"collections", "collection", "items", "wishlist", "explore"},
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
			return render(cmd, view)
		},
	}

	flags.register(cmd)
	return cmd
}
