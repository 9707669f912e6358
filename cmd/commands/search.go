package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/stash-cli/internal/cli"
	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/search"
)

// SearchResult represents the output structure for search command
type SearchResult struct {
	Query      string   `json:"query" yaml:"query"`
	Text       string   `json:"text,omitempty" yaml:"text,omitempty"`
	Conditions []string `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Lists      []any    `json:"lists" yaml:"lists"`
	Skipped    []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search collections, items and the wish list",
		Long: `Search every list at once. The query is free text matched fuzzily against
names, descriptions, categories and tags, plus optional key:value filters.

Filter keys are the list filters (see 'stash list --help'), and the pseudo
keys sort: and order: choose the ordering. A list that does not understand
one of the filters is left out of the results.

Examples:
  # Anything mentioning coltrane
  stash search coltrane

  # Vinyl records marked favorite
  stash search category:vinyl favorite:true

  # High priority wishes, cheapest first
  stash search priority:high sort:price order:asc

  # Quoted phrases stay together
  stash search '"blue note" category:vinyl'`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: requireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			query := search.ParseQuery(raw)

			targets := []string{lists.Collections, lists.Items, lists.WishList}
			if len(only) > 0 {
				targets = targets[:0]
				for _, name := range only {
					list, err := cli.NormalizeListName(name)
					if err != nil {
						return err
					}
					if list == lists.CollectionItems || list == lists.Explore {
						return fmt.Errorf("search does not cover %s", list)
					}
					targets = append(targets, list)
				}
			}

			result := SearchResult{Query: raw, Text: query.Text}
			for _, c := range query.Conditions {
				result.Conditions = append(result.Conditions, c.Key+":"+c.Value)
			}

			cctx := commandContext(cmd)
			var views []*listView
			for _, list := range targets {
				flags, ok := queryFlags(list, query)
				if !ok {
					result.Skipped = append(result.Skipped, list)
					continue
				}
				view, err := buildListView(cmd.Context(), cctx, list, "", flags)
				if err != nil {
					return err
				}
				views = append(views, view)
				result.Lists = append(result.Lists, view.Result)
			}

			if ok, err := structured(cmd, result); ok {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, view := range views {
				if len(view.Rows) == 0 {
					continue
				}
				total += len(view.Rows)
				fmt.Fprintf(out, "%s\n", view.Title)
				table := cli.NewTable(out, view.Columns...)
				for _, row := range view.Rows {
					table.Row(row...)
				}
				table.Render()
				fmt.Fprintln(out)
			}

			if total == 0 {
				fmt.Fprintf(out, "No records match %q.\n", raw)
				return nil
			}
			if !cli.Quiet() {
				fmt.Fprintln(out, cli.Dim(fmt.Sprintf("%d %s", total, plural(total, "match", "matches"))))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&only, "in", nil, "Only search these lists (collections, items, wishlist)")

	return cmd
}

// queryFlags turns a parsed query into list flags for one list. It reports
// false when the query filters on a key the list does not have.
func queryFlags(list string, query *search.Query) (listFlags, bool) {
	flags := listFlags{search: query.Text}
	for _, c := range query.Conditions {
		switch c.Key {
		case "sort":
			if cli.ValidateSortKey(list, c.Value) == nil {
				flags.sort = c.Value
			}
		case "order":
			if cli.ValidateOrder(c.Value) == nil {
				flags.order = c.Value
			}
		default:
			filter := cli.FilterFlag{Key: c.Key, Value: c.Value}
			if cli.ValidateFilterKeys(list, []cli.FilterFlag{filter}) != nil {
				return listFlags{}, false
			}
			flags.filters = append(flags.filters, c.Key+"="+c.Value)
		}
	}
	return flags, true
}
