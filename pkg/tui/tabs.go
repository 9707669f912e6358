package tui

import (
	"strconv"
	"strings"

	"github.com/pluqqy/stash-cli/pkg/categories"
	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/search"
)

// column describes one table column. A zero width column takes the space
// the fixed columns leave.
type column struct {
	title    string
	width    int
	category bool
}

// listTab is one list screen as the app sees it, whatever its record type
type listTab interface {
	Title() string
	Query() string
	SetQuery(query string)
	NextSort(sameKey bool)
	CycleCategory()
	ToggleBool()
	Reset()
	Len() int
	Columns() []column
	Row(i int) []string
	Name(i int) string
	ID(i int) string
	Preview(i int) string
	SortLabel() string
	Filters() []string
	Cursor() int
	SetCursor(i int)
	Offset() int
	SetOffset(i int)
}

// viewport keeps the cursor and scroll position of a tab
type viewport struct {
	cursor int
	offset int
}

func (v *viewport) Cursor() int { return v.cursor }
func (v *viewport) SetCursor(i int) { v.cursor = i }
func (v *viewport) Offset() int { return v.offset }
func (v *viewport) SetOffset(i int) { v.offset = i }

// controllerTab adapts a list controller to a listTab. The search bar query
// is the single source of the tab's filter and search state: key:value
// tokens become criteria, the rest is search text.
type controllerTab[T any, K ~string, F listing.Criteria[F]] struct {
	viewport

	title        string
	c            *listing.Controller[T, K, F]
	keys         []K
	columns      []column
	row          func(T) []string
	name         func(T) string
	id           func(T) string
	describe     func(T) string
	category     func(T) string
	boolKey      string
	query        string
	defaultQuery string
	helper       *search.FilterHelper
}

func (t *controllerTab[T, K, F]) Title() string { return t.title }
func (t *controllerTab[T, K, F]) Query() string { return t.query }

// SetQuery applies a search bar query: every filter key of the list is set
// from the query or cleared, then the free text is searched
func (t *controllerTab[T, K, F]) SetQuery(query string) {
	t.query = query
	q := search.ParseQuery(query)
	values := make(map[string]string, len(q.Conditions))
	for _, c := range q.Conditions {
		values[lists.FilterKey(c.Key)] = c.Value
	}
	for _, key := range lists.FilterKeyNames(t.c.Name()) {
		t.c.SetFilter(key, values[lists.FilterKey(key)])
	}
	t.c.Search(q.Text)
	t.clamp()
}

// NextSort moves to the next sort key, or toggles the direction of the
// current one when sameKey is set
func (t *controllerTab[T, K, F]) NextSort(sameKey bool) {
	state := t.c.State()
	selected := state.SortBy
	if !sameKey && len(t.keys) > 0 {
		next := 0
		for i, k := range t.keys {
			if k == state.SortBy {
				next = (i + 1) % len(t.keys)
				break
			}
		}
		selected = t.keys[next]
	}
	t.c.Sort(selected, listing.NextOrder(state.SortBy, state.SortOrder, selected))
}

// CycleCategory steps the category filter through unset, every category in
// the source and "none"
func (t *controllerTab[T, K, F]) CycleCategory() {
	values := append([]string{""}, categories.FilterValues(categories.Of(t.c.Source(), t.category))...)
	t.SetQuery(t.helper.CycleFilter(t.query, "category", values))
}

// ToggleBool cycles the primary boolean filter: unset, true, false
func (t *controllerTab[T, K, F]) ToggleBool() {
	if t.boolKey == "" {
		return
	}
	t.SetQuery(t.helper.ToggleBoolFilter(t.query, t.boolKey))
}

// Reset restores the default sort and the tab's default query
func (t *controllerTab[T, K, F]) Reset() {
	t.c.Reset()
	t.cursor, t.offset = 0, 0
	t.SetQuery(t.defaultQuery)
}

// setSource swaps in freshly loaded records, keeping query and sort
func (t *controllerTab[T, K, F]) setSource(records []T) {
	t.c.SetSource(records)
	t.clamp()
}

func (t *controllerTab[T, K, F]) clamp() {
	n := len(t.c.Result())
	if t.cursor >= n {
		t.cursor = max(n-1, 0)
	}
	if t.offset > t.cursor {
		t.offset = t.cursor
	}
}

func (t *controllerTab[T, K, F]) Len() int { return len(t.c.Result()) }
func (t *controllerTab[T, K, F]) Columns() []column { return t.columns }

func (t *controllerTab[T, K, F]) record(i int) (T, bool) {
	result := t.c.Result()
	if i < 0 || i >= len(result) {
		var zero T
		return zero, false
	}
	return result[i], true
}

func (t *controllerTab[T, K, F]) Row(i int) []string {
	r, ok := t.record(i)
	if !ok {
		return nil
	}
	return t.row(r)
}

func (t *controllerTab[T, K, F]) Name(i int) string {
	r, ok := t.record(i)
	if !ok {
		return ""
	}
	return t.name(r)
}

func (t *controllerTab[T, K, F]) ID(i int) string {
	r, ok := t.record(i)
	if !ok || t.id == nil {
		return ""
	}
	return t.id(r)
}

func (t *controllerTab[T, K, F]) Preview(i int) string {
	r, ok := t.record(i)
	if !ok || t.describe == nil {
		return ""
	}
	return t.describe(r)
}

func (t *controllerTab[T, K, F]) SortLabel() string {
	state := t.c.State()
	return string(state.SortBy) + " " + state.SortOrder.Arrow()
}

func (t *controllerTab[T, K, F]) Filters() []string {
	return t.helper.CurrentFilters(t.query)
}

// Tab constructors

func newCollectionsTab(opts lists.Options) *controllerTab[models.Collection, lists.CollectionSortKey, lists.CollectionFilter] {
	return &controllerTab[models.Collection, lists.CollectionSortKey, lists.CollectionFilter]{
		title:    "Collections",
		c:        lists.NewCollectionController(opts),
		keys:     lists.CollectionSortKeys,
		columns:  collectionColumns,
		row:      collectionRow,
		name:     func(c models.Collection) string { return c.Name },
		id:       func(c models.Collection) string { return c.ID },
		describe: func(c models.Collection) string { return c.Description },
		category: func(c models.Collection) string { return c.Category },
		boolKey:  "public",
		helper:   search.NewFilterHelper(),
	}
}

func newExploreTab(opts lists.Options) *controllerTab[models.Collection, lists.CollectionSortKey, lists.CollectionFilter] {
	t := newCollectionsTab(opts)
	t.title = "Explore"
	t.c = lists.NewExploreController(opts)
	t.defaultQuery = t.helper.SetFilter("", "public", "true")
	t.query = t.defaultQuery
	return t
}

func newItemsTab(opts lists.Options, title string) *controllerTab[models.Item, lists.ItemSortKey, lists.ItemFilter] {
	return &controllerTab[models.Item, lists.ItemSortKey, lists.ItemFilter]{
		title:    title,
		c:        lists.NewItemController(opts),
		keys:     lists.ItemSortKeys,
		columns:  itemColumns,
		row:      itemRow,
		name:     func(i models.Item) string { return i.Name },
		id:       func(i models.Item) string { return i.ID },
		describe: func(i models.Item) string { return i.Description },
		category: func(i models.Item) string { return i.Category },
		boolKey:  "favorite",
		helper:   search.NewFilterHelper(),
	}
}

func newCollectionItemsTab(opts lists.Options, collection models.Collection, items []models.Item) *controllerTab[lists.PositionedItem, lists.ItemSortKey, lists.ItemFilter] {
	t := &controllerTab[lists.PositionedItem, lists.ItemSortKey, lists.ItemFilter]{
		title:   collection.Name,
		c:       lists.NewCollectionItemController(opts),
		keys:    lists.CollectionItemSortKeys,
		columns: append([]column{{title: "#", width: 4}}, itemColumns...),
		row: func(p lists.PositionedItem) []string {
			position := "-"
			if p.Position >= 0 {
				position = strconv.Itoa(p.Position + 1)
			}
			return append([]string{position}, itemRow(p.Item)...)
		},
		name:     func(p lists.PositionedItem) string { return p.Name },
		id:       func(p lists.PositionedItem) string { return p.ID },
		describe: func(p lists.PositionedItem) string { return p.Description },
		category: func(p lists.PositionedItem) string { return p.Category },
		boolKey:  "favorite",
		helper:   search.NewFilterHelper(),
	}
	lists.ShowCollection(t.c, collection, items)
	return t
}

func newWishTab(opts lists.Options) *controllerTab[models.WishItem, lists.WishSortKey, lists.WishFilter] {
	return &controllerTab[models.WishItem, lists.WishSortKey, lists.WishFilter]{
		title:    "Wish list",
		c:        lists.NewWishController(opts),
		keys:     lists.WishSortKeys,
		columns:  wishColumns,
		row:      wishRow,
		name:     func(w models.WishItem) string { return w.Name },
		id:       func(w models.WishItem) string { return w.ID },
		describe: func(w models.WishItem) string { return strings.TrimSpace(w.Notes + "\n" + w.URL) },
		category: func(w models.WishItem) string { return w.Category },
		boolKey:  "purchased",
		helper:   search.NewFilterHelper(),
	}
}

// Columns and rows

var collectionColumns = []column{
	{title: "NAME"},
	{title: "CATEGORY", width: 16, category: true},
	{title: "ITEMS", width: 6},
	{title: "PUBLIC", width: 7},
	{title: "UPDATED", width: 11},
}

func collectionRow(c models.Collection) []string {
	return []string{c.Name, dash(c.Category), strconv.Itoa(len(c.ItemIDs)), yesNo(c.Public), date(c.UpdatedAt)}
}

var itemColumns = []column{
	{title: "NAME"},
	{title: "CATEGORY", width: 16, category: true},
	{title: "RATING", width: 7},
	{title: "FAV", width: 4},
	{title: "UPDATED", width: 11},
}

func itemRow(i models.Item) []string {
	fav := ""
	if i.Favorite {
		fav = "♥"
	}
	return []string{i.Name, dash(i.Category), strings.Repeat("★", i.Rating), fav, date(i.UpdatedAt)}
}

var wishColumns = []column{
	{title: "NAME"},
	{title: "PRIORITY", width: 9},
	{title: "PRICE", width: 10},
	{title: "CATEGORY", width: 16, category: true},
	{title: "GOT", width: 4},
}

func wishRow(w models.WishItem) []string {
	price := "-"
	if w.Price > 0 {
		price = strconv.FormatFloat(w.Price, 'f', 2, 64)
	}
	got := ""
	if w.Purchased {
		got = "✓"
	}
	return []string{w.Name, dash(string(w.Priority)), price, dash(w.Category), got}
}
