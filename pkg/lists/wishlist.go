package lists

import (
	"strings"
	"time"

	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/search"
)

// WishSortKey names a wish list ordering
type WishSortKey string

const (
	WishSortName     WishSortKey = "name"
	WishSortPriority WishSortKey = "priority"
	WishSortPrice    WishSortKey = "price"
	WishSortCategory WishSortKey = "category"
	WishSortCreated  WishSortKey = "created"
	WishSortUpdated  WishSortKey = "updated"
)

// WishSortKeys lists the wish list sort keys in menu order
var WishSortKeys = []WishSortKey{
	WishSortName,
	WishSortPriority,
	WishSortPrice,
	WishSortCategory,
	WishSortCreated,
	WishSortUpdated,
}

// ParseWishSortKey converts user input to a wish list sort key
func ParseWishSortKey(s string) (WishSortKey, bool) {
	return parseKey(s, WishSortKeys)
}

// WishFilter holds the wish list criteria; nil fields are unset.
// Priority accepts low, medium, high or "none" for entries without one.
type WishFilter struct {
	Priority  *string
	Purchased *bool
	Category  *string
}

// With returns a copy with one criterion updated. Keys: priority, purchased, category.
func (f WishFilter) With(key string, value any) WishFilter {
	switch FilterKey(key) {
	case "priority":
		f.Priority = priorityValue(value)
	case "purchased":
		f.Purchased = listing.BoolValue(value)
	case "category":
		f.Category = listing.StringValue(value)
	}
	return f
}

// priorityValue keeps known priorities in their canonical spelling. Any
// other value is kept as given and matches no entry.
func priorityValue(value any) *string {
	v := listing.StringValue(value)
	if v == nil || strings.EqualFold(*v, listing.NoneValue) {
		return v
	}
	if p, ok := models.ParsePriority(*v); ok {
		return listing.Ptr(string(p))
	}
	return v
}

// IsEmpty reports whether no criterion is set
func (f WishFilter) IsEmpty() bool {
	return f.Priority == nil && f.Purchased == nil && f.Category == nil
}

// FilterWishItems keeps the wish list entries matching every set criterion
func FilterWishItems(records []models.WishItem, f WishFilter) []models.WishItem {
	return listing.Filter(records,
		listing.MatchCategory(f.Priority, func(w models.WishItem) string { return string(w.Priority) }),
		listing.MatchBool(f.Purchased, func(w models.WishItem) bool { return w.Purchased }),
		listing.MatchCategory(f.Category, func(w models.WishItem) string { return w.Category }),
	)
}

func wishName(w models.WishItem) string { return w.Name }

// SortWishItems orders wish list entries by key. Entries without a priority
// rank below low. Unknown keys sort by name.
func SortWishItems(records []models.WishItem, by WishSortKey, order listing.Order, _ listing.SortContext) []models.WishItem {
	var compare listing.Comparator[models.WishItem]

	switch by {
	case WishSortPriority:
		compare = listing.ByNumber(func(w models.WishItem) int { return w.Priority.Rank() })
	case WishSortPrice:
		compare = listing.ByNumber(func(w models.WishItem) float64 { return w.Price })
	case WishSortCategory:
		compare = listing.ByText(func(w models.WishItem) string { return w.Category })
	case WishSortCreated:
		compare = listing.ByTime(func(w models.WishItem) time.Time { return w.CreatedAt })
	case WishSortUpdated:
		compare = listing.ByTime(func(w models.WishItem) time.Time { return w.UpdatedAt })
	default:
		return listing.Sort(records, listing.ByText(wishName), nil, order)
	}

	return listing.Sort(records, compare, wishName, order)
}

// WishFields are the searchable wish list fields
var WishFields = []search.Field[models.WishItem]{
	{Name: "name", Boost: 20, Value: wishName},
	{Name: "notes", Value: func(w models.WishItem) string { return w.Notes }},
	{Name: "category", Boost: 10, Value: func(w models.WishItem) string { return w.Category }},
	{Name: "url", Value: func(w models.WishItem) string { return w.URL }},
}

// WishController drives the wish list
type WishController = listing.Controller[models.WishItem, WishSortKey, WishFilter]

// WishConfig returns the controller configuration of the wish list
func WishConfig(opts Options) listing.Config[models.WishItem, WishSortKey, WishFilter] {
	by, order := defaultSort(opts, WishList, WishSortKeys, WishSortPriority, listing.Descending)

	return listing.Config[models.WishItem, WishSortKey, WishFilter]{
		Name:         WishList,
		DefaultSort:  by,
		DefaultOrder: order,
		Fields:       WishFields,
		Sort:         SortWishItems,
		Filter:       FilterWishItems,
		Logger:       logger(opts, WishList),
	}
}

// NewWishController creates the wish list controller
func NewWishController(opts Options) *WishController {
	return listing.NewController(WishConfig(opts))
}
