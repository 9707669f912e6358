package lists

import (
	"time"

	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/search"
)

// ItemSortKey names an item ordering
type ItemSortKey string

const (
	ItemSortName        ItemSortKey = "name"
	ItemSortCategory    ItemSortKey = "category"
	ItemSortRating      ItemSortKey = "rating"
	ItemSortFavorite    ItemSortKey = "favorite"
	ItemSortCollections ItemSortKey = "collections"
	ItemSortCreated     ItemSortKey = "created"
	ItemSortUpdated     ItemSortKey = "updated"
	ItemSortAcquired    ItemSortKey = "acquired"
	// ItemSortCustom is the owner order of a collection. It only has
	// meaning in the collection items list.
	ItemSortCustom ItemSortKey = "custom"
)

// ItemSortKeys lists the item sort keys in menu order
var ItemSortKeys = []ItemSortKey{
	ItemSortName,
	ItemSortCategory,
	ItemSortRating,
	ItemSortFavorite,
	ItemSortCollections,
	ItemSortCreated,
	ItemSortUpdated,
	ItemSortAcquired,
}

// ParseItemSortKey converts user input to an item sort key
func ParseItemSortKey(s string) (ItemSortKey, bool) {
	return parseKey(s, ItemSortKeys)
}

// ItemFilter holds the item criteria; nil fields are unset
type ItemFilter struct {
	Category     *string
	Favorite     *bool
	HasImage     *bool
	InCollection *bool
}

// With returns a copy with one criterion updated. Keys: category, favorite,
// hasImage, inCollection.
func (f ItemFilter) With(key string, value any) ItemFilter {
	switch FilterKey(key) {
	case "category":
		f.Category = listing.StringValue(value)
	case "favorite", "favourite":
		f.Favorite = listing.BoolValue(value)
	case "hasimage":
		f.HasImage = listing.BoolValue(value)
	case "incollection":
		f.InCollection = listing.BoolValue(value)
	}
	return f
}

// IsEmpty reports whether no criterion is set
func (f ItemFilter) IsEmpty() bool {
	return f.Category == nil && f.Favorite == nil && f.HasImage == nil && f.InCollection == nil
}

// itemPredicates builds the item criteria for any record that wraps an item
func itemPredicates[T any](f ItemFilter, item func(T) models.Item) []listing.Predicate[T] {
	return []listing.Predicate[T]{
		listing.MatchCategory(f.Category, func(r T) string { return item(r).Category }),
		listing.MatchBool(f.Favorite, func(r T) bool { return item(r).Favorite }),
		listing.MatchBool(f.HasImage, func(r T) bool { return item(r).HasImage() }),
		listing.MatchBool(f.InCollection, func(r T) bool { return item(r).InCollection() }),
	}
}

func itself(i models.Item) models.Item { return i }

// FilterItems keeps the items matching every set criterion
func FilterItems(records []models.Item, f ItemFilter) []models.Item {
	return listing.Filter(records, itemPredicates(f, itself)...)
}

// itemComparator returns the comparator for an item key, or nil for name
// and unknown keys
func itemComparator[T any](by ItemSortKey, item func(T) models.Item) listing.Comparator[T] {
	switch by {
	case ItemSortCategory:
		return listing.ByText(func(r T) string { return item(r).Category })
	case ItemSortRating:
		return listing.ByNumber(func(r T) int { return item(r).Rating })
	case ItemSortFavorite:
		return listing.ByBool(func(r T) bool { return item(r).Favorite })
	case ItemSortCollections:
		return listing.ByCount(func(r T) []string { return item(r).CollectionIDs })
	case ItemSortCreated:
		return listing.ByTime(func(r T) time.Time { return item(r).CreatedAt })
	case ItemSortUpdated:
		return listing.ByTime(func(r T) time.Time { return item(r).UpdatedAt })
	case ItemSortAcquired:
		return listing.ByTime(func(r T) time.Time { return item(r).AcquiredAt })
	default:
		return nil
	}
}

func sortItemRecords[T any](records []T, by ItemSortKey, order listing.Order, item func(T) models.Item) []T {
	name := func(r T) string { return item(r).Name }
	if compare := itemComparator(by, item); compare != nil {
		return listing.Sort(records, compare, name, order)
	}
	return listing.Sort(records, listing.ByText(name), nil, order)
}

// SortItems orders items by key. Unknown keys sort by name.
func SortItems(records []models.Item, by ItemSortKey, order listing.Order, _ listing.SortContext) []models.Item {
	return sortItemRecords(records, by, order, itself)
}

func itemFields[T any](item func(T) models.Item) []search.Field[T] {
	return []search.Field[T]{
		{Name: "name", Boost: 20, Value: func(r T) string { return item(r).Name }},
		{Name: "description", Value: func(r T) string { return item(r).Description }},
		{Name: "category", Boost: 10, Value: func(r T) string { return item(r).Category }},
		{Name: "tags", Boost: 5, Value: func(r T) string { return search.Join(item(r).Tags) }},
	}
}

// ItemFields are the searchable item fields
var ItemFields = itemFields(itself)

// ItemController drives a list of items
type ItemController = listing.Controller[models.Item, ItemSortKey, ItemFilter]

// ItemConfig returns the controller configuration of the items list
func ItemConfig(opts Options) listing.Config[models.Item, ItemSortKey, ItemFilter] {
	by, order := defaultSort(opts, Items, ItemSortKeys, ItemSortCreated, listing.Descending)

	return listing.Config[models.Item, ItemSortKey, ItemFilter]{
		Name:         Items,
		DefaultSort:  by,
		DefaultOrder: order,
		Fields:       ItemFields,
		Sort:         SortItems,
		Filter:       FilterItems,
		Logger:       logger(opts, Items),
	}
}

// NewItemController creates the items list controller
func NewItemController(opts Options) *ItemController {
	return listing.NewController(ItemConfig(opts))
}
