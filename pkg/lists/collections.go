package lists

import (
	"time"

	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/search"
)

// CollectionSortKey names a collection ordering
type CollectionSortKey string

const (
	CollectionSortName     CollectionSortKey = "name"
	CollectionSortItems    CollectionSortKey = "items"
	CollectionSortCategory CollectionSortKey = "category"
	CollectionSortPublic   CollectionSortKey = "public"
	CollectionSortCreated  CollectionSortKey = "created"
	CollectionSortUpdated  CollectionSortKey = "updated"
)

// CollectionSortKeys lists the collection sort keys in menu order
var CollectionSortKeys = []CollectionSortKey{
	CollectionSortName,
	CollectionSortItems,
	CollectionSortCategory,
	CollectionSortPublic,
	CollectionSortCreated,
	CollectionSortUpdated,
}

// ParseCollectionSortKey converts user input to a collection sort key
func ParseCollectionSortKey(s string) (CollectionSortKey, bool) {
	return parseKey(s, CollectionSortKeys)
}

// CollectionFilter holds the collection criteria; nil fields are unset
type CollectionFilter struct {
	Category *string
	HasItems *bool
	Public   *bool
}

// With returns a copy with one criterion updated. Keys: category, hasItems, public.
func (f CollectionFilter) With(key string, value any) CollectionFilter {
	switch FilterKey(key) {
	case "category":
		f.Category = listing.StringValue(value)
	case "hasitems":
		f.HasItems = listing.BoolValue(value)
	case "public":
		f.Public = listing.BoolValue(value)
	}
	return f
}

// IsEmpty reports whether no criterion is set
func (f CollectionFilter) IsEmpty() bool {
	return f.Category == nil && f.HasItems == nil && f.Public == nil
}

// FilterCollections keeps the collections matching every set criterion
func FilterCollections(records []models.Collection, f CollectionFilter) []models.Collection {
	return listing.Filter(records,
		listing.MatchCategory(f.Category, func(c models.Collection) string { return c.Category }),
		listing.MatchBool(f.HasItems, models.Collection.HasItems),
		listing.MatchBool(f.Public, func(c models.Collection) bool { return c.Public }),
	)
}

func collectionName(c models.Collection) string { return c.Name }

// SortCollections orders collections by key. Unknown keys sort by name.
func SortCollections(records []models.Collection, by CollectionSortKey, order listing.Order, _ listing.SortContext) []models.Collection {
	var compare listing.Comparator[models.Collection]

	switch by {
	case CollectionSortItems:
		compare = listing.ByCount(func(c models.Collection) []string { return c.ItemIDs })
	case CollectionSortCategory:
		compare = listing.ByText(func(c models.Collection) string { return c.Category })
	case CollectionSortPublic:
		compare = listing.ByBool(func(c models.Collection) bool { return c.Public })
	case CollectionSortCreated:
		compare = listing.ByTime(func(c models.Collection) time.Time { return c.CreatedAt })
	case CollectionSortUpdated:
		compare = listing.ByTime(func(c models.Collection) time.Time { return c.UpdatedAt })
	default:
		return listing.Sort(records, listing.ByText(collectionName), nil, order)
	}

	return listing.Sort(records, compare, collectionName, order)
}

// CollectionFields are the searchable collection fields
var CollectionFields = []search.Field[models.Collection]{
	{Name: "name", Boost: 20, Value: collectionName},
	{Name: "description", Value: func(c models.Collection) string { return c.Description }},
	{Name: "category", Boost: 10, Value: func(c models.Collection) string { return c.Category }},
	{Name: "tags", Boost: 5, Value: func(c models.Collection) string { return search.Join(c.Tags) }},
}

// CollectionController drives a list of collections
type CollectionController = listing.Controller[models.Collection, CollectionSortKey, CollectionFilter]

// CollectionConfig returns the controller configuration of the collections list
func CollectionConfig(opts Options) listing.Config[models.Collection, CollectionSortKey, CollectionFilter] {
	by, order := defaultSort(opts, Collections, CollectionSortKeys, CollectionSortUpdated, listing.Descending)

	return listing.Config[models.Collection, CollectionSortKey, CollectionFilter]{
		Name:         Collections,
		DefaultSort:  by,
		DefaultOrder: order,
		Fields:       CollectionFields,
		Sort:         SortCollections,
		Filter:       FilterCollections,
		Logger:       logger(opts, Collections),
	}
}

// NewCollectionController creates the collections list controller
func NewCollectionController(opts Options) *CollectionController {
	return listing.NewController(CollectionConfig(opts))
}
