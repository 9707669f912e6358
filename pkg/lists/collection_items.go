package lists

import (
	"slices"

	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// PositionedItem is an item shown inside a collection, decorated with its
// position in the collection's owner order. Position is -1 for items that
// claim membership but are missing from the collection's ItemIDs.
type PositionedItem struct {
	models.Item
	Position int
}

func positionedItem(p PositionedItem) models.Item { return p.Item }

// CollectionItemSortKeys are the item keys plus the owner order
var CollectionItemSortKeys = append([]ItemSortKey{ItemSortCustom}, ItemSortKeys...)

// ParseCollectionItemSortKey converts user input to a collection item sort key
func ParseCollectionItemSortKey(s string) (ItemSortKey, bool) {
	return parseKey(s, CollectionItemSortKeys)
}

// PositionItems selects the items belonging to collection and records their
// owner position. An item belongs when the collection lists it or the item
// lists the collection.
func PositionItems(collection models.Collection, items []models.Item) []PositionedItem {
	positions := listing.Positions(collection.ItemIDs)

	out := make([]PositionedItem, 0, len(collection.ItemIDs))
	for _, item := range items {
		pos, listed := positions[item.ID]
		if !listed && !slices.Contains(item.CollectionIDs, collection.ID) {
			continue
		}
		if !listed {
			pos = -1
		}
		out = append(out, PositionedItem{Item: item, Position: pos})
	}
	return out
}

// FilterCollectionItems keeps the items matching every set criterion
func FilterCollectionItems(records []PositionedItem, f ItemFilter) []PositionedItem {
	return listing.Filter(records, itemPredicates(f, positionedItem)...)
}

// SortCollectionItems orders a collection's items. The custom key follows
// the position map in ctx; ids missing from it count as position 0.
func SortCollectionItems(records []PositionedItem, by ItemSortKey, order listing.Order, ctx listing.SortContext) []PositionedItem {
	if by == ItemSortCustom {
		byPosition := listing.ByPosition(func(p PositionedItem) string { return p.ID }, ctx.Positions)
		return listing.Sort(records, byPosition, func(p PositionedItem) string { return p.Name }, order)
	}
	return sortItemRecords(records, by, order, positionedItem)
}

// CollectionItemController drives the items of one collection
type CollectionItemController = listing.Controller[PositionedItem, ItemSortKey, ItemFilter]

// CollectionItemConfig returns the controller configuration of the collection items list
func CollectionItemConfig(opts Options) listing.Config[PositionedItem, ItemSortKey, ItemFilter] {
	by, order := defaultSort(opts, CollectionItems, CollectionItemSortKeys, ItemSortCustom, listing.Ascending)

	return listing.Config[PositionedItem, ItemSortKey, ItemFilter]{
		Name:         CollectionItems,
		DefaultSort:  by,
		DefaultOrder: order,
		Fields:       itemFields(positionedItem),
		Sort:         SortCollectionItems,
		Filter:       FilterCollectionItems,
		Logger:       logger(opts, CollectionItems),
	}
}

// NewCollectionItemController creates the collection items list controller
func NewCollectionItemController(opts Options) *CollectionItemController {
	return listing.NewController(CollectionItemConfig(opts))
}

// ShowCollection points c at one collection: the owner order becomes the
// position map and the collection's items become the source
func ShowCollection(c *CollectionItemController, collection models.Collection, items []models.Item) {
	c.SetPositions(collection.ItemIDs)
	c.SetSource(PositionItems(collection, items))
}
