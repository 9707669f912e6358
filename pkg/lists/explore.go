package lists

import (
	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// ExploreConfig returns the configuration of the Explore list: the
// collections list over the public catalogue, restricted to public
// collections by default
func ExploreConfig(opts Options) listing.Config[models.Collection, CollectionSortKey, CollectionFilter] {
	config := CollectionConfig(opts)
	config.Name = Explore
	config.DefaultSort, config.DefaultOrder = defaultSort(opts, Explore, CollectionSortKeys, CollectionSortUpdated, listing.Descending)
	config.DefaultFilter = CollectionFilter{}.With("public", true)
	config.Logger = logger(opts, Explore)
	return config
}

// NewExploreController creates the Explore list controller
func NewExploreController(opts Options) *CollectionController {
	return listing.NewController(ExploreConfig(opts))
}

// SortKeyNames returns the sort keys a list accepts, for flag help and
// completion. Unknown lists return nil.
func SortKeyNames(list string) []string {
	switch list {
	case Collections, Explore:
		return keyStrings(CollectionSortKeys)
	case Items:
		return keyStrings(ItemSortKeys)
	case CollectionItems:
		return keyStrings(CollectionItemSortKeys)
	case WishList:
		return keyStrings(WishSortKeys)
	default:
		return nil
	}
}

// FilterKeyNames returns the filter keys a list accepts
func FilterKeyNames(list string) []string {
	switch list {
	case Collections, Explore:
		return []string{"category", "hasItems", "public"}
	case Items, CollectionItems:
		return []string{"category", "favorite", "hasImage", "inCollection"}
	case WishList:
		return []string{"priority", "purchased", "category"}
	default:
		return nil
	}
}
