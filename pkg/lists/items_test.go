package lists

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/models"
)

func sampleItems() []models.Item {
	return []models.Item{
		{ID: "i1", Name: "Blue Train", Category: "vinyl", Rating: 5, Favorite: true, ImageURL: "https://img.example/blue.jpg", CollectionIDs: []string{"c-zeta"}, CreatedAt: day(1), UpdatedAt: day(4), AcquiredAt: day(1)},
		{ID: "i2", Name: "kind of blue", Category: "Vinyl", Rating: 4, CollectionIDs: []string{"c-zeta", "c-mid"}, CreatedAt: day(2), UpdatedAt: day(2), Tags: []string{"jazz", "modal"}},
		{ID: "i3", Name: "Dune", Category: "books", Rating: 4, Favorite: true, CreatedAt: day(3), UpdatedAt: day(3)},
		{ID: "i4", Name: "Atlas", Description: "road atlas, 1998 edition", CreatedAt: day(4), UpdatedAt: day(1)},
	}
}

func itemNames(records []models.Item) []string {
	out := make([]string, len(records))
	for i, item := range records {
		out[i] = item.Name
	}
	return out
}

func TestSortItemsKeys(t *testing.T) {
	source := sampleItems()

	tests := []struct {
		by       ItemSortKey
		order    listing.Order
		expected []string
	}{
		{ItemSortName, listing.Ascending, []string{"Atlas", "Blue Train", "Dune", "kind of blue"}},
		{ItemSortCreated, listing.Descending, []string{"Atlas", "Dune", "kind of blue", "Blue Train"}},
		{ItemSortUpdated, listing.Ascending, []string{"Atlas", "kind of blue", "Dune", "Blue Train"}},
		// Rating ties keep name ascending even when descending
		{ItemSortRating, listing.Descending, []string{"Blue Train", "Dune", "kind of blue", "Atlas"}},
		{ItemSortFavorite, listing.Descending, []string{"Blue Train", "Dune", "Atlas", "kind of blue"}},
		{ItemSortCollections, listing.Descending, []string{"kind of blue", "Blue Train", "Atlas", "Dune"}},
		// zero acquisition dates sort lowest
		{ItemSortAcquired, listing.Ascending, []string{"Atlas", "Dune", "kind of blue", "Blue Train"}},
		{ItemSortCategory, listing.Ascending, []string{"Atlas", "Dune", "Blue Train", "kind of blue"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.by)+"_"+string(tt.order), func(t *testing.T) {
			got := SortItems(source, tt.by, tt.order, listing.SortContext{})
			assert.Equal(t, tt.expected, itemNames(got))
		})
	}
}

func TestItemFilterTriState(t *testing.T) {
	source := sampleItems()

	tests := []struct {
		name     string
		key      string
		value    any
		expected []string
	}{
		{"favorite unset", "favorite", nil, []string{"Blue Train", "kind of blue", "Dune", "Atlas"}},
		{"favorite true", "favorite", true, []string{"Blue Train", "Dune"}},
		{"favorite false", "favorite", false, []string{"kind of blue", "Atlas"}},
		{"has image", "hasImage", "true", []string{"Blue Train"}},
		{"without image", "has-image", "false", []string{"kind of blue", "Dune", "Atlas"}},
		{"in collection", "inCollection", true, []string{"Blue Train", "kind of blue"}},
		{"loose", "inCollection", false, []string{"Dune", "Atlas"}},
		{"category", "category", "VINYL", []string{"Blue Train", "kind of blue"}},
		{"no category", "category", "none", []string{"Atlas"}},
		{"unparsable value matches nothing", "favorite", "sometimes", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterItems(source, ItemFilter{}.With(tt.key, tt.value))
			assert.Equal(t, tt.expected, itemNames(got))
		})
	}
}

func TestItemControllerSearchFields(t *testing.T) {
	c := NewItemController(Options{})
	c.SetSource(sampleItems())

	c.Search("modal")
	assert.Equal(t, []string{"kind of blue"}, itemNames(c.Result()), "tags are searchable")

	c.Search("1998")
	assert.Equal(t, []string{"Atlas"}, itemNames(c.Result()), "descriptions are searchable")

	c.Search("   ")
	assert.Len(t, c.Result(), 4)
}

func TestItemControllerPipeline(t *testing.T) {
	c := NewItemController(Options{})
	c.SetSource(sampleItems())
	assert.Equal(t, ItemSortCreated, c.State().SortBy)

	c.SetFilter("category", "vinyl")
	c.Sort(ItemSortName, listing.Ascending)
	assert.Equal(t, []string{"Blue Train", "kind of blue"}, itemNames(c.Result()))

	c.Search("blue")
	assert.Equal(t, []string{"Blue Train", "kind of blue"}, itemNames(c.Result()))

	c.SetFilter("favorite", true)
	assert.Equal(t, []string{"Blue Train"}, itemNames(c.Result()))

	c.Reset()
	assert.Equal(t, []string{"Atlas", "Dune", "kind of blue", "Blue Train"}, itemNames(c.Result()))
	assert.True(t, c.State().Filter.IsEmpty())
}
