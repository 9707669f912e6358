package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/models"
)

var day = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleCollections() []models.Collection {
	return []models.Collection{
		{ID: "c1", Name: "Jazz Records", Category: "vinyl", Public: true, ItemIDs: []string{"i2", "i1"}, UpdatedAt: day},
		{ID: "c2", Name: "Board Games", Category: "games", Description: "Everything on the shelf", UpdatedAt: day.Add(time.Hour)},
		{ID: "c3", Name: "Postcards", UpdatedAt: day.Add(2 * time.Hour)},
	}
}

func sampleItems() []models.Item {
	return []models.Item{
		{ID: "i1", Name: "Kind of Blue", Category: "vinyl", Rating: 5, Favorite: true, CollectionIDs: []string{"c1"}, CreatedAt: day},
		{ID: "i2", Name: "A Love Supreme", Category: "vinyl", Rating: 4, CollectionIDs: []string{"c1"}, CreatedAt: day.Add(time.Hour)},
		{ID: "i3", Name: "Catan", Category: "games", Rating: 3, CreatedAt: day.Add(2 * time.Hour)},
	}
}

func names(tab listTab) []string {
	out := make([]string, tab.Len())
	for i := range out {
		out[i] = tab.Name(i)
	}
	return out
}

func TestSetQueryAppliesFiltersAndSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query keeps everything", query: "", want: []string{"Postcards", "Board Games", "Jazz Records"}},
		{name: "category filter", query: "category:vinyl", want: []string{"Jazz Records"}},
		{name: "bool filter", query: "public:false", want: []string{"Postcards", "Board Games"}},
		{name: "normalized key", query: "has_items:true", want: []string{"Jazz Records"}},
		{name: "free text", query: "board", want: []string{"Board Games"}},
		{name: "filter and text", query: "public:false post", want: []string{"Postcards"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := newCollectionsTab(lists.Options{})
			tab.setSource(sampleCollections())

			tab.SetQuery(tt.query)

			assert.Equal(t, tt.want, names(tab))
			assert.Equal(t, tt.query, tab.Query())
		})
	}
}

func TestSetQueryClearsRemovedFilters(t *testing.T) {
	tab := newCollectionsTab(lists.Options{})
	tab.setSource(sampleCollections())

	tab.SetQuery("category:games")
	require.Equal(t, 1, tab.Len())

	tab.SetQuery("")
	assert.Equal(t, 3, tab.Len())
}

func TestNextSort(t *testing.T) {
	tab := newCollectionsTab(lists.Options{})
	tab.setSource(sampleCollections())
	assert.Equal(t, "updated ↓", tab.SortLabel())

	// wraps from the last key to the first
	tab.NextSort(false)
	assert.Equal(t, "name ↑", tab.SortLabel())
	assert.Equal(t, []string{"Board Games", "Jazz Records", "Postcards"}, names(tab))

	tab.NextSort(true)
	assert.Equal(t, "name ↓", tab.SortLabel())
	assert.Equal(t, []string{"Postcards", "Jazz Records", "Board Games"}, names(tab))
}

func TestCycleCategory(t *testing.T) {
	tab := newCollectionsTab(lists.Options{})
	tab.setSource(sampleCollections())

	var seen []string
	for range 4 {
		tab.CycleCategory()
		seen = append(seen, tab.Query())
	}

	assert.Equal(t, []string{"category:games", "category:vinyl", "category:none", ""}, seen)
}

func TestToggleBool(t *testing.T) {
	tab := newItemsTab(lists.Options{}, "Items")
	tab.setSource(sampleItems())

	tab.ToggleBool()
	assert.Equal(t, "favorite:true", tab.Query())
	assert.Equal(t, []string{"Kind of Blue"}, names(tab))

	tab.ToggleBool()
	assert.Equal(t, "favorite:false", tab.Query())
	assert.Len(t, names(tab), 2)

	tab.ToggleBool()
	assert.Empty(t, tab.Query())
	assert.Equal(t, 3, tab.Len())
}

func TestResetRestoresDefaultQuery(t *testing.T) {
	tab := newExploreTab(lists.Options{})
	tab.SetQuery(tab.defaultQuery)
	tab.setSource(sampleCollections())
	require.Equal(t, []string{"Jazz Records"}, names(tab))

	tab.SetQuery("games")
	tab.NextSort(false)
	tab.SetCursor(0)

	tab.Reset()

	assert.Equal(t, "public:true", tab.Query())
	assert.Equal(t, "updated ↓", tab.SortLabel())
	assert.Equal(t, []string{"Jazz Records"}, names(tab))
}

func TestCursorClampedWhenResultShrinks(t *testing.T) {
	tab := newCollectionsTab(lists.Options{})
	tab.setSource(sampleCollections())
	tab.SetCursor(2)
	tab.SetOffset(2)

	tab.SetQuery("category:vinyl")

	assert.Equal(t, 0, tab.Cursor())
	assert.Equal(t, 0, tab.Offset())
}

func TestCollectionItemsTabUsesOwnerOrder(t *testing.T) {
	collection := sampleCollections()[0]
	tab := newCollectionItemsTab(lists.Options{}, collection, sampleItems())

	assert.Equal(t, "Jazz Records", tab.Title())
	assert.Equal(t, []string{"A Love Supreme", "Kind of Blue"}, names(tab))
	assert.Equal(t, "1", tab.Row(0)[0])
	assert.Equal(t, "custom ↑", tab.SortLabel())
}

func TestRowsAndOutOfRange(t *testing.T) {
	tab := newWishTab(lists.Options{})
	tab.setSource([]models.WishItem{
		{ID: "w1", Name: "Turntable", Priority: models.PriorityHigh, Price: 249.5, Notes: "Belt drive", Purchased: true},
	})

	assert.Equal(t, []string{"Turntable", "high", "249.50", "-", "✓"}, tab.Row(0))
	assert.Equal(t, "Belt drive", tab.Preview(0))
	assert.Nil(t, tab.Row(5))
	assert.Empty(t, tab.Name(-1))
	assert.Empty(t, tab.Preview(3))
}

func TestSetQueryPartialValueReplacesFilter(t *testing.T) {
	tab := newWishTab(lists.Options{})
	tab.setSource([]models.WishItem{
		{ID: "w1", Name: "Turntable", Priority: models.PriorityHigh},
		{ID: "w2", Name: "Lamp", Priority: models.PriorityLow, Purchased: true},
	})

	tab.SetQuery("priority:high")
	require.Equal(t, []string{"Turntable"}, names(tab))

	// backspacing leaves a value that names no priority
	tab.SetQuery("priority:hig")
	assert.Zero(t, tab.Len())
	assert.Equal(t, []string{"priority: hig"}, tab.Filters())

	tab.SetQuery("purchased:tru")
	assert.Zero(t, tab.Len())

	tab.SetQuery("purchased:true")
	assert.Equal(t, []string{"Lamp"}, names(tab))
}
