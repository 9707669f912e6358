package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/stash-cli/pkg/search"
)

type entryKey string

const (
	keyName    entryKey = "name"
	keyCount   entryKey = "count"
	keyUpdated entryKey = "updated"
	keyCustom  entryKey = "custom"
)

type entryFilter struct {
	Category *string
	Flag     *bool
}

func (f entryFilter) With(key string, value any) entryFilter {
	switch key {
	case "category":
		f.Category = StringValue(value)
	case "flag":
		f.Flag = BoolValue(value)
	}
	return f
}

func entryConfig() Config[entry, entryKey, entryFilter] {
	return Config[entry, entryKey, entryFilter]{
		Name:         "entries",
		DefaultSort:  keyName,
		DefaultOrder: Ascending,
		Fields: []search.Field[entry]{
			{Name: "name", Value: entryName},
		},
		Sort: func(records []entry, by entryKey, order Order, ctx SortContext) []entry {
			switch by {
			case keyCount:
				return Sort(records, ByCount(func(e entry) []string { return e.Count }), entryName, order)
			case keyUpdated:
				return Sort(records, ByTime(func(e entry) time.Time { return e.Updated }), entryName, order)
			case keyCustom:
				return Sort(records, ByPosition(func(e entry) string { return e.ID }, ctx.Positions), entryName, order)
			default:
				return Sort(records, ByText(entryName), nil, order)
			}
		},
		Filter: func(records []entry, f entryFilter) []entry {
			return Filter(records,
				MatchCategory(f.Category, func(e entry) string { return e.Category }),
				MatchBool(f.Flag, func(e entry) bool { return e.Flag }),
			)
		},
	}
}

func newEntryController(t *testing.T) *Controller[entry, entryKey, entryFilter] {
	t.Helper()
	c := NewController(entryConfig())
	c.SetSource(sampleEntries())
	return c
}

func TestControllerDefaultState(t *testing.T) {
	c := NewController(entryConfig())

	state := c.State()
	assert.Empty(t, state.Result)
	assert.NotNil(t, state.Result)
	assert.Equal(t, keyName, state.SortBy)
	assert.Equal(t, Ascending, state.SortOrder)
	assert.Equal(t, "", state.SearchValue)
	assert.Equal(t, entryFilter{}, state.Filter)
}

func TestControllerSetSourceRunsPipeline(t *testing.T) {
	c := newEntryController(t)
	assert.Equal(t, []string{"alpha", "Mid", "Zeta"}, names(c.Result()))

	c.Search("zet")
	assert.Equal(t, []string{"Zeta"}, names(c.Result()))

	// new records must be searchable straight away
	c.SetSource(append(sampleEntries(), entry{ID: "z2", Name: "Zetland"}))
	assert.Equal(t, []string{"Zeta", "Zetland"}, names(c.Result()))
}

func TestControllerEmptySource(t *testing.T) {
	c := NewController(entryConfig())
	c.SetSource(nil)
	c.Search("anything")
	c.SetFilter("flag", true)
	c.Sort(keyCount, Descending)

	assert.NotNil(t, c.Result())
	assert.Empty(t, c.Result())
}

func TestControllerSortReordersCurrentResultOnly(t *testing.T) {
	c := newEntryController(t)
	c.SetFilter("flag", false)
	require.Equal(t, []string{"alpha", "Mid"}, names(c.Result()))

	c.Sort(keyCount, Descending)
	assert.Equal(t, []string{"Mid", "alpha"}, names(c.Result()))
	assert.Equal(t, keyCount, c.State().SortBy)
	assert.Equal(t, Descending, c.State().SortOrder)
}

func TestControllerFilterRestartsFromSource(t *testing.T) {
	c := newEntryController(t)

	c.SetFilter("flag", true)
	assert.Equal(t, []string{"Zeta"}, names(c.Result()))

	c.SetFilter("flag", false)
	assert.Equal(t, []string{"alpha", "Mid"}, names(c.Result()), "records excluded earlier come back")

	c.SetFilter("flag", nil)
	assert.Equal(t, []string{"alpha", "Mid", "Zeta"}, names(c.Result()))
}

func TestControllerCategoryNoneThenCleared(t *testing.T) {
	c := newEntryController(t)
	untouched := c.State()

	c.SetFilter("category", "none")
	assert.Len(t, c.Result(), 3, "no entry has a category")

	c.SetFilter("category", nil)
	assert.Equal(t, untouched, c.State())
	assert.Nil(t, c.State().Filter.Category)
}

func TestControllerSearchKeepsSortAndFilter(t *testing.T) {
	c := newEntryController(t)
	c.Sort(keyUpdated, Descending)
	c.Search("a")

	// every sample name contains an "a" except Mid
	assert.Equal(t, []string{"Zeta", "alpha"}, names(c.Result()))

	c.Search("")
	assert.Equal(t, []string{"Zeta", "Mid", "alpha"}, names(c.Result()))
}

func TestControllerResetIsIdempotent(t *testing.T) {
	c := newEntryController(t)
	c.Search("zet")
	c.SetFilter("flag", true)
	c.Sort(keyCount, Descending)

	c.Reset()
	once := c.State()
	c.Reset()
	twice := c.State()

	assert.Equal(t, once, twice)
	assert.Equal(t, keyName, once.SortBy)
	assert.Equal(t, "", once.SearchValue)
	assert.Equal(t, []string{"alpha", "Mid", "Zeta"}, names(once.Result))
}

func TestControllerPositions(t *testing.T) {
	c := newEntryController(t)
	c.Sort(keyCustom, Ascending)

	c.SetPositions([]string{"x", "z", "m"})
	assert.Equal(t, []string{"alpha", "Zeta", "Mid"}, names(c.Result()))

	c.SetPositions([]string{"x", "m", "z"})
	assert.Equal(t, []string{"alpha", "Mid", "Zeta"}, names(c.Result()))
}

func TestControllerStateIsASnapshot(t *testing.T) {
	c := newEntryController(t)
	state := c.State()
	state.Result[0] = entry{Name: "changed"}

	assert.Equal(t, "alpha", c.Result()[0].Name)
}

func TestControllerUnknownFilterKeyIsIgnored(t *testing.T) {
	c := newEntryController(t)
	c.SetFilter("flag", true)
	before := c.State()

	c.SetFilter("colour", "red")

	assert.Equal(t, before.Filter, c.State().Filter)
	assert.Equal(t, names(before.Result), names(c.Result()))
}

func TestControllerUnparsableValueReplacesCriterion(t *testing.T) {
	c := newEntryController(t)

	c.SetFilter("flag", "true")
	require.Len(t, c.Result(), 1)

	c.SetFilter("flag", "tru")
	assert.True(t, IsNoMatch(c.State().Filter.Flag))
	assert.Empty(t, c.Result())

	c.SetFilter("flag", "")
	assert.Nil(t, c.State().Filter.Flag)
	assert.Len(t, c.Result(), 3)

	c.SetFilter("category", "vinyl")
	c.SetFilter("category", 7)
	assert.Equal(t, Ptr("7"), c.State().Filter.Category)
	assert.Empty(t, c.Result())
}

func TestControllerSortDirectionComesFromCaller(t *testing.T) {
	c := newEntryController(t)

	state := c.State()
	order := NextOrder(state.SortBy, state.SortOrder, keyName)
	c.Sort(keyName, order)
	assert.Equal(t, Descending, c.State().SortOrder)

	state = c.State()
	c.Sort(keyName, NextOrder(state.SortBy, state.SortOrder, keyName))
	assert.Equal(t, Ascending, c.State().SortOrder)
	assert.Equal(t, []string{"alpha", "Mid", "Zeta"}, names(c.Result()))
}
