package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterWithoutCriteriaIsIdentity(t *testing.T) {
	entries := sampleEntries()

	assert.Equal(t, entries, Filter(entries))
	assert.Equal(t, entries, Filter(entries, nil, nil))
	assert.Empty(t, Filter[entry](nil))
}

func TestMatchBoolTriState(t *testing.T) {
	entries := []entry{
		{Name: "on", Flag: true},
		{Name: "off", Flag: false},
		{Name: "absent"},
	}
	flag := func(e entry) bool { return e.Flag }

	tests := []struct {
		name     string
		want     *bool
		expected []string
	}{
		{"unset keeps everything", nil, []string{"on", "off", "absent"}},
		{"true keeps truthy", Ptr(true), []string{"on"}},
		{"false keeps falsy and absent", Ptr(false), []string{"off", "absent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(entries, MatchBool(tt.want, flag))
			assert.Equal(t, tt.expected, names(got))
		})
	}
}

func TestMatchCategory(t *testing.T) {
	entries := []entry{
		{Name: "a", Category: "Vinyl"},
		{Name: "b", Category: ""},
		{Name: "c", Category: "none"},
		{Name: "d", Category: "books"},
	}
	category := func(e entry) string { return e.Category }

	assert.Equal(t, []string{"a"}, names(Filter(entries, MatchCategory(Ptr("vinyl"), category))))
	assert.Equal(t, []string{"b"}, names(Filter(entries, MatchCategory(Ptr("none"), category))),
		"none means the field is empty, not a category called none")
	assert.Len(t, Filter(entries, MatchCategory(nil, category)), 4)
}

func TestFilterComposesPredicates(t *testing.T) {
	entries := []entry{
		{Name: "a", Category: "vinyl", Flag: true},
		{Name: "b", Category: "vinyl", Flag: false},
		{Name: "c", Category: "books", Flag: true},
	}

	got := Filter(entries,
		MatchCategory(Ptr("vinyl"), func(e entry) string { return e.Category }),
		MatchBool(Ptr(true), func(e entry) bool { return e.Flag }),
	)
	assert.Equal(t, []string{"a"}, names(got))
}

func TestBoolValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  *bool
	}{
		{"nil clears", nil, nil},
		{"bool", true, Ptr(true)},
		{"false is meaningful", false, Ptr(false)},
		{"pointer", Ptr(false), Ptr(false)},
		{"nil pointer", (*bool)(nil), nil},
		{"string", "true", Ptr(true)},
		{"empty string clears", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoolValue(tt.value)
			assert.False(t, IsNoMatch(got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoolValueUnparsableMatchesNothing(t *testing.T) {
	entries := sampleEntries()

	for _, value := range []any{"maybe", "tru", 42} {
		got := BoolValue(value)
		require.True(t, IsNoMatch(got), "%v", value)
		assert.Empty(t, Filter(entries, MatchBool(got, func(e entry) bool { return e.Flag })))
	}

	// the criterion survives being passed back in
	assert.True(t, IsNoMatch(BoolValue(BoolValue("maybe"))))
	assert.False(t, IsNoMatch(Ptr(false)))
}

func TestStringValue(t *testing.T) {
	assert.Equal(t, Ptr("vinyl"), StringValue(" vinyl "))
	assert.Nil(t, StringValue(""))
	assert.Nil(t, StringValue((*string)(nil)))
	assert.Equal(t, Ptr("none"), StringValue(Ptr("none")))
	assert.Equal(t, Ptr("3"), StringValue(3))
}
