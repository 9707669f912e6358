package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterHelperSetFilter(t *testing.T) {
	fh := NewFilterHelper()

	tests := []struct {
		name     string
		query    string
		key      string
		value    string
		expected string
	}{
		{"add to empty", "", "category", "vinyl", "category:vinyl"},
		{"add after text", "blue note", "category", "vinyl", "blue note category:vinyl"},
		{"replace existing", "blue category:books note", "category", "vinyl", "blue note category:vinyl"},
		{"remove with empty value", "blue category:books", "category", "", "blue"},
		{"quote values with spaces", "", "category", "board games", `category:"board games"`},
		{"replace quoted", `category:"board games" x`, "category", "none", "x category:none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fh.SetFilter(tt.query, tt.key, tt.value))
		})
	}
}

func TestFilterHelperCycleFilter(t *testing.T) {
	fh := NewFilterHelper()
	values := []string{"", "vinyl", "books", "none"}

	query := "jazz"
	var seen []string
	for i := 0; i < len(values); i++ {
		query = fh.CycleFilter(query, "category", values)
		seen = append(seen, fh.ExtractFilter(query, "category"))
	}

	assert.Equal(t, []string{"vinyl", "books", "none", ""}, seen)
	assert.Equal(t, "jazz", query, "cycling back to all removes the filter")

	t.Run("unknown value restarts", func(t *testing.T) {
		assert.Equal(t, "", fh.ExtractFilter(fh.CycleFilter("category:comics", "category", values), "category"))
	})
}

func TestFilterHelperToggleBool(t *testing.T) {
	fh := NewFilterHelper()

	q := fh.ToggleBoolFilter("", "public")
	assert.Equal(t, "public:true", q)
	q = fh.ToggleBoolFilter(q, "public")
	assert.Equal(t, "public:false", q)
	q = fh.ToggleBoolFilter(q, "public")
	assert.Equal(t, "", q)
}

func TestFilterHelperCurrentFilters(t *testing.T) {
	fh := NewFilterHelper()
	assert.Equal(t, []string{"category: vinyl", "public: true"}, fh.CurrentFilters("x category:vinyl public:true"))
	assert.Empty(t, fh.CurrentFilters("just text"))
}
