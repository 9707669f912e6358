package models

import (
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Vinyl", "vinyl"},
		{"trim spaces", "  vinyl  ", "vinyl"},
		{"replace spaces", "board games", "board-games"},
		{"collapse spaces", "board   games", "board-games"},
		{"remove invalid chars", "comics!", "comics"},
		{"keep slashes", "cards/pokemon", "cards/pokemon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCategory(tt.input))
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid simple", "vinyl", nil},
		{"valid with spaces", "board games", nil},
		{"valid hierarchy", "cards/pokemon", nil},
		{"empty", "", ErrEmptyCategory},
		{"blank", "   ", ErrEmptyCategory},
		{"too long", "this-is-a-very-long-category-name-that-exceeds-the-limit", ErrCategoryTooLong},
		{"invalid chars", "vinyl@home", ErrInvalidCategoryCharacter},
		{"reserved sentinel", "None", ErrReservedCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategory(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCategoryColor(t *testing.T) {
	assert.Equal(t, "#custom", CategoryColor("vinyl", "#custom"))

	first := CategoryColor("vinyl", "")
	assert.Equal(t, first, CategoryColor("Vinyl", ""), "color should not depend on case")
	assert.Contains(t, DefaultColorPalette, first)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 0, Priority("").Rank())
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 3, PriorityHigh.Rank())
	assert.Equal(t, 0, Priority("urgent").Rank())

	p, ok := ParsePriority(" High ")
	assert.True(t, ok)
	assert.Equal(t, PriorityHigh, p)

	_, ok = ParsePriority("urgent")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	now := time.Now()

	valid := Item{ID: "i1", Name: "Blue Note LP", Category: "vinyl", Rating: 4, CreatedAt: now}
	require.NoError(t, Validate(valid))

	t.Run("missing name", func(t *testing.T) {
		err := Validate(Item{ID: "i1"})
		require.Error(t, err)
		oopsErr, ok := oops.AsOops(err)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_FAILED", oopsErr.Code())
		assert.Contains(t, err.Error(), "Name")
	})

	t.Run("rating out of range", func(t *testing.T) {
		item := valid
		item.Rating = 9
		assert.Error(t, Validate(item))
	})

	t.Run("reserved category", func(t *testing.T) {
		c := Collection{ID: "c1", Name: "Records", Category: "none"}
		assert.Error(t, Validate(c))
	})

	t.Run("unknown priority", func(t *testing.T) {
		w := WishItem{ID: "w1", Name: "Turntable", Priority: "urgent"}
		assert.Error(t, Validate(w))
	})
}

func TestSettingsApplyDefaults(t *testing.T) {
	s := &Settings{}
	s.ApplyDefaults()

	assert.Equal(t, "files", s.Storage.Driver)
	assert.Equal(t, "stash.db", s.Storage.Path)
	assert.Equal(t, 15*time.Second, s.Explore.Timeout)
	assert.NotNil(t, s.Lists)
}
