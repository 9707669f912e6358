package models

import (
	"errors"
	"hash/fnv"
	"strings"
)

// CategoryNone is the filter sentinel for "no category". It is reserved and
// can never be used as a category name.
const CategoryNone = "none"

// Category-related errors
var (
	ErrEmptyCategory            = errors.New("category name cannot be empty")
	ErrCategoryTooLong          = errors.New("category name cannot exceed 50 characters")
	ErrInvalidCategoryCharacter = errors.New("category name contains invalid characters")
	ErrReservedCategory         = errors.New("category name \"none\" is reserved")
)

// Category represents a category with display metadata
type Category struct {
	Name        string `yaml:"name"`
	Color       string `yaml:"color,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// CategoryRegistry holds all category metadata
type CategoryRegistry struct {
	Categories []Category `yaml:"categories"`
}

// DefaultColorPalette provides a curated set of colors for categories
var DefaultColorPalette = []string{
	"#e74c3c", // red
	"#3498db", // blue
	"#2ecc71", // green
	"#f39c12", // orange
	"#9b59b6", // purple
	"#1abc9c", // turquoise
	"#34495e", // dark gray
	"#e67e22", // dark orange
	"#16a085", // dark turquoise
	"#8e44ad", // dark purple
	"#f1c40f", // yellow
	"#d35400", // pumpkin
}

// CategoryColor returns the registry color if set, otherwise a color derived
// from the category name so the same category always renders the same way
func CategoryColor(name string, registryColor string) string {
	if registryColor != "" {
		return registryColor
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(name)))
	hash := h.Sum32()

	return DefaultColorPalette[int(hash%uint32(len(DefaultColorPalette)))]
}

// NormalizeCategory lowercases and trims a category, collapsing inner spaces
// to hyphens
func NormalizeCategory(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.Join(strings.Fields(normalized), "-")

	var result strings.Builder
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '/' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ValidateCategory checks if a category name is usable
func ValidateCategory(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCategory
	}

	if len(name) > 50 {
		return ErrCategoryTooLong
	}

	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '/' || r == ' ') {
			return ErrInvalidCategoryCharacter
		}
	}

	if NormalizeCategory(name) == CategoryNone {
		return ErrReservedCategory
	}

	return nil
}
