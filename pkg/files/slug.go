package files

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	repeatedHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts a display name to a valid filename
// Examples:
//
//	"Jazz Records" → "jazz-records"
//	"Mum's Books!" → "mums-books"
//	"Shelf #1" → "shelf-1"
func Slugify(displayName string) string {
	slug := strings.ToLower(displayName)
	slug = strings.ReplaceAll(slug, "'", "")
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	slug = repeatedHyphens.ReplaceAllString(slug, "-")

	if slug == "" {
		slug = "unnamed"
	}

	return slug
}
