package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/store"
)

// FilterFlag is one --filter key=value pair
type FilterFlag struct {
	Key   string
	Value string
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	if slices.Contains(validFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// NormalizeListName converts list name variants to the names used by the
// lists package
func NormalizeListName(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "collections":
		return lists.Collections, nil
	case "collection":
		return lists.CollectionItems, nil
	case "items", "item":
		return lists.Items, nil
	case "wishlist", "wish-list", "wishes", "wish":
		return lists.WishList, nil
	case "explore":
		return lists.Explore, nil
	default:
		return "", fmt.Errorf("invalid list: %s (must be: collections, collection, items, wishlist, or explore)", name)
	}
}

// NormalizeKind converts record kind variants to a store kind
func NormalizeKind(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "collection", "collections":
		return store.KindCollection, nil
	case "item", "items":
		return store.KindItem, nil
	case "wish", "wishes", "wishlist":
		return store.KindWish, nil
	default:
		return "", fmt.Errorf("invalid kind: %s (must be: collection, item, or wish)", kind)
	}
}

// ParseFilterFlags parses key=value (or key:value) pairs. An empty value is
// allowed and clears the criterion.
func ParseFilterFlags(values []string) ([]FilterFlag, error) {
	filters := make([]FilterFlag, 0, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok {
			key, value, ok = strings.Cut(v, ":")
		}
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q (expected key=value)", v)
		}
		filters = append(filters, FilterFlag{Key: key, Value: strings.TrimSpace(value)})
	}
	return filters, nil
}

// ValidateFilterKeys rejects filter keys the list does not know about
func ValidateFilterKeys(list string, filters []FilterFlag) error {
	known := lists.FilterKeyNames(list)
	for _, f := range filters {
		if !containsKey(known, f.Key) {
			return fmt.Errorf("unknown filter %q for %s (valid: %s)", f.Key, list, strings.Join(known, ", "))
		}
	}
	return nil
}

// ValidateSortKey rejects sort keys the list does not know about
func ValidateSortKey(list, key string) error {
	if key == "" {
		return nil
	}
	known := lists.SortKeyNames(list)
	if !containsKey(known, key) {
		return fmt.Errorf("unknown sort key %q for %s (valid: %s)", key, list, strings.Join(known, ", "))
	}
	return nil
}

// ValidateOrder validates the --order flag
func ValidateOrder(order string) error {
	switch strings.ToLower(order) {
	case "", "asc", "desc":
		return nil
	default:
		return fmt.Errorf("invalid order: %s (must be: asc or desc)", order)
	}
}

// containsKey compares keys the way list criteria do: case-insensitively,
// ignoring - and _
func containsKey(known []string, key string) bool {
	for _, k := range known {
		if lists.FilterKey(k) == lists.FilterKey(key) {
			return true
		}
	}
	return false
}
