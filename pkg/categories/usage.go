package categories

import (
	"sort"

	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/store"
)

// UsageStats counts the records using one category
type UsageStats struct {
	CollectionCount int
	ItemCount       int
	WishCount       int
	TotalCount      int
}

func (u *UsageStats) add(kind string) {
	switch kind {
	case store.KindCollection:
		u.CollectionCount++
	case store.KindItem:
		u.ItemCount++
	case store.KindWish:
		u.WishCount++
	}
	u.TotalCount++
}

// each calls fn with the kind and normalised category of every record
func each(snap *store.Snapshot, fn func(kind, category string)) {
	for _, c := range snap.Collections {
		fn(store.KindCollection, models.NormalizeCategory(c.Category))
	}
	for _, item := range snap.Items {
		fn(store.KindItem, models.NormalizeCategory(item.Category))
	}
	for _, w := range snap.WishItems {
		fn(store.KindWish, models.NormalizeCategory(w.Category))
	}
}

// CountUsage counts how many records use a category. The name "none" counts
// records without a category.
func CountUsage(snap *store.Snapshot, name string) UsageStats {
	want := models.NormalizeCategory(name)
	if want == models.CategoryNone {
		want = ""
	}

	var stats UsageStats
	each(snap, func(kind, category string) {
		if category == want {
			stats.add(kind)
		}
	})
	return stats
}

// AllUsage returns usage for every registered category plus every category
// in use but missing from the registry. Unused registered categories report
// zero.
func AllUsage(registry *Registry, snap *store.Snapshot) map[string]*UsageStats {
	usage := make(map[string]*UsageStats)
	if registry != nil {
		for _, c := range registry.List() {
			usage[models.NormalizeCategory(c.Name)] = &UsageStats{}
		}
	}

	each(snap, func(kind, category string) {
		if category == "" {
			return
		}
		stats, ok := usage[category]
		if !ok {
			stats = &UsageStats{}
			usage[category] = stats
		}
		stats.add(kind)
	})
	return usage
}

// FilterValues returns the values a category filter cycles through: every
// category used by records, sorted, followed by "none". The cycle starts
// from the unset filter, which callers represent as "".
func FilterValues(used ...[]string) []string {
	seen := map[string]bool{}
	var values []string
	for _, list := range used {
		for _, category := range list {
			category = models.NormalizeCategory(category)
			if category == "" || seen[category] {
				continue
			}
			seen[category] = true
			values = append(values, category)
		}
	}
	sort.Strings(values)
	return append(values, listing.NoneValue)
}

// Of extracts the categories of records for FilterValues
func Of[T any](records []T, category func(T) string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = category(r)
	}
	return out
}
