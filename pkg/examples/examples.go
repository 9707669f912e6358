package examples

import (
	"context"
	"fmt"
	"time"

	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/store"
)

// ExampleSet is a themed sample stash
type ExampleSet struct {
	Theme       string
	Name        string
	Description string
	Items       []models.Item
	Collections []models.Collection
	Wishes      []models.WishItem
}

// Themes lists the available example themes
func Themes() []string {
	return []string{"music", "books", "all"}
}

// GetExamples returns example sets for the given theme
func GetExamples(theme string) []ExampleSet {
	switch theme {
	case "music":
		return tagged("music", getMusicExamples())
	case "books":
		return tagged("books", getBookExamples())
	case "all":
		var all []ExampleSet
		all = append(all, tagged("music", getMusicExamples())...)
		all = append(all, tagged("books", getBookExamples())...)
		return all
	default:
		return []ExampleSet{}
	}
}

func tagged(theme string, sets []ExampleSet) []ExampleSet {
	for i := range sets {
		sets[i].Theme = theme
	}
	return sets
}

// Result reports what an install wrote
type Result struct {
	Installed int
	Skipped   int
}

// Install writes an example set through st. Existing records are skipped
// unless force is set. Items go first so collections only reference items
// that exist.
func Install(ctx context.Context, st store.Store, set ExampleSet, force bool) (Result, error) {
	var result Result

	for _, item := range set.Items {
		if !force {
			if _, err := st.Item(ctx, item.ID); err == nil {
				result.Skipped++
				continue
			}
		}
		item := item
		if err := st.SaveItem(ctx, &item); err != nil {
			return result, fmt.Errorf("failed to install example item %s: %w", item.ID, err)
		}
		result.Installed++
	}

	for _, c := range set.Collections {
		if !force {
			if _, err := st.Collection(ctx, c.ID); err == nil {
				result.Skipped++
				continue
			}
		}
		c := c
		if err := st.SaveCollection(ctx, &c); err != nil {
			return result, fmt.Errorf("failed to install example collection %s: %w", c.ID, err)
		}
		result.Installed++
	}

	for _, w := range set.Wishes {
		if !force {
			if _, err := st.WishItem(ctx, w.ID); err == nil {
				result.Skipped++
				continue
			}
		}
		w := w
		if err := st.SaveWishItem(ctx, &w); err != nil {
			return result, fmt.Errorf("failed to install example wish %s: %w", w.ID, err)
		}
		result.Installed++
	}

	return result, nil
}

// date is a shorthand for example timestamps
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
