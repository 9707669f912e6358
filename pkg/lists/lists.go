// Package lists instantiates the listing engine for every list Stash shows:
// collections, items, the items of one collection, the wish list and the
// public Explore catalogue.
package lists

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pluqqy/stash-cli/pkg/listing"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// List names, also used as keys of the [lists] settings table
const (
	Collections     = "collections"
	Items           = "items"
	CollectionItems = "collection"
	WishList        = "wishlist"
	Explore         = "explore"
)

// Names returns every list name in display order
func Names() []string {
	return []string{Collections, Items, CollectionItems, WishList, Explore}
}

// Options customise a list controller
type Options struct {
	// Settings may override the default sort per list
	Settings *models.Settings
	Logger   *log.Logger
}

// sortKey is implemented by the sort key types of every list
type sortKey interface {
	~string
}

// parseKey matches s against keys case-insensitively
func parseKey[K sortKey](s string, keys []K) (K, bool) {
	s = strings.TrimSpace(s)
	for _, k := range keys {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// keyStrings is handy for flag help and completion
func keyStrings[K sortKey](keys []K) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

// defaultSort applies the [lists.<name>] settings override, ignoring values
// that do not name a valid key or order
func defaultSort[K sortKey](opts Options, name string, keys []K, key K, order listing.Order) (K, listing.Order) {
	if opts.Settings == nil {
		return key, order
	}
	override, ok := opts.Settings.Lists[name]
	if !ok {
		return key, order
	}
	if k, ok := parseKey(override.Sort, keys); ok {
		key = k
	}
	return key, listing.ParseOrder(override.Order, order)
}

// FilterKey normalises criteria keys so hasItems, has_items and has-items
// all address the same criterion
func FilterKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer("_", "", "-", "").Replace(key)
}

func logger(opts Options, name string) *log.Logger {
	if opts.Logger == nil {
		return nil
	}
	return opts.Logger.WithPrefix(name)
}
