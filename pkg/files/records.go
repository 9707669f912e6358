package files

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pluqqy/stash-cli/pkg/models"
)

// now is swapped in tests for stable timestamps
var now = func() time.Time { return time.Now().UTC().Truncate(time.Second) }

// NewID returns a fresh record id
func NewID() string {
	return uuid.NewString()
}

// stamp assigns an id and timestamps to a record about to be written
func stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = NewID()
	}
	t := now()
	if created.IsZero() {
		*created = t
	}
	*updated = t
}

func ReadCollection(id string) (*models.Collection, error) {
	return readRecord[models.Collection](CollectionsDir, "collection", id)
}

// PrepareCollection assigns an id and timestamps when missing, normalises
// the category and owner order, and validates the result. Every store runs
// it before saving.
func PrepareCollection(c *models.Collection) error {
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	c.Category = models.NormalizeCategory(c.Category)
	c.ItemIDs = dedupe(c.ItemIDs)
	if err := models.Validate(c); err != nil {
		return err
	}
	return validateID(c.ID)
}

// WriteCollection validates and stores a collection
func WriteCollection(c *models.Collection) error {
	if err := PrepareCollection(c); err != nil {
		return err
	}
	return writeRecord(CollectionsDir, "collection", c.ID, c)
}

func DeleteCollection(id string) error {
	return deleteRecord(CollectionsDir, "collection", id)
}

// ListCollections returns every stored collection plus the names of files
// that could not be parsed
func ListCollections() ([]models.Collection, []string, error) {
	return listRecords[models.Collection](CollectionsDir, "collection")
}

func ReadItem(id string) (*models.Item, error) {
	return readRecord[models.Item](ItemsDir, "item", id)
}

// PrepareItem is PrepareCollection for items
func PrepareItem(item *models.Item) error {
	stamp(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	item.Category = models.NormalizeCategory(item.Category)
	item.CollectionIDs = dedupe(item.CollectionIDs)
	if err := models.Validate(item); err != nil {
		return err
	}
	return validateID(item.ID)
}

// WriteItem validates and stores an item
func WriteItem(item *models.Item) error {
	if err := PrepareItem(item); err != nil {
		return err
	}
	return writeRecord(ItemsDir, "item", item.ID, item)
}

func DeleteItem(id string) error {
	return deleteRecord(ItemsDir, "item", id)
}

func ListItems() ([]models.Item, []string, error) {
	return listRecords[models.Item](ItemsDir, "item")
}

func ReadWishItem(id string) (*models.WishItem, error) {
	return readRecord[models.WishItem](WishListDir, "wish", id)
}

// PrepareWishItem is PrepareCollection for wish list entries
func PrepareWishItem(w *models.WishItem) error {
	stamp(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	w.Category = models.NormalizeCategory(w.Category)
	w.Priority = models.Priority(strings.ToLower(strings.TrimSpace(string(w.Priority))))
	if err := models.Validate(w); err != nil {
		return err
	}
	return validateID(w.ID)
}

// WriteWishItem validates and stores a wish list entry
func WriteWishItem(w *models.WishItem) error {
	if err := PrepareWishItem(w); err != nil {
		return err
	}
	return writeRecord(WishListDir, "wish", w.ID, w)
}

func DeleteWishItem(id string) error {
	return deleteRecord(WishListDir, "wish", id)
}

func ListWishItems() ([]models.WishItem, []string, error) {
	return listRecords[models.WishItem](WishListDir, "wish")
}

// dedupe drops repeated ids, keeping the first occurrence
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
