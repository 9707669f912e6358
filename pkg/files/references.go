package files

import (
	"fmt"
	"os"
	"slices"

	"github.com/samber/oops"
)

// backup holds a record's bytes so a multi-record update can be undone
type backup struct {
	path     string
	original []byte
}

// rollback restores records to their original state
func rollback(backups []backup) {
	for _, b := range backups {
		if b.original != nil {
			_ = WriteFileAtomic(b.path, b.original)
		}
	}
}

func snapshot(dir, id string) backup {
	path := recordPath(dir, id)
	original, _ := os.ReadFile(path)
	return backup{path: path, original: original}
}

// RemoveItemReferences removes a deleted item from the owner order of every
// collection. It returns the ids of the collections that changed.
func RemoveItemReferences(itemID string) ([]string, error) {
	collections, _, err := ListCollections()
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	var backups []backup
	var changed []string

	for i := range collections {
		c := &collections[i]
		if !slices.Contains(c.ItemIDs, itemID) {
			continue
		}

		backups = append(backups, snapshot(CollectionsDir, c.ID))
		c.ItemIDs = slices.DeleteFunc(c.ItemIDs, func(id string) bool { return id == itemID })

		if err := WriteCollection(c); err != nil {
			rollback(backups)
			return nil, fmt.Errorf("failed to update collection %s: %w", c.ID, err)
		}
		changed = append(changed, c.ID)
	}

	return changed, nil
}

// RemoveCollectionReferences drops a deleted collection from the membership
// list of every item. Items themselves are kept.
func RemoveCollectionReferences(collectionID string) ([]string, error) {
	items, _, err := ListItems()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	var backups []backup
	var changed []string

	for i := range items {
		item := &items[i]
		if !slices.Contains(item.CollectionIDs, collectionID) {
			continue
		}

		backups = append(backups, snapshot(ItemsDir, item.ID))
		item.CollectionIDs = slices.DeleteFunc(item.CollectionIDs, func(id string) bool { return id == collectionID })

		if err := WriteItem(item); err != nil {
			rollback(backups)
			return nil, fmt.Errorf("failed to update item %s: %w", item.ID, err)
		}
		changed = append(changed, item.ID)
	}

	return changed, nil
}

// AddToCollection appends an item to the end of a collection's owner order
// and records the membership on the item. Adding an existing member is a
// no-op.
func AddToCollection(collectionID, itemID string) error {
	collection, err := ReadCollection(collectionID)
	if err != nil {
		return err
	}
	item, err := ReadItem(itemID)
	if err != nil {
		return err
	}

	if slices.Contains(collection.ItemIDs, itemID) && slices.Contains(item.CollectionIDs, collectionID) {
		return nil
	}

	backups := []backup{snapshot(CollectionsDir, collectionID)}

	if !slices.Contains(collection.ItemIDs, itemID) {
		collection.ItemIDs = append(collection.ItemIDs, itemID)
		if err := WriteCollection(collection); err != nil {
			return fmt.Errorf("failed to update collection %s: %w", collectionID, err)
		}
	}

	if !slices.Contains(item.CollectionIDs, collectionID) {
		item.CollectionIDs = append(item.CollectionIDs, collectionID)
		if err := WriteItem(item); err != nil {
			rollback(backups)
			return fmt.Errorf("failed to update item %s: %w", itemID, err)
		}
	}

	return nil
}

// OrderCollection rewrites a collection's owner order. The given ids move to
// the front in the given order; members not mentioned keep their relative
// order after them. Ids that are not members are rejected.
func OrderCollection(collectionID string, itemIDs []string) error {
	collection, err := ReadCollection(collectionID)
	if err != nil {
		return err
	}

	ordered, err := Reorder(collection.ItemIDs, itemIDs)
	if err != nil {
		return oops.With("collection", collectionID).Wrap(err)
	}

	collection.ItemIDs = ordered
	return WriteCollection(collection)
}

// Reorder moves front to the head of ids, keeping the remaining ids in their
// existing order
func Reorder(ids, front []string) ([]string, error) {
	front = dedupe(front)
	for _, id := range front {
		if !slices.Contains(ids, id) {
			return nil, oops.
				Code("VALIDATION_FAILED").
				With("id", id).
				Hint("Add the item to the collection first with 'stash add-to'").
				Errorf("item %q is not in the collection", id)
		}
	}

	out := slices.Clone(front)
	for _, id := range ids {
		if !slices.Contains(front, id) {
			out = append(out, id)
		}
	}
	return out, nil
}
