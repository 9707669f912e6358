package store

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// FileStore keeps one YAML file per record under files.StashDir
type FileStore struct {
	mu     sync.Mutex // serialises writes; reads go straight to disk
	logger *log.Logger
}

// NewFileStore creates a store over the current stash directory
func NewFileStore(logger *log.Logger) *FileStore {
	return &FileStore{logger: logger}
}

func (s *FileStore) warnSkipped(kind string, skipped []string) {
	if len(skipped) > 0 && s.logger != nil {
		s.logger.Warn("skipped unreadable records", "kind", kind, "files", skipped)
	}
}

func (s *FileStore) Collections(ctx context.Context) ([]models.Collection, error) {
	records, skipped, err := files.ListCollections()
	s.warnSkipped(KindCollection, skipped)
	debug(s.logger, "loaded collections", "count", len(records))
	return records, err
}

func (s *FileStore) Items(ctx context.Context) ([]models.Item, error) {
	records, skipped, err := files.ListItems()
	s.warnSkipped(KindItem, skipped)
	debug(s.logger, "loaded items", "count", len(records))
	return records, err
}

func (s *FileStore) WishItems(ctx context.Context) ([]models.WishItem, error) {
	records, skipped, err := files.ListWishItems()
	s.warnSkipped(KindWish, skipped)
	debug(s.logger, "loaded wish list", "count", len(records))
	return records, err
}

func (s *FileStore) Collection(ctx context.Context, id string) (*models.Collection, error) {
	return files.ReadCollection(id)
}

func (s *FileStore) Item(ctx context.Context, id string) (*models.Item, error) {
	return files.ReadItem(id)
}

func (s *FileStore) WishItem(ctx context.Context, id string) (*models.WishItem, error) {
	return files.ReadWishItem(id)
}

func (s *FileStore) SaveCollection(ctx context.Context, c *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return files.WriteCollection(c)
}

func (s *FileStore) SaveItem(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return files.WriteItem(item)
}

func (s *FileStore) SaveWishItem(ctx context.Context, w *models.WishItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return files.WriteWishItem(w)
}

func (s *FileStore) DeleteCollection(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := files.DeleteCollection(id); err != nil {
		return err
	}
	changed, err := files.RemoveCollectionReferences(id)
	debug(s.logger, "deleted collection", "id", id, "items_updated", len(changed))
	return err
}

func (s *FileStore) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := files.DeleteItem(id); err != nil {
		return err
	}
	changed, err := files.RemoveItemReferences(id)
	debug(s.logger, "deleted item", "id", id, "collections_updated", len(changed))
	return err
}

func (s *FileStore) DeleteWishItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return files.DeleteWishItem(id)
}

func (s *FileStore) AddToCollection(ctx context.Context, collectionID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return files.AddToCollection(collectionID, itemID)
}

func (s *FileStore) OrderCollection(ctx context.Context, collectionID string, itemIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return files.OrderCollection(collectionID, itemIDs)
}

// Close is a no-op for the file store
func (s *FileStore) Close() error {
	return nil
}
