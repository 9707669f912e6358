// Package store provides the record sources behind every list: the YAML
// file store and a SQLite document store, selected by settings.
package store

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"

	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// Record kinds
const (
	KindCollection = "collection"
	KindItem       = "item"
	KindWish       = "wish"
)

// Store persists collections, items and wish list entries. Implementations
// are safe for concurrent use.
type Store interface {
	Collections(ctx context.Context) ([]models.Collection, error)
	Items(ctx context.Context) ([]models.Item, error)
	WishItems(ctx context.Context) ([]models.WishItem, error)

	Collection(ctx context.Context, id string) (*models.Collection, error)
	Item(ctx context.Context, id string) (*models.Item, error)
	WishItem(ctx context.Context, id string) (*models.WishItem, error)

	SaveCollection(ctx context.Context, c *models.Collection) error
	SaveItem(ctx context.Context, item *models.Item) error
	SaveWishItem(ctx context.Context, w *models.WishItem) error

	// DeleteCollection keeps the collection's items but drops their
	// membership of it
	DeleteCollection(ctx context.Context, id string) error
	// DeleteItem also removes the item from every collection's owner order
	DeleteItem(ctx context.Context, id string) error
	DeleteWishItem(ctx context.Context, id string) error

	// AddToCollection appends an item to a collection's owner order
	AddToCollection(ctx context.Context, collectionID, itemID string) error
	// OrderCollection moves itemIDs to the front of the owner order
	OrderCollection(ctx context.Context, collectionID string, itemIDs []string) error

	Close() error
}

// Open returns the store selected by settings. Relative sqlite paths are
// resolved against the stash directory.
func Open(settings *models.Settings, logger *log.Logger) (Store, error) {
	if settings == nil {
		settings = models.DefaultSettings()
	}

	switch settings.Storage.Driver {
	case "", "files":
		return NewFileStore(logger), nil
	case "sqlite":
		path := settings.Storage.Path
		if path != ":memory:" && !filepath.IsAbs(path) {
			path = files.Path(path)
		}
		return OpenSQLite(path, logger)
	default:
		return nil, oops.
			Code("CONFIG_INVALID").
			With("driver", settings.Storage.Driver).
			Hint("Set storage.driver to \"files\" or \"sqlite\"").
			Errorf("unknown storage driver %q", settings.Storage.Driver)
	}
}

// Snapshot is one consistent load of every record kind
type Snapshot struct {
	Collections []models.Collection
	Items       []models.Item
	WishItems   []models.WishItem
}

// CollectionByID finds a loaded collection
func (s *Snapshot) CollectionByID(id string) (models.Collection, bool) {
	for _, c := range s.Collections {
		if c.ID == id {
			return c, true
		}
	}
	return models.Collection{}, false
}

// LoadSnapshot loads all three record kinds concurrently
func LoadSnapshot(ctx context.Context, st Store) (*Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := st.Collections(ctx)
		snap.Collections = records
		return err
	})
	g.Go(func() error {
		records, err := st.Items(ctx)
		snap.Items = records
		return err
	})
	g.Go(func() error {
		records, err := st.WishItems(ctx)
		snap.WishItems = records
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func debug(logger *log.Logger, msg string, keyvals ...any) {
	if logger != nil {
		logger.Debug(msg, keyvals...)
	}
}
