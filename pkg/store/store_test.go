package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// Verify both backends implement Store at compile time.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

func errorCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		return fmt.Sprint(oopsErr.Code())
	}
	return ""
}

func useTempStash(t *testing.T) {
	t.Helper()
	old := files.StashDir
	files.StashDir = filepath.Join(t.TempDir(), ".stash")
	t.Cleanup(func() { files.StashDir = old })
	require.NoError(t, files.InitProjectStructure())
}

// backends returns a fresh instance of every store implementation
func backends(t *testing.T) map[string]Store {
	t.Helper()
	useTempStash(t)

	sqliteStore, err := OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"files":  NewFileStore(nil),
		"sqlite": sqliteStore,
	}
}

func seed(t *testing.T, ctx context.Context, st Store) {
	t.Helper()
	require.NoError(t, st.SaveItem(ctx, &models.Item{ID: "i1", Name: "Blue Train", CollectionIDs: []string{"c1"}}))
	require.NoError(t, st.SaveItem(ctx, &models.Item{ID: "i2", Name: "Dune", CollectionIDs: []string{"c1"}}))
	require.NoError(t, st.SaveItem(ctx, &models.Item{ID: "i3", Name: "Atlas"}))
	require.NoError(t, st.SaveCollection(ctx, &models.Collection{ID: "c1", Name: "Shelf", ItemIDs: []string{"i1", "i2"}}))
	require.NoError(t, st.SaveWishItem(ctx, &models.WishItem{ID: "w1", Name: "Turntable", Priority: models.PriorityHigh}))
}

func TestStoreSaveAndLoad(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, ctx, st)

			snap, err := LoadSnapshot(ctx, st)
			require.NoError(t, err)
			assert.Len(t, snap.Collections, 1)
			assert.Len(t, snap.Items, 3)
			assert.Len(t, snap.WishItems, 1)

			c, ok := snap.CollectionByID("c1")
			require.True(t, ok)
			assert.Equal(t, []string{"i1", "i2"}, c.ItemIDs)

			w, err := st.WishItem(ctx, "w1")
			require.NoError(t, err)
			assert.Equal(t, models.PriorityHigh, w.Priority)
			assert.False(t, w.CreatedAt.IsZero())
		})
	}
}

func TestStoreAssignsIDs(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			item := &models.Item{Name: "Untitled"}
			require.NoError(t, st.SaveItem(ctx, item))
			require.NotEmpty(t, item.ID)

			read, err := st.Item(ctx, item.ID)
			require.NoError(t, err)
			assert.Equal(t, "Untitled", read.Name)
		})
	}
}

func TestStoreValidation(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := st.SaveWishItem(context.Background(), &models.WishItem{Name: "x", Price: -1})
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", errorCode(err))
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := st.Collection(ctx, "missing")
			assert.Equal(t, "NOT_FOUND", errorCode(err))

			err = st.DeleteWishItem(ctx, "missing")
			assert.Equal(t, "NOT_FOUND", errorCode(err))
		})
	}
}

func TestStoreDeleteItemUpdatesOwnerOrder(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, ctx, st)

			require.NoError(t, st.DeleteItem(ctx, "i1"))

			c, err := st.Collection(ctx, "c1")
			require.NoError(t, err)
			assert.Equal(t, []string{"i2"}, c.ItemIDs)

			_, err = st.Item(ctx, "i1")
			assert.Equal(t, "NOT_FOUND", errorCode(err))
		})
	}
}

func TestStoreDeleteCollectionKeepsItems(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, ctx, st)

			require.NoError(t, st.DeleteCollection(ctx, "c1"))

			items, err := st.Items(ctx)
			require.NoError(t, err)
			assert.Len(t, items, 3)
			for _, item := range items {
				assert.Empty(t, item.CollectionIDs, item.Name)
			}
		})
	}
}

func TestStoreMembership(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, ctx, st)

			require.NoError(t, st.AddToCollection(ctx, "c1", "i3"))
			require.NoError(t, st.AddToCollection(ctx, "c1", "i3"))
			require.NoError(t, st.OrderCollection(ctx, "c1", []string{"i3", "i2"}))

			c, err := st.Collection(ctx, "c1")
			require.NoError(t, err)
			assert.Equal(t, []string{"i3", "i2", "i1"}, c.ItemIDs)

			item, err := st.Item(ctx, "i3")
			require.NoError(t, err)
			assert.Equal(t, []string{"c1"}, item.CollectionIDs)

			err = st.OrderCollection(ctx, "c1", []string{"nope"})
			assert.Equal(t, "VALIDATION_FAILED", errorCode(err))
		})
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	useTempStash(t)

	st, err := Open(nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, st)

	settings := models.DefaultSettings()
	settings.Storage.Driver = "sqlite"
	st, err = Open(settings, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, st)
	assert.FileExists(t, files.Path("stash.db"))
	require.NoError(t, st.Close())

	settings.Storage.Driver = "postgres"
	_, err = Open(settings, nil)
	assert.Equal(t, "CONFIG_INVALID", errorCode(err))
}

func TestSQLiteMemoryStoresAreIsolated(t *testing.T) {
	a, err := OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	defer a.Close()
	b, err := OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	defer b.Close()

	ctx := context.Background()
	require.NoError(t, a.SaveItem(ctx, &models.Item{ID: "only-a", Name: "A"}))

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
