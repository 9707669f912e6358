package files

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/stash-cli/pkg/models"
)

// useTempStash points StashDir at a fresh directory for one test
func useTempStash(t *testing.T) {
	t.Helper()
	old := StashDir
	StashDir = filepath.Join(t.TempDir(), ".stash")
	t.Cleanup(func() { StashDir = old })
	require.NoError(t, InitProjectStructure())
}

func errorCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		return fmt.Sprint(oopsErr.Code())
	}
	return ""
}

func TestInitProjectStructure(t *testing.T) {
	useTempStash(t)

	for _, dir := range []string{CollectionsDir, ItemsDir, WishListDir, CacheDir, LogsDir} {
		info, err := os.Stat(Path(dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
	assert.True(t, Exists())
}

func TestWriteReadCollection(t *testing.T) {
	useTempStash(t)

	c := &models.Collection{Name: "Jazz records", Category: " Vinyl Records ", ItemIDs: []string{"a", "b", "a"}}
	require.NoError(t, WriteCollection(c))

	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, "vinyl-records", c.Category)
	assert.Equal(t, []string{"a", "b"}, c.ItemIDs)

	read, err := ReadCollection(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Name, read.Name)
	assert.Equal(t, c.ItemIDs, read.ItemIDs)
	assert.True(t, c.CreatedAt.Equal(read.CreatedAt))
}

func TestWriteKeepsCreatedAt(t *testing.T) {
	useTempStash(t)

	created := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	item := &models.Item{Name: "Dune", CreatedAt: created}
	require.NoError(t, WriteItem(item))

	assert.True(t, item.CreatedAt.Equal(created))
	assert.True(t, item.UpdatedAt.After(created))
}

func TestWriteRejectsInvalidRecords(t *testing.T) {
	useTempStash(t)

	tests := []struct {
		name   string
		record func() error
	}{
		{"missing name", func() error { return WriteItem(&models.Item{}) }},
		{"rating too high", func() error { return WriteItem(&models.Item{Name: "x", Rating: 9}) }},
		{"bad priority", func() error { return WriteWishItem(&models.WishItem{Name: "x", Priority: "urgent"}) }},
		{"reserved category", func() error { return WriteCollection(&models.Collection{Name: "x", Category: "none"}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record()
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", errorCode(err))
		})
	}

	items, _, err := ListItems()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReadMissingRecord(t *testing.T) {
	useTempStash(t)

	_, err := ReadWishItem("nope")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(err))

	err = DeleteItem("nope")
	assert.Equal(t, "NOT_FOUND", errorCode(err))
}

func TestRejectsPathLikeIDs(t *testing.T) {
	useTempStash(t)

	for _, id := range []string{"../settings", "a/b", "", ".hidden"} {
		_, err := ReadItem(id)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(err), id)
	}
}

func TestListRecords(t *testing.T) {
	useTempStash(t)

	require.NoError(t, WriteWishItem(&models.WishItem{ID: "b", Name: "Turntable", Priority: "HIGH"}))
	require.NoError(t, WriteWishItem(&models.WishItem{ID: "a", Name: "Shelf"}))
	require.NoError(t, os.WriteFile(recordPath(WishListDir, "broken"), []byte("name: [unclosed"), 0644))

	wishes, skipped, err := ListWishItems()
	require.NoError(t, err)
	require.Len(t, wishes, 2)
	assert.Equal(t, "a", wishes[0].ID)
	assert.Equal(t, models.PriorityHigh, wishes[1].Priority)
	assert.Equal(t, []string{"broken.yaml"}, skipped)
}

func TestListWithoutStash(t *testing.T) {
	old := StashDir
	StashDir = filepath.Join(t.TempDir(), "missing")
	t.Cleanup(func() { StashDir = old })

	collections, _, err := ListCollections()
	require.NoError(t, err)
	assert.NotNil(t, collections)
	assert.Empty(t, collections)
	assert.False(t, Exists())
}

func TestDeleteRecord(t *testing.T) {
	useTempStash(t)

	c := &models.Collection{Name: "Temp"}
	require.NoError(t, WriteCollection(c))
	require.NoError(t, DeleteCollection(c.ID))

	_, err := ReadCollection(c.ID)
	assert.Equal(t, "NOT_FOUND", errorCode(err))
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.yaml")

	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(content))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Jazz Records":   "jazz-records",
		"Mum's Books!":   "mums-books",
		"Shelf #1":       "shelf-1",
		"  --  ":         "unnamed",
		"Wish   list 24": "wish-list-24",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}
