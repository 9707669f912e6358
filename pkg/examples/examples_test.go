package examples

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/store"
)

func TestGetExamples(t *testing.T) {
	assert.Len(t, GetExamples("music"), 1)
	assert.Equal(t, "music", GetExamples("music")[0].Theme)
	assert.Len(t, GetExamples("all"), 2)
	assert.Empty(t, GetExamples("gardening"))
}

func TestExamplesAreValid(t *testing.T) {
	for _, set := range GetExamples("all") {
		items := map[string]models.Item{}
		for _, item := range set.Items {
			items[item.ID] = item
		}

		for _, c := range set.Collections {
			for _, id := range c.ItemIDs {
				item, ok := items[id]
				require.True(t, ok, "%s references unknown item %s", c.ID, id)
				assert.Contains(t, item.CollectionIDs, c.ID)
			}
		}
	}
}

func TestInstall(t *testing.T) {
	st, err := store.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	set := GetExamples("music")[0]

	result, err := Install(ctx, st, set, false)
	require.NoError(t, err)
	assert.Equal(t, len(set.Items)+len(set.Collections)+len(set.Wishes), result.Installed)

	again, err := Install(ctx, st, set, false)
	require.NoError(t, err)
	assert.Zero(t, again.Installed)
	assert.Equal(t, result.Installed, again.Skipped)

	forced, err := Install(ctx, st, set, true)
	require.NoError(t, err)
	assert.Equal(t, result.Installed, forced.Installed)

	snap, err := store.LoadSnapshot(ctx, st)
	require.NoError(t, err)
	assert.Len(t, snap.Items, len(set.Items))
	assert.Len(t, snap.WishItems, len(set.Wishes))
}
