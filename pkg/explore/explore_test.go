package explore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/stash-cli/pkg/models"
)

const catalogue = `[
  {"id": "c1", "name": "Zeta", "public": true, "category": "Vinyl Records", "itemIds": ["a", "b"],
   "createdAt": {"seconds": 1700000000, "nanoseconds": 500}, "updatedAt": "2024-03-03T10:00:00Z"},
  {"id": "c2", "name": "alpha", "public": true,
   "createdAt": {"_seconds": 1600000000, "_nanoseconds": 0}, "updatedAt": null}
]`

func newServer(t *testing.T, hits *atomic.Int32, status *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/collections", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if code := status.Load(); code != 0 {
			w.WriteHeader(int(code))
			return
		}
		assert.Equal(t, "true", r.URL.Query().Get("public"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, catalogue)
	})
	mux.HandleFunc("/collections/c1/items", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id": "a", "name": "Blue Train", "rating": 5, "imageUrl": "https://img.example/a.jpg",
			"acquiredAt": "2020-01-02T00:00:00Z", "createdAt": {"seconds": 1}}]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c := New(
		models.ExploreSettings{Endpoint: endpoint, Timeout: 5 * time.Second},
		WithCachePath(filepath.Join(t.TempDir(), "explore.msgpack")),
	)
	t.Cleanup(func() { c.Close() })
	return c
}

func errorCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		return fmt.Sprint(oopsErr.Code())
	}
	return ""
}

func TestTimestampFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"document", `{"seconds": 1700000000, "nanoseconds": 5}`, time.Unix(1700000000, 5).UTC()},
		{"underscored", `{"_seconds": 10, "_nanoseconds": 0}`, time.Unix(10, 0).UTC()},
		{"rfc3339", `"2024-03-03T10:00:00+02:00"`, time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
		{"empty string", `""`, time.Time{}},
		{"unix seconds", `1700000000`, time.Unix(1700000000, 0).UTC()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`{"minutes": 3}`), &ts))
}

func TestCollections(t *testing.T) {
	var hits, status atomic.Int32
	server := newServer(t, &hits, &status)
	c := newClient(t, server.URL+"/")

	collections, err := c.Collections(context.Background())
	require.NoError(t, err)
	require.Len(t, collections, 2)

	zeta := collections[0]
	assert.Equal(t, "Zeta", zeta.Name)
	assert.Equal(t, "vinyl-records", zeta.Category)
	assert.Equal(t, []string{"a", "b"}, zeta.ItemIDs)
	assert.True(t, time.Unix(1700000000, 500).Equal(zeta.CreatedAt))
	assert.True(t, time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC).Equal(zeta.UpdatedAt))
	assert.True(t, collections[1].UpdatedAt.IsZero())

	cached, err := c.Cached()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Len(t, cached.Collections, 2)
	assert.True(t, zeta.CreatedAt.Equal(cached.Collections[0].CreatedAt))
}

func TestCollectionItems(t *testing.T) {
	var hits, status atomic.Int32
	server := newServer(t, &hits, &status)
	c := newClient(t, server.URL)

	items, err := c.CollectionItems(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Blue Train", items[0].Name)
	assert.True(t, items[0].HasImage())
	assert.Equal(t, 2020, items[0].AcquiredAt.Year())
}

func TestLoadPrefersCacheUnlessRefreshing(t *testing.T) {
	var hits, status atomic.Int32
	server := newServer(t, &hits, &status)
	c := newClient(t, server.URL)
	ctx := context.Background()

	_, stale, err := c.Load(ctx, false)
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, int32(1), hits.Load())

	_, _, err = c.Load(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second load is served from cache")

	_, _, err = c.Load(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLoadFallsBackToStaleCache(t *testing.T) {
	var hits, status atomic.Int32
	server := newServer(t, &hits, &status)
	c := newClient(t, server.URL)
	ctx := context.Background()

	_, err := c.Collections(ctx)
	require.NoError(t, err)

	status.Store(http.StatusNotFound)
	collections, stale, err := c.Load(ctx, true)
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Len(t, collections, 2)
}

func TestErrors(t *testing.T) {
	var hits, status atomic.Int32
	server := newServer(t, &hits, &status)
	status.Store(http.StatusForbidden)

	c := newClient(t, server.URL)
	_, _, err := c.Load(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, "EXPLORE_FAILED", errorCode(err))

	unconfigured := newClient(t, "")
	assert.False(t, unconfigured.Configured())
	_, err = unconfigured.Collections(context.Background())
	assert.Equal(t, "EXPLORE_FAILED", errorCode(err))
	assert.Equal(t, int32(1), hits.Load())
}
