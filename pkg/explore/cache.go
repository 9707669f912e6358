package explore

import (
	"errors"
	"os"
	"time"

	"github.com/samber/oops"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// Cache is the last successful catalogue fetch
type Cache struct {
	FetchedAt   time.Time           `msgpack:"fetched_at"`
	Collections []models.Collection `msgpack:"collections"`
}

func readCache(path string) (*Cache, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, oops.Code("EXPLORE_FAILED").Wrapf(err, "reading explore cache")
	}

	var cache Cache
	if err := msgpack.Unmarshal(content, &cache); err != nil {
		return nil, oops.
			Code("EXPLORE_FAILED").
			With("path", path).
			Hint("Run 'stash explore --refresh' to rebuild the cache").
			Wrapf(err, "decoding explore cache")
	}
	return &cache, nil
}

func writeCache(path string, cache *Cache) error {
	content, err := msgpack.Marshal(cache)
	if err != nil {
		return oops.Code("EXPLORE_FAILED").Wrapf(err, "encoding explore cache")
	}
	return files.WriteFileAtomic(path, content)
}
