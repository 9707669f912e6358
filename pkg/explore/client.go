// Package explore fetches the public collection catalogue that backs the
// Explore list, keeping the last successful fetch on disk for offline use.
package explore

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/oops"
	"golang.org/x/time/rate"
	"resty.dev/v3"

	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/models"
)

const (
	userAgent      = "stash-cli"
	httpRetryCount = 2
	cacheFile      = "explore.msgpack"
)

// remoteCollection is a catalogue collection as it arrives on the wire
type remoteCollection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Public      bool      `json:"public"`
	Owner       string    `json:"owner"`
	ItemIDs     []string  `json:"itemIds"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

func (r remoteCollection) model() models.Collection {
	return models.Collection{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    models.NormalizeCategory(r.Category),
		Tags:        r.Tags,
		Public:      r.Public,
		Owner:       r.Owner,
		ItemIDs:     r.ItemIDs,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
}

type remoteItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	Rating        int       `json:"rating"`
	Favorite      bool      `json:"favorite"`
	ImageURL      string    `json:"imageUrl"`
	CollectionIDs []string  `json:"collectionIds"`
	AcquiredAt    Timestamp `json:"acquiredAt"`
	CreatedAt     Timestamp `json:"createdAt"`
	UpdatedAt     Timestamp `json:"updatedAt"`
}

func (r remoteItem) model() models.Item {
	return models.Item{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      models.NormalizeCategory(r.Category),
		Tags:          r.Tags,
		Rating:        r.Rating,
		Favorite:      r.Favorite,
		ImageURL:      r.ImageURL,
		CollectionIDs: r.CollectionIDs,
		AcquiredAt:    r.AcquiredAt.Time,
		CreatedAt:     r.CreatedAt.Time,
		UpdatedAt:     r.UpdatedAt.Time,
	}
}

// Client talks to the public catalogue
type Client struct {
	endpoint  string
	client    *resty.Client
	limiter   *rate.Limiter
	cachePath string
	logger    *log.Logger
}

// Option customises a Client
type Option func(*Client)

// WithLogger sets the client logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCachePath overrides where the offline cache is kept
func WithCachePath(path string) Option {
	return func(c *Client) { c.cachePath = path }
}

// New creates a client from the explore settings. A zero request rate
// disables rate limiting.
func New(settings models.ExploreSettings, opts ...Option) *Client {
	limit := rate.Inf
	if settings.RequestsPerSecond > 0 {
		limit = rate.Limit(settings.RequestsPerSecond)
	}

	client := resty.New()
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", userAgent)
	client.SetRetryCount(httpRetryCount)
	client.SetRetryWaitTime(200 * time.Millisecond)
	client.SetRetryMaxWaitTime(2 * time.Second)
	if settings.Timeout > 0 {
		client.SetTimeout(settings.Timeout)
	}

	c := &Client{
		endpoint:  strings.TrimRight(settings.Endpoint, "/"),
		client:    client,
		limiter:   rate.NewLimiter(limit, 1),
		cachePath: filepath.Join(files.StashDir, files.CacheDir, cacheFile),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the underlying HTTP client
func (c *Client) Close() error {
	return c.client.Close()
}

// Configured reports whether an endpoint is set
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, result any) error {
	if !c.Configured() {
		return oops.
			Code("EXPLORE_FAILED").
			Hint("Set explore.endpoint in .stash/settings.toml").
			Errorf("no explore endpoint configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return oops.Code("EXPLORE_FAILED").Wrapf(err, "waiting for rate limiter")
	}

	response, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(result).
		Get(c.endpoint + path)
	if err != nil {
		return oops.
			Code("EXPLORE_FAILED").
			With("url", c.endpoint+path).
			Wrapf(err, "requesting explore catalogue")
	}

	if !response.IsSuccess() {
		return oops.
			Code("EXPLORE_FAILED").
			With("url", c.endpoint+path).
			With("status", response.StatusCode()).
			Hint("Check explore.endpoint or try again later").
			Errorf("explore catalogue returned status %d", response.StatusCode())
	}

	if c.logger != nil {
		c.logger.Debug("explore request", "path", path, "status", response.StatusCode(), "duration", response.Duration())
	}
	return nil
}

// Collections fetches the public collections and refreshes the offline cache
func (c *Client) Collections(ctx context.Context) ([]models.Collection, error) {
	var remote []remoteCollection
	if err := c.get(ctx, "/collections", map[string]string{"public": "true"}, &remote); err != nil {
		return nil, err
	}

	collections := make([]models.Collection, 0, len(remote))
	for _, r := range remote {
		collections = append(collections, r.model())
	}

	if err := writeCache(c.cachePath, &Cache{FetchedAt: time.Now().UTC(), Collections: collections}); err != nil && c.logger != nil {
		c.logger.Warn("could not write explore cache", "err", err)
	}

	return collections, nil
}

// CollectionItems fetches the items of one public collection
func (c *Client) CollectionItems(ctx context.Context, collectionID string) ([]models.Item, error) {
	var remote []remoteItem
	path := "/collections/" + url.PathEscape(collectionID) + "/items"
	if err := c.get(ctx, path, nil, &remote); err != nil {
		return nil, oops.With("collection", collectionID).Wrap(err)
	}

	items := make([]models.Item, 0, len(remote))
	for _, r := range remote {
		items = append(items, r.model())
	}
	return items, nil
}

// Cached returns the last successful fetch. It returns nil without error
// when nothing has been cached yet.
func (c *Client) Cached() (*Cache, error) {
	return readCache(c.cachePath)
}

// Load returns the catalogue, preferring the cache unless refresh is set.
// When fetching fails and a cache exists, the stale cache is returned along
// with stale=true.
func (c *Client) Load(ctx context.Context, refresh bool) (collections []models.Collection, stale bool, err error) {
	cached, cacheErr := c.Cached()
	if cacheErr != nil && c.logger != nil {
		c.logger.Warn("ignoring unreadable explore cache", "err", cacheErr)
	}

	if !refresh && cached != nil {
		return cached.Collections, false, nil
	}

	collections, err = c.Collections(ctx)
	if err == nil {
		return collections, false, nil
	}
	if cached != nil {
		if c.logger != nil {
			c.logger.Warn("explore fetch failed, using cache", "err", err, "fetched_at", cached.FetchedAt)
		}
		return cached.Collections, true, nil
	}
	return nil, false, err
}
