package headlines

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"headlines/internal/domain/entity"
	"headlines/internal/observability/metrics"
)

// Fetcher retrieves headlines for a validated query from the news API.
type Fetcher interface {
	Fetch(ctx context.Context, q entity.Query) ([]entity.Article, error)
}

// Cache fronts a Fetcher with a fixed-TTL store keyed by query fingerprint.
// A live entry is always served without calling the Fetcher; failed fetches
// are never stored. Concurrent misses for one fingerprint share a single call.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	store   *cache.Cache
	flight  singleflight.Group
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(fetcher Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		// Expired entries are invisible to Get immediately; the janitor only frees memory.
		store: cache.New(ttl, 2*ttl),
	}
}

// TTL returns the entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// GetOrFetch returns the articles for q, calling the Fetcher only when no live
// entry exists. The returned slice is a copy and may be modified by the caller.
// Fetch errors are returned unchanged.
//
// The shared fetch is detached from ctx: a caller that gives up returns
// ctx.Err() while the fetch carries on for the remaining callers.
func (c *Cache) GetOrFetch(ctx context.Context, q entity.Query) ([]entity.Article, error) {
	key := Fingerprint(q)

	if articles, ok := c.lookup(key); ok {
		metrics.RecordCacheLookup(metrics.CacheHit)
		slog.Debug("headline cache hit", slog.String("fingerprint", key))
		return articles, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key, func() (interface{}, error) {
		return c.fill(fetchCtx, key, q)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		slog.Debug("headline lookup abandoned by caller",
			slog.String("fingerprint", key),
			slog.Any("error", ctx.Err()))
		return nil, ctx.Err()
	}

	if res.Err != nil {
		metrics.RecordCacheLookup(lookupResult(false, res.Shared))
		slog.Debug("headline fetch failed, nothing cached",
			slog.String("fingerprint", key),
			slog.Any("error", res.Err))
		return nil, res.Err
	}

	filled := res.Val.(flightResult)
	metrics.RecordCacheLookup(lookupResult(filled.cached, res.Shared))
	if !filled.cached {
		slog.Debug("headline cache filled",
			slog.String("fingerprint", key),
			slog.Bool("shared", res.Shared),
			slog.Duration("ttl", c.ttl))
	}
	return clone(filled.articles), nil
}

// flightResult is what one singleflight call hands to its callers. cached is
// set when the entry turned up between the first lookup and the flight.
type flightResult struct {
	articles []entity.Article
	cached   bool
}

func (c *Cache) fill(ctx context.Context, key string, q entity.Query) (flightResult, error) {
	if articles, ok := c.lookup(key); ok {
		return flightResult{articles: articles, cached: true}, nil
	}

	articles, err := c.fetcher.Fetch(ctx, q)
	if err != nil {
		return flightResult{}, err
	}

	stored := clone(articles)
	c.store.Set(key, stored, c.ttl)
	metrics.UpdateCacheEntries(c.Len())
	return flightResult{articles: stored}, nil
}

func lookupResult(cached, shared bool) string {
	switch {
	case cached:
		return metrics.CacheHit
	case shared:
		return metrics.CacheShared
	default:
		return metrics.CacheMiss
	}
}

// Len returns the number of unexpired entries.
func (c *Cache) Len() int {
	return len(c.store.Items())
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.store.Flush()
	metrics.UpdateCacheEntries(0)
}

func (c *Cache) lookup(key string) ([]entity.Article, bool) {
	v, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	return clone(v.([]entity.Article)), true
}

func clone(articles []entity.Article) []entity.Article {
	if articles == nil {
		return []entity.Article{}
	}
	out := make([]entity.Article, len(articles))
	copy(out, articles)
	return out
}
