package store

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/campus/internal/cache"
	"github.com/yanizio/campus/internal/metrics"
)

// CourseSource is the read side of the catalog.  *Store satisfies it.
type CourseSource interface {
	ListCourses(ctx context.Context, sort, dept string) ([]Course, error)
	CourseByCode(ctx context.Context, code string) (*Course, error)
	Departments(ctx context.Context) ([]string, error)
}

// loadTimeout bounds a shared load, which no longer follows any one
// caller's context.
const loadTimeout = 10 * time.Second

// CachedCatalog memoises course listings for a short TTL.  Concurrent
// misses for the same key share one database round-trip that outlives the
// request which started it.
type CachedCatalog struct {
	src   CourseSource
	lru   *cache.LRU
	group singleflight.Group
}

// NewCachedCatalog wraps src.  size bounds the number of distinct
// (sort, dept) listings kept; ttl bounds their age.
func NewCachedCatalog(src CourseSource, size int, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{src: src, lru: cache.New(size, ttl)}
}

// ListCourses serves from cache when possible.  Callers must not modify
// the returned slice.
func (c *CachedCatalog) ListCourses(ctx context.Context, sort, dept string) ([]Course, error) {
	key := "list|" + NormalizeSort(sort) + "|" + dept
	if v, ok := c.lru.Get(key); ok {
		metrics.CatalogCacheHitsTotal.Inc()
		return v.([]Course), nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lru.Get(key); ok {
			return v, nil
		}
		lctx, cancel := detach(ctx)
		defer cancel()
		rows, err := c.src.ListCourses(lctx, sort, dept)
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, rows)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Course), nil
}

// CourseByCode passes through; single-row lookups are cheap.
func (c *CachedCatalog) CourseByCode(ctx context.Context, code string) (*Course, error) {
	return c.src.CourseByCode(ctx, code)
}

// Departments is cached under its own key.
func (c *CachedCatalog) Departments(ctx context.Context) ([]string, error) {
	const key = "departments"
	if v, ok := c.lru.Get(key); ok {
		metrics.CatalogCacheHitsTotal.Inc()
		return v.([]string), nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lru.Get(key); ok {
			return v, nil
		}
		lctx, cancel := detach(ctx)
		defer cancel()
		d, err := c.src.Departments(lctx)
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, d)
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Invalidate drops every cached listing.  cmd/web calls it on SIGHUP.
func (c *CachedCatalog) Invalidate() { c.lru.Purge() }

// detach keeps ctx values (request id for logging) but drops its
// cancellation, so one disconnecting client cannot fail the callers
// sharing its load.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
}
