package server

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/blackwell-systems/repolens/internal/analyzer"
)

const defaultReportCacheSize = 256

// reportCache coalesces concurrent analyses of the same repository and
// keeps finished reports for a short time.
type reportCache struct {
	group singleflight.Group
	lru   *expirable.LRU[string, *analyzer.Report]
}

// newReportCache returns a cache holding up to size reports for ttl. A
// non-positive ttl disables memoisation but keeps request coalescing.
func newReportCache(size int, ttl time.Duration) *reportCache {
	c := &reportCache{}
	if ttl > 0 {
		if size <= 0 {
			size = defaultReportCacheSize
		}
		c.lru = expirable.NewLRU[string, *analyzer.Report](size, nil, ttl)
	}
	return c
}

// get returns the report for key, computing it with fn when it is neither
// cached nor in flight. shared reports whether the result was reused.
func (c *reportCache) get(ctx context.Context, key string, fn func(context.Context) (*analyzer.Report, error)) (r *analyzer.Report, shared bool, err error) {
	if c.lru != nil {
		if r, ok := c.lru.Get(key); ok {
			return r, true, nil
		}
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		// The computation outlives any single caller's cancellation.
		r, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if c.lru != nil {
			c.lru.Add(key, r)
		}
		return r, nil
	})
	if err != nil {
		return nil, shared, err
	}
	return v.(*analyzer.Report), shared, nil
}

// len returns the number of memoised reports.
func (c *reportCache) len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}
