package feed

import (
	"context"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/fetchcache"
)

// Source supplies raw feed bodies.
type Source interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// CachedSource serves feed bodies from a fetchcache before hitting the
// network. Fetch errors are never cached, so a feed that recovers is picked
// up on the next request.
type CachedSource struct {
	src   Source
	cache *fetchcache.Cache
}

// NewCachedSource wraps src with cache.
func NewCachedSource(src Source, cache *fetchcache.Cache) *CachedSource {
	return &CachedSource{src: src, cache: cache}
}

func (c *CachedSource) Fetch(ctx context.Context, url string) ([]byte, error) {
	if body, ok := c.cache.Get(url); ok {
		return body, nil
	}

	body, err := c.src.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	c.cache.Put(url, body)
	return body, nil
}
