package fetchcache_test

import (
	"testing"
	"time"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/fetchcache"
	"github.com/stretchr/testify/require"
)

func TestCacheHit(t *testing.T) {
	cache := fetchcache.New(10, time.Minute)

	_, ok := cache.Get("https://a.example/rss")
	require.False(t, ok)

	cache.Put("https://a.example/rss", []byte("<rss/>"))
	body, ok := cache.Get("https://a.example/rss")
	require.True(t, ok)
	require.Equal(t, "<rss/>", string(body))
}

func TestCacheTTLExpiry(t *testing.T) {
	cache := fetchcache.New(10, 20*time.Millisecond)
	cache.Put("https://a.example/rss", []byte("x"))
	time.Sleep(25 * time.Millisecond)

	_, ok := cache.Get("https://a.example/rss")
	require.False(t, ok)
}

func TestCacheCapacityEvictsOldest(t *testing.T) {
	cache := fetchcache.New(1, time.Minute)
	cache.Put("first", []byte("1"))
	cache.Put("second", []byte("2"))

	_, ok := cache.Get("first")
	require.False(t, ok)

	body, ok := cache.Get("second")
	require.True(t, ok)
	require.Equal(t, "2", string(body))
}

func TestCachePutRefreshes(t *testing.T) {
	cache := fetchcache.New(10, time.Minute)
	cache.Put("url", []byte("old"))
	cache.Put("url", []byte("new"))

	body, ok := cache.Get("url")
	require.True(t, ok)
	require.Equal(t, "new", string(body))
}
