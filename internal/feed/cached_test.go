package feed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/feed"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/fetchcache"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	body  []byte
	err   error
}

func (c *countingSource) Fetch(_ context.Context, _ string) ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.body, nil
}

func TestCachedSourceServesFromCache(t *testing.T) {
	src := &countingSource{body: []byte("<rss/>")}
	cached := feed.NewCachedSource(src, fetchcache.New(10, time.Minute))

	for i := 0; i < 3; i++ {
		body, err := cached.Fetch(context.Background(), "https://a.example/rss")
		require.NoError(t, err)
		require.Equal(t, "<rss/>", string(body))
	}

	require.Equal(t, 1, src.calls)
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	cached := feed.NewCachedSource(src, fetchcache.New(10, time.Minute))

	_, err := cached.Fetch(context.Background(), "https://a.example/rss")
	require.Error(t, err)
	_, err = cached.Fetch(context.Background(), "https://a.example/rss")
	require.Error(t, err)

	require.Equal(t, 2, src.calls)
}

func TestCachedSourceDistinctURLs(t *testing.T) {
	src := &countingSource{body: []byte("x")}
	cached := feed.NewCachedSource(src, fetchcache.New(10, time.Minute))

	_, err := cached.Fetch(context.Background(), "https://a.example/rss")
	require.NoError(t, err)
	_, err = cached.Fetch(context.Background(), "https://b.example/rss")
	require.NoError(t, err)

	require.Equal(t, 2, src.calls)
}
