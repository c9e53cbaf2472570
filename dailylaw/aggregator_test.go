package dailylaw

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyayasetu/config"
	"nyayasetu/feeder"
)

func testFeedConfig() config.DailyLawConfig {
	return config.DailyLawConfig{
		Feeds: []config.FeedSource{
			{Name: "feed-one", RSSURL: "https://one.example/rss"},
			{Name: "feed-two", RSSURL: "https://two.example/rss"},
		},
		PerFeedLimit:         5,
		FallbackPerFeedLimit: 2,
	}
}

func feedItems(prefix string, n int) []feeder.NewsItem {
	items := make([]feeder.NewsItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, feeder.NewsItem{
			Title: prefix,
			Link:  prefix + "/" + string(rune('a'+i)),
		})
	}
	return items
}

func TestCollectFiltersUsedLinks(t *testing.T) {
	agg := NewAggregatorWithFetch(testFeedConfig(), func(url string, limit int) ([]feeder.NewsItem, error) {
		return feedItems(url, 7), nil
	})

	used := []string{"https://one.example/rss/a", "https://two.example/rss/b"}
	items, err := agg.Collect(context.Background(), used)
	require.NoError(t, err)

	// 5 per feed after filtering, and no used link survives.
	assert.Len(t, items, 10)
	for _, it := range items {
		assert.NotContains(t, used, it.Link)
	}
}

func TestCollectFallsBackWhenEverythingIsUsed(t *testing.T) {
	agg := NewAggregatorWithFetch(testFeedConfig(), func(url string, limit int) ([]feeder.NewsItem, error) {
		return feedItems(url, 4), nil
	})

	// Exclude every item from both feeds.
	var used []string
	for _, url := range []string{"https://one.example/rss", "https://two.example/rss"} {
		for _, it := range feedItems(url, 4) {
			used = append(used, it.Link)
		}
	}

	items, err := agg.Collect(context.Background(), used)
	require.NoError(t, err)

	// Unfiltered fallback: top 2 per feed, even though all were used.
	assert.Len(t, items, 4)
}

func TestCollectSkipsFailingFeed(t *testing.T) {
	agg := NewAggregatorWithFetch(testFeedConfig(), func(url string, limit int) ([]feeder.NewsItem, error) {
		if url == "https://one.example/rss" {
			return nil, errors.New("connection refused")
		}
		return feedItems(url, 3), nil
	})

	items, err := agg.Collect(context.Background(), nil)
	require.NoError(t, err, "one failing feed must not fail aggregation")
	assert.Len(t, items, 3)
}

func TestCollectNoCandidatesAnywhere(t *testing.T) {
	agg := NewAggregatorWithFetch(testFeedConfig(), func(url string, limit int) ([]feeder.NewsItem, error) {
		return nil, errors.New("down")
	})

	_, err := agg.Collect(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}
