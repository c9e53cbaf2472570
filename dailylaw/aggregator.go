package dailylaw

import (
	"context"
	"errors"

	"nyayasetu/config"
	"nyayasetu/feeder"
	"nyayasetu/logger"
)

// ErrNoCandidates means even the unfiltered fallback pass produced nothing,
// so there is no material to generate from.
var ErrNoCandidates = errors.New("dailylaw: no news candidates available")

// FetchFunc fetches one feed. It matches feeder.FetchFeed and exists so
// tests can inject canned feeds.
type FetchFunc func(rssURL string, limit int) ([]feeder.NewsItem, error)

// Aggregator collects candidate news items across the configured feeds,
// excluding links that recent records already used.
type Aggregator struct {
	feeds         []config.FeedSource
	perFeed       int
	fallbackLimit int
	fetch         FetchFunc
}

func NewAggregator(cfg config.DailyLawConfig) *Aggregator {
	return &Aggregator{
		feeds:         cfg.Feeds,
		perFeed:       cfg.PerFeedLimit,
		fallbackLimit: cfg.FallbackPerFeedLimit,
		fetch:         feeder.FetchFeed,
	}
}

// NewAggregatorWithFetch builds an aggregator with a custom fetch function.
func NewAggregatorWithFetch(cfg config.DailyLawConfig, fetch FetchFunc) *Aggregator {
	a := NewAggregator(cfg)
	a.fetch = fetch
	return a
}

// Collect returns a flattened candidate list with used links filtered out.
// A single feed failing is logged and skipped. If filtering removes every
// item, feeds are re-read without the exclusion set and a smaller cut is
// taken so the synthesizer always receives a non-empty list.
func (a *Aggregator) Collect(ctx context.Context, usedLinks []string) ([]feeder.NewsItem, error) {
	used := make(map[string]struct{}, len(usedLinks))
	for _, l := range usedLinks {
		used[l] = struct{}{}
	}

	candidates := a.gather(ctx, used, a.perFeed)
	if len(candidates) > 0 {
		return candidates, nil
	}

	// Every fresh item was already used. Fall back to an unfiltered pass
	// rather than failing the day's generation.
	logger.Log.Warn("all recent feed items already used, falling back to unfiltered fetch")
	candidates = a.gather(ctx, nil, a.fallbackLimit)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return candidates, nil
}

func (a *Aggregator) gather(ctx context.Context, used map[string]struct{}, perFeed int) []feeder.NewsItem {
	var out []feeder.NewsItem
	for _, src := range a.feeds {
		if ctx.Err() != nil {
			return out
		}

		items, err := a.fetch(src.RSSURL, 0)
		if err != nil {
			logger.WarnWithFields("feed fetch failed, skipping", logger.Fields{
				"feed":  src.Name,
				"url":   src.RSSURL,
				"error": err.Error(),
			})
			continue
		}

		taken := 0
		for _, item := range items {
			if taken >= perFeed {
				break
			}
			if _, ok := used[item.Link]; ok {
				continue
			}
			out = append(out, item)
			taken++
		}
	}
	return out
}
