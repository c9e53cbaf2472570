package feeder

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

type NewsItem struct {
	Title       string
	Link        string
	PublishedAt time.Time
}

// FetchFeed fetches and parses one RSS/Atom feed.
// If limit is greater than 0, it returns only the first limit items;
// feeds are expected to be pre-ordered newest first.
func FetchFeed(rssURL string, limit int) ([]NewsItem, error) {
	httpClient := &http.Client{
		Timeout: 20 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // some regional news hosts serve broken cert chains
		},
	}

	fp := gofeed.NewParser()
	fp.Client = httpClient

	feed, err := fp.ParseURL(rssURL)
	if err != nil {
		return nil, err
	}

	var items []NewsItem
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		items = append(items, NewsItem{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: published,
		})
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}
