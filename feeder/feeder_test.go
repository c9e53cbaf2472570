package feeder_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyayasetu/feeder"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Court Updates</title>
    <link>https://example.com</link>
    <item>
      <title>Supreme Court rules on bail conditions</title>
      <link>https://example.com/a</link>
      <pubDate>Mon, 24 Aug 2026 09:00:00 +0530</pubDate>
    </item>
    <item>
      <title>High Court quashes FIR in property dispute</title>
      <link>https://example.com/b</link>
      <pubDate>Sun, 23 Aug 2026 09:00:00 +0530</pubDate>
    </item>
    <item>
      <title>Consumer forum fines builder</title>
      <link>https://example.com/c</link>
      <pubDate>Sat, 22 Aug 2026 09:00:00 +0530</pubDate>
    </item>
  </channel>
</rss>`

func TestFetchFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	items, err := feeder.FetchFeed(srv.URL, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Supreme Court rules on bail conditions", items[0].Title)
	assert.Equal(t, "https://example.com/a", items[0].Link)
	assert.False(t, items[0].PublishedAt.IsZero())
}

func TestFetchFeedLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	items, err := feeder.FetchFeed(srv.URL, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFetchFeedBadXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed"))
	}))
	defer srv.Close()

	_, err := feeder.FetchFeed(srv.URL, 0)
	assert.Error(t, err)
}
