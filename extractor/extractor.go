package extractor

import (
	"fmt"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// Article is the readable content extracted from a web page, used to
// prefill admin news drafts.
type Article struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
	Image   string `json:"image"`
	SiteURL string `json:"site_url"`
}

// FromURL fetches a page and extracts its readable article.
func FromURL(rawURL string, timeout time.Duration) (*Article, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("extractor: invalid article url %q", rawURL)
	}

	art, err := readability.FromURL(rawURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}

	return &Article{
		Title:   art.Title,
		Excerpt: art.Excerpt,
		Content: art.TextContent,
		Image:   art.Image,
		SiteURL: rawURL,
	}, nil
}
