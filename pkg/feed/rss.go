package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/newswatcher/pkg/domain"
)

// RSSProvider treats every category as an RSS/Atom feed url
type RSSProvider struct {
	feeds  map[string]string
	getter httpGetter
}

// NewRSSProvider makes a provider for the category -> feed url mapping
func NewRSSProvider(feeds map[string]string, timeout time.Duration, userAgent string) *RSSProvider {
	return &RSSProvider{feeds: feeds, getter: newHTTPGetter(timeout, userAgent, nil)}
}

// Fetch gets and parses the feed mapped to category
func (p *RSSProvider) Fetch(ctx context.Context, category string) ([]domain.Story, error) {
	url, ok := p.feeds[category]
	if !ok {
		return nil, fmt.Errorf("no feed for category %s", category)
	}

	body, err := p.getter.get(ctx, url, "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8")
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w: %v", url, ErrMalformed, err)
	}

	res := make([]domain.Story, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}
		s := domain.Story{
			Link:           item.Link,
			Title:          cleanText(item.Title),
			ContentSnippet: cleanText(item.Description),
			Source:         category,
			ImageURL:       itemImage(item),
		}
		if len(item.Categories) > 0 {
			s.Source = item.Categories[0]
		}
		switch {
		case item.UpdatedParsed != nil:
			s.Date = *item.UpdatedParsed
		case item.PublishedParsed != nil:
			s.Date = *item.PublishedParsed
		}
		res = append(res, s)
	}
	return res, nil
}

// itemImage picks the item image, an image enclosure or media:content / media:thumbnail
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}
	return ""
}
