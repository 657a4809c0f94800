// Package gofeed discovers article URLs from RSS and Atom feeds.
package gofeed

import (
	"context"

	"github.com/mmcdole/gofeed"
	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/bloom"
)

var _ wxclip.URLSource = (*FeedSource)(nil)

// FeedSource discovers article URLs from a feed. Bridge services
// republish public account archives as RSS or Atom, which makes a
// feed URL a convenient batch input.
type FeedSource struct {
	parser *gofeed.Parser
}

// NewFeedSource creates a FeedSource.
func NewFeedSource() *FeedSource {
	return &FeedSource{parser: gofeed.NewParser()}
}

// Discover fetches the feed at ref and returns item links in feed
// order. Items without a link are skipped and repeated links collapse
// to their first occurrence.
func (s *FeedSource) Discover(ctx context.Context, ref string) ([]string, error) {
	feed, err := s.parser.ParseURLWithContext(ref, ctx)
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EUNAVAILABLE, "parse feed %s: %s", ref, err)
	}

	seen := bloom.NewDefaultFilter()
	var urls []string
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		if seen.Seen(item.Link) {
			continue
		}
		urls = append(urls, item.Link)
	}
	return urls, nil
}
