package wxclip

import "context"

// URLSource expands a collection reference (feed URL, sitemap URL)
// into individual article URLs.
type URLSource interface {
	// Discover returns the collection's article URLs in source order,
	// de-duplicated.
	Discover(ctx context.Context, ref string) ([]string, error)
}
