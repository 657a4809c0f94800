// Package mock provides function-field mock implementations of the
// root interfaces for use in tests.
package mock

import (
	"context"

	"github.com/wxclip/wxclip"
)

var _ wxclip.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of wxclip.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*wxclip.Page, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*wxclip.Page, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ wxclip.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of wxclip.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) ([]byte, string, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	return f.FetchImageFn(ctx, url)
}
