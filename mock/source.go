package mock

import (
	"context"

	"github.com/wxclip/wxclip"
)

var _ wxclip.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of wxclip.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, ref string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, ref string) ([]string, error) {
	return s.DiscoverFn(ctx, ref)
}
