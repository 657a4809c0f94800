package mock

import (
	"context"

	"github.com/wxclip/wxclip"
)

var _ wxclip.ImageResolver = (*ImageResolver)(nil)

// ImageResolver is a mock implementation of wxclip.ImageResolver.
type ImageResolver struct {
	ResolveFn func(ctx context.Context, article *wxclip.Article) ([]string, error)
}

func (r *ImageResolver) Resolve(ctx context.Context, article *wxclip.Article) ([]string, error) {
	return r.ResolveFn(ctx, article)
}
