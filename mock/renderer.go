package mock

import (
	"github.com/wxclip/wxclip"
)

var _ wxclip.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of wxclip.Renderer.
type Renderer struct {
	RenderFn    func(article *wxclip.Article) ([]byte, error)
	ExtensionFn func() string
}

func (r *Renderer) Render(article *wxclip.Article) ([]byte, error) {
	return r.RenderFn(article)
}

func (r *Renderer) Extension() string {
	return r.ExtensionFn()
}
