package mock

import (
	"github.com/wxclip/wxclip"
)

var _ wxclip.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wxclip.Extractor.
type Extractor struct {
	ExtractFn func(pageHTML, baseURL string) (*wxclip.Article, error)
}

func (e *Extractor) Extract(pageHTML, baseURL string) (*wxclip.Article, error) {
	return e.ExtractFn(pageHTML, baseURL)
}
