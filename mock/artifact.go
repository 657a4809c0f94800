package mock

import (
	"github.com/wxclip/wxclip"
)

var _ wxclip.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of wxclip.ArtifactWriter.
type ArtifactWriter struct {
	WriteArtifactFn func(article *wxclip.Article, data []byte, ext string) (string, error)
}

func (w *ArtifactWriter) WriteArtifact(article *wxclip.Article, data []byte, ext string) (string, error) {
	return w.WriteArtifactFn(article, data, ext)
}
