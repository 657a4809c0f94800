// Package fs provides file-based storage: artifact files named after
// article titles, downloaded images with URL-derived names, and the
// yaml settings file.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/wxclip/wxclip"
)

// Ensure ArtifactWriter implements wxclip.ArtifactWriter at compile time.
var _ wxclip.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter writes rendered artifacts into one output directory,
// naming files after the article's sanitized title. Safe for
// concurrent use by batch workers.
type ArtifactWriter struct {
	outdir string

	mu      sync.Mutex
	claimed map[string]string // base name -> claiming article URL
}

// NewArtifactWriter creates a writer rooted at outdir.
func NewArtifactWriter(outdir string) *ArtifactWriter {
	return &ArtifactWriter{
		outdir:  outdir,
		claimed: make(map[string]string),
	}
}

// WriteArtifact writes the artifact and returns its path. When two
// articles in one run share a sanitized title, later ones get a
// URL-derived suffix. The suffix depends only on the URL, so
// re-running the same batch rewrites the same files instead of
// accumulating numbered copies.
func (w *ArtifactWriter) WriteArtifact(article *wxclip.Article, data []byte, ext string) (string, error) {
	if err := os.MkdirAll(w.outdir, 0755); err != nil {
		return "", wxclip.Errorf(wxclip.EINTERNAL, "create output directory %s: %v", w.outdir, err)
	}

	path := filepath.Join(w.outdir, w.claimName(article)+"."+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", wxclip.Errorf(wxclip.EINTERNAL, "write artifact %s: %v", path, err)
	}
	return path, nil
}

func (w *ArtifactWriter) claimName(article *wxclip.Article) string {
	base := article.SafeTitle()

	w.mu.Lock()
	defer w.mu.Unlock()

	owner, taken := w.claimed[base]
	if !taken || owner == article.URL {
		w.claimed[base] = article.URL
		return base
	}
	suffixed := fmt.Sprintf("%s-%08x", base, uint32(xxhash.Sum64String(article.URL)))
	w.claimed[suffixed] = article.URL
	return suffixed
}
