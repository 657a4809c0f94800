package wxclip

// ArtifactWriter persists rendered artifacts under an output directory.
type ArtifactWriter interface {
	// WriteArtifact writes data as "<SafeTitle>.<ext>" and returns the
	// path of the written file. When two articles in one run share a
	// sanitized title, later ones get a stable URL-derived suffix.
	WriteArtifact(article *Article, data []byte, ext string) (path string, err error)
}
