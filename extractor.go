package wxclip

// Extractor builds a structured article from raw page HTML.
type Extractor interface {
	// Extract locates the title, author, publish date and body inside
	// the page and returns the assembled article. Image references in
	// the body are resolved against baseURL and collected in document
	// order. Returns ENOTFOUND when the page has no recognizable body
	// container.
	Extract(html, baseURL string) (*Article, error)
}
