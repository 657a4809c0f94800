package wxclip

// Format identifies an artifact output format.
type Format string

// Supported artifact formats.
const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatHTML, FormatJSON:
		return Format(s), nil
	}
	return "", Errorf(EINVALID, "unknown format %q (supported: md, html, json)", s)
}

// Renderer serializes an article into one artifact format.
type Renderer interface {
	// Render produces the artifact bytes for the article. Rendering is
	// total for any valid article; only artifact I/O can fail.
	Render(article *Article) ([]byte, error)

	// Extension returns the artifact file extension without the dot.
	Extension() string
}
