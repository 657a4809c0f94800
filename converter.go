package wxclip

import "golang.org/x/net/html"

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)

	// ConvertNode transforms a parsed HTML subtree into Markdown
	// without an intermediate serialization pass.
	ConvertNode(node *html.Node) (string, error)
}
