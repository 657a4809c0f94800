package render

import (
	"strings"

	"github.com/wxclip/wxclip"
)

// Ensure MarkdownRenderer implements wxclip.Renderer at compile time.
var _ wxclip.Renderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer serializes an article as a markdown document with
// YAML frontmatter carrying the source URL and byline.
type MarkdownRenderer struct {
	conv wxclip.Converter
}

// NewMarkdownRenderer creates a MarkdownRenderer using the given
// converter for the article body.
func NewMarkdownRenderer(conv wxclip.Converter) *MarkdownRenderer {
	return &MarkdownRenderer{conv: conv}
}

// Render produces the markdown artifact.
func (r *MarkdownRenderer) Render(article *wxclip.Article) ([]byte, error) {
	body, err := r.conv.ConvertNode(article.Content)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(article.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(article.Title)
	if article.Author != "" {
		b.WriteString("\nauthor: ")
		b.WriteString(article.Author)
	}
	if article.PublishDate != "" {
		b.WriteString("\ndate: ")
		b.WriteString(article.PublishDate)
	}
	b.WriteString("\n---\n\n")
	if article.Title != "" {
		b.WriteString("# ")
		b.WriteString(article.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

// Extension returns the artifact file extension.
func (r *MarkdownRenderer) Extension() string {
	return "md"
}
