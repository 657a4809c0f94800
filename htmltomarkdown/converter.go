// Package htmltomarkdown implements wxclip.Converter on top of the
// html-to-markdown library.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/wxclip/wxclip"
	"golang.org/x/net/html"
)

// Ensure Converter implements wxclip.Converter at compile time.
var _ wxclip.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
// Conversion is total: empty input yields empty Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(htmlStr string) (string, error) {
	if strings.TrimSpace(htmlStr) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(htmlStr)
	if err != nil {
		return "", wxclip.Errorf(wxclip.EINTERNAL, "convert to markdown: %v", err)
	}

	return result, nil
}

// ConvertNode transforms a parsed HTML subtree into Markdown.
func (c *Converter) ConvertNode(node *html.Node) (string, error) {
	if node == nil {
		return "", nil
	}

	result, err := c.conv.ConvertNode(node)
	if err != nil {
		return "", wxclip.Errorf(wxclip.EINTERNAL, "convert to markdown: %v", err)
	}

	return string(result), nil
}
