// Package render provides the artifact renderers: markdown, HTML and
// JSON serializations of an extracted article. Renderers are total for
// any valid article; artifact I/O failures belong to the writer.
package render

import "github.com/wxclip/wxclip"

// New returns the renderer for the given format.
func New(format wxclip.Format, conv wxclip.Converter) (wxclip.Renderer, error) {
	switch format {
	case wxclip.FormatMarkdown:
		return NewMarkdownRenderer(conv), nil
	case wxclip.FormatHTML:
		return NewHTMLRenderer(), nil
	case wxclip.FormatJSON:
		return NewJSONRenderer(conv), nil
	}
	return nil, wxclip.Errorf(wxclip.EINVALID, "unknown format %q", format)
}
