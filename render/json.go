package render

import (
	"encoding/json"

	"github.com/wxclip/wxclip"
)

// Ensure JSONRenderer implements wxclip.Renderer at compile time.
var _ wxclip.Renderer = (*JSONRenderer)(nil)

// articleJSON is the structured artifact shape. The images field holds
// the article's references as they stand at render time: local paths
// for downloaded images, remote URLs otherwise.
type articleJSON struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Date            string   `json:"date"`
	ContentHTML     string   `json:"content_html"`
	ContentMarkdown string   `json:"content_markdown"`
	Images          []string `json:"images"`
}

// JSONRenderer serializes an article with both HTML and markdown views
// of the body.
type JSONRenderer struct {
	conv wxclip.Converter
}

// NewJSONRenderer creates a JSONRenderer using the given converter for
// the markdown view.
func NewJSONRenderer(conv wxclip.Converter) *JSONRenderer {
	return &JSONRenderer{conv: conv}
}

// Render produces the JSON artifact.
func (r *JSONRenderer) Render(article *wxclip.Article) ([]byte, error) {
	contentHTML, err := article.ContentHTML()
	if err != nil {
		return nil, err
	}
	contentMarkdown, err := r.conv.ConvertNode(article.Content)
	if err != nil {
		return nil, err
	}

	images := article.Images
	if images == nil {
		images = []string{}
	}

	data, err := json.MarshalIndent(articleJSON{
		URL:             article.URL,
		Title:           article.Title,
		Author:          article.Author,
		Date:            article.PublishDate,
		ContentHTML:     contentHTML,
		ContentMarkdown: contentMarkdown,
		Images:          images,
	}, "", "  ")
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EINTERNAL, "marshal JSON artifact: %v", err)
	}

	return data, nil
}

// Extension returns the artifact file extension.
func (r *JSONRenderer) Extension() string {
	return "json"
}
