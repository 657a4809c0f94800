// Package trafilatura implements a generic wxclip.Extractor for
// ordinary web pages. It backs the CLI's generic engine; platform
// pages are better served by the goquery extractor.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/wxclip/wxclip"
	"golang.org/x/net/html"
)

// Ensure Extractor implements wxclip.Extractor at compile time.
var _ wxclip.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs trafilatura's content extraction and adopts its content
// node as the article body. Image references inside the body are
// resolved against baseURL and collected in document order.
func (e *Extractor) Extract(pageHTML, baseURL string) (*wxclip.Article, error) {
	if pageHTML == "" {
		return nil, wxclip.Errorf(wxclip.EINVALID, "empty HTML input")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EINVALID, "invalid base URL: %v", err)
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		OriginalURL:    base,
	}

	result, err := trafilatura.Extract(strings.NewReader(pageHTML), opts)
	if err != nil {
		return nil, wxclip.Errorf(wxclip.ENOTFOUND, "no article body found in %s: %v", baseURL, err)
	}
	if result.ContentNode == nil {
		return nil, wxclip.Errorf(wxclip.ENOTFOUND, "no article body found in %s", baseURL)
	}

	article := &wxclip.Article{
		URL:     baseURL,
		Title:   result.Metadata.Title,
		Author:  result.Metadata.Author,
		Content: result.ContentNode,
	}
	if !result.Metadata.Date.IsZero() {
		article.PublishDate = result.Metadata.Date.Format("2006-01-02")
	}

	collectImages(result.ContentNode, base, article)

	return article, nil
}

// collectImages resolves and records img references the same way the
// platform extractor does, so downstream image resolution behaves
// identically for both engines.
func collectImages(n *html.Node, base *url.URL, article *wxclip.Article) {
	if n.Type == html.ElementNode && n.Data == "img" {
		if src := imageSrc(n); src != "" {
			if resolved := resolveURL(base, src); resolved != "" {
				setAttr(n, "src", resolved)
				article.AddImage(resolved)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectImages(c, base, article)
	}
}

// imageSrc prefers lazy-load attributes over src, which often holds a
// placeholder.
func imageSrc(n *html.Node) string {
	for _, name := range []string{"data-src", "data-original", "src"} {
		for _, attr := range n.Attr {
			if attr.Key == name && strings.TrimSpace(attr.Val) != "" {
				return strings.TrimSpace(attr.Val)
			}
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func resolveURL(base *url.URL, ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}
