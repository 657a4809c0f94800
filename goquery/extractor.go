// Package goquery implements wxclip.Extractor for WeChat public-account
// pages using ordered CSS selector strategies: for each field the
// candidates are tried in order and the first non-empty result wins.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/wxclip/wxclip"
	"golang.org/x/net/html"
)

// Ensure Extractor implements wxclip.Extractor at compile time.
var _ wxclip.Extractor = (*Extractor)(nil)

// noiseSelector matches elements that never belong to article content:
// executable nodes plus the share/reward/QR widgets injected into the
// body container.
const noiseSelector = "script, style, noscript, " +
	"#js_pc_qr_code, .qr_code_pc_outer, .reward_area, .reward_qrcode_area, .rich_media_tool"

// Extractor extracts structured articles from page HTML. Callers may
// replace or extend the strategy slices to cover page variants without
// forking the extraction logic.
type Extractor struct {
	Title   []TextStrategy
	Author  []TextStrategy
	Date    []TextStrategy
	Content []ContentStrategy
}

// NewExtractor creates an Extractor with the default strategies.
func NewExtractor() *Extractor {
	return &Extractor{
		Title:   DefaultTitleStrategies(),
		Author:  DefaultAuthorStrategies(),
		Date:    DefaultDateStrategies(),
		Content: DefaultContentStrategies(),
	}
}

// Extract locates the title, author, date and body container, strips
// noise from the body subtree, resolves image references against
// baseURL and collects them in document order.
func (e *Extractor) Extract(pageHTML, baseURL string) (*wxclip.Article, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EINVALID, "failed to parse HTML: %v", err)
	}

	content := e.findContent(doc)
	if content == nil {
		return nil, wxclip.Errorf(wxclip.ENOTFOUND, "no article body found in %s", baseURL)
	}

	article := &wxclip.Article{
		URL:         baseURL,
		Title:       firstText(doc, e.Title),
		Author:      firstText(doc, e.Author),
		PublishDate: firstText(doc, e.Date),
		Content:     content.Get(0),
	}

	normalize(content)
	collectImages(content, base, article)

	return article, nil
}

func (e *Extractor) findContent(doc *goquery.Document) *goquery.Selection {
	for _, strategy := range e.Content {
		if sel := strategy.Fn(doc); sel != nil {
			return sel
		}
	}
	return nil
}

func firstText(doc *goquery.Document, strategies []TextStrategy) string {
	for _, strategy := range strategies {
		if text := strategy.Fn(doc); text != "" {
			return text
		}
	}
	return ""
}

// normalize removes noise elements and comment nodes from the body
// subtree in place.
func normalize(content *goquery.Selection) {
	content.Find(noiseSelector).Remove()
	for _, node := range content.Nodes {
		stripComments(node)
	}
}

func stripComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			stripComments(c)
		}
		c = next
	}
}

// collectImages resolves each image reference in document order and
// writes it back to src, so downstream rewriting and downloading see
// one consistent attribute. Lazy-loaded pages keep the real URL in
// data-src or data-original rather than src.
func collectImages(content *goquery.Selection, base *url.URL, article *wxclip.Article) {
	content.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src := firstAttr(sel, "data-src", "data-original", "src")
		if src == "" {
			return
		}
		resolved := resolveURL(base, src)
		if resolved == "" {
			return
		}
		sel.SetAttr("src", resolved)
		article.AddImage(resolved)
	})
}

func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if val, ok := sel.Attr(name); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// resolveURL resolves a possibly-relative reference against the page
// URL. Returns "" when the reference cannot be parsed.
func resolveURL(base *url.URL, ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}
