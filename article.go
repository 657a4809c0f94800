package wxclip

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/html"
)

// Article represents the structured content of a single public-account
// article page.
type Article struct {
	// URL is the article URL the record was extracted from.
	URL string

	// Title, Author and PublishDate are page-displayed strings.
	// Author and PublishDate may be empty when the page omits them.
	Title       string
	Author      string
	PublishDate string

	// Content is the located article body subtree. Renderers serialize
	// it on demand; no parallel string form is stored.
	Content *html.Node

	// Images holds the article's image references in document order,
	// without duplicates. After image resolution, downloaded entries
	// are replaced with local relative paths.
	Images []string
}

// Validate returns an error if the article is missing required fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Content == nil {
		return Errorf(EINVALID, "article content required")
	}
	return nil
}

// AddImage appends an image reference unless it is already present,
// preserving first-appearance order.
func (a *Article) AddImage(ref string) {
	for _, existing := range a.Images {
		if existing == ref {
			return
		}
	}
	a.Images = append(a.Images, ref)
}

// ContentHTML serializes the body subtree to an HTML fragment. The
// container element itself is not included, only its children.
func (a *Article) ContentHTML() (string, error) {
	if a.Content == nil {
		return "", nil
	}
	var b strings.Builder
	for c := a.Content.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", Errorf(EINTERNAL, "render content tree: %v", err)
		}
	}
	return b.String(), nil
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]+`)
	whitespaceRuns      = regexp.MustCompile(`\s+`)
)

// maxFilenameLen bounds artifact base names in runes, not bytes, so CJK
// titles truncate cleanly.
const maxFilenameLen = 120

// SafeTitle returns the title in a form safe to use as a file name:
// path separators and shell-hostile characters replaced with
// underscores, control characters dropped, whitespace collapsed,
// length capped. A missing title falls back to a stable name derived
// from the URL so the result is never empty.
func (a *Article) SafeTitle() string {
	name := unsafeFilenameChars.ReplaceAllString(a.Title, "_")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) > maxFilenameLen {
		name = strings.TrimSpace(string(runes[:maxFilenameLen]))
	}
	if name == "" {
		return fmt.Sprintf("article-%016x", xxhash.Sum64String(a.URL))
	}
	return name
}
