package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextStrategy produces one text field (title, author or date) from a
// parsed page. Fn returns "" when the strategy does not apply.
type TextStrategy struct {
	Name string
	Fn   func(doc *goquery.Document) string
}

// ContentStrategy locates the article body container. Fn returns nil
// when the strategy does not apply.
type ContentStrategy struct {
	Name string
	Fn   func(doc *goquery.Document) *goquery.Selection
}

// Date shapes seen on article pages: "2024-01-15", "2024/1/15" and
// "2024年1月15日".
var (
	dateNumericRe = regexp.MustCompile(`\d{4}[-/]\d{1,2}[-/]\d{1,2}`)
	dateCJKRe     = regexp.MustCompile(`\d{4}年\d{1,2}月`)
)

// metaZoneSelector matches the byline block under the title. The id
// and class names differ between page template generations.
const metaZoneSelector = "#meta_content, .rich_media_meta_list, .rich_media_meta_text"

// DefaultTitleStrategies returns the title candidates in fallback
// order, covering both the current page template (h1#activity-name)
// and the older one (h2.rich_media_title), then page metadata.
func DefaultTitleStrategies() []TextStrategy {
	return []TextStrategy{
		{Name: "activity-name", Fn: selectorText("h1#activity-name")},
		{Name: "rich_media_title", Fn: selectorText("h2.rich_media_title, h1.rich_media_title")},
		{Name: "og:title", Fn: metaContent(`meta[property="og:title"], meta[name="og:title"]`)},
		{Name: "title-tag", Fn: selectorText("title")},
	}
}

// DefaultAuthorStrategies returns the author candidates in fallback
// order: the account name link, nickname spans, then any non-date text
// in the byline block.
func DefaultAuthorStrategies() []TextStrategy {
	return []TextStrategy{
		{Name: "js_name", Fn: selectorText("#js_name")},
		{Name: "meta_nickname", Fn: selectorText(".rich_media_meta_nickname")},
		{Name: "meta-zone-scan", Fn: metaZoneScan(func(text string) bool {
			return !looksLikeDate(text)
		})},
	}
}

// DefaultDateStrategies returns the publish date candidates in
// fallback order: the publish_time element, time spans, then any
// date-shaped text in the byline block.
func DefaultDateStrategies() []TextStrategy {
	return []TextStrategy{
		{Name: "publish_time", Fn: selectorText("#publish_time")},
		{Name: "meta_time", Fn: selectorText(".rich_media_meta_time, .js_date")},
		{Name: "meta-zone-scan", Fn: metaZoneScan(looksLikeDate)},
	}
}

// DefaultContentStrategies returns the body container candidates in
// fallback order. There is deliberately no whole-page fallback: a page
// matching none of these has no recognizable article body.
func DefaultContentStrategies() []ContentStrategy {
	return []ContentStrategy{
		{Name: "js_content", Fn: selectorNode("#js_content")},
		{Name: "rich_media_content", Fn: selectorNode(".rich_media_content")},
	}
}

// selectorText returns the trimmed text of the first element matching
// the selector.
func selectorText(selector string) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		return strings.TrimSpace(doc.Find(selector).First().Text())
	}
}

// metaContent returns the trimmed content attribute of the first
// matching meta element.
func metaContent(selector string) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		content, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(content)
	}
}

// selectorNode returns the first element matching the selector.
func selectorNode(selector string) func(*goquery.Document) *goquery.Selection {
	return func(doc *goquery.Document) *goquery.Selection {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			return nil
		}
		return sel
	}
}

// metaZoneScan walks the byline block's inline elements and returns
// the first trimmed text accepted by match.
func metaZoneScan(match func(string) bool) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		var found string
		doc.Find(metaZoneSelector).First().Find("span, a, em").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.TrimSpace(sel.Text())
			if text == "" || !match(text) {
				return true
			}
			found = text
			return false
		})
		return found
	}
}

func looksLikeDate(text string) bool {
	return dateNumericRe.MatchString(text) || dateCJKRe.MatchString(text)
}
