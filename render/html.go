package render

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/wxclip/wxclip"
)

// Ensure HTMLRenderer implements wxclip.Renderer at compile time.
var _ wxclip.Renderer = (*HTMLRenderer)(nil)

// pageTemplate is a minimal standalone document shell around the
// sanitized article body.
var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{if or .Author .Date}}<p>{{if .Author}}作者: {{.Author}}{{end}}{{if .Date}} 日期: {{.Date}}{{end}}</p>
{{end}}<p>原文: <a href="{{.URL}}">{{.URL}}</a></p>
<hr/>
{{.Content}}
</body>
</html>
`))

// HTMLRenderer serializes an article as a standalone HTML document.
// The article body passes through an HTML sanitizer: this is the one
// surface where remote markup reaches a file a browser will open.
type HTMLRenderer struct {
	policy *bluemonday.Policy
}

// NewHTMLRenderer creates an HTMLRenderer. The sanitizer allows the
// usual content elements plus relative image sources, so locally
// resolved images survive.
func NewHTMLRenderer() *HTMLRenderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowRelativeURLs(true)
	return &HTMLRenderer{policy: policy}
}

// Render produces the HTML artifact.
func (r *HTMLRenderer) Render(article *wxclip.Article) ([]byte, error) {
	contentHTML, err := article.ContentHTML()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title   string
		Author  string
		Date    string
		URL     string
		Content template.HTML
	}{
		Title:   article.Title,
		Author:  article.Author,
		Date:    article.PublishDate,
		URL:     article.URL,
		Content: template.HTML(r.policy.Sanitize(contentHTML)),
	})
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EINTERNAL, "render HTML artifact: %v", err)
	}

	return buf.Bytes(), nil
}

// Extension returns the artifact file extension.
func (r *HTMLRenderer) Extension() string {
	return "html"
}
