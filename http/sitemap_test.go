package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wxclip/wxclip"
	wxcliphttp "github.com/wxclip/wxclip/http"
)

func TestSitemapSource_Discover_FromRobotsTxt(t *testing.T) {
	t.Parallel()

	robotsTxt := `User-agent: *
Disallow: /private/
Sitemap: {{BASE}}/sitemap.xml
`
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/intro</loc></url>
  <url><loc>{{BASE}}/blog/guide</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/robots.txt":  robotsTxt,
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	src := wxcliphttp.NewSitemapSource(srv.Client())
	urls, err := src.Discover(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, srv.URL+"/blog/intro")
	assert.Contains(t, urls, srv.URL+"/blog/guide")
}

func TestSitemapSource_Discover_FallbackToSitemapXML(t *testing.T) {
	t.Parallel()

	// No robots.txt, should fall back to /sitemap.xml
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/page1</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	src := wxcliphttp.NewSitemapSource(srv.Client())
	urls, err := src.Discover(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Len(t, urls, 1)
	assert.Contains(t, urls, srv.URL+"/page1")
}

func TestSitemapSource_Discover_SitemapIndex(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-posts.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-news.xml</loc></sitemap>
</sitemapindex>`

	sitemapPosts := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/posts/intro</loc></url>
</urlset>`

	sitemapNews := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/news/launch</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":       sitemapIndex,
		"/sitemap-posts.xml": sitemapPosts,
		"/sitemap-news.xml":  sitemapNews,
	})
	defer srv.Close()

	src := wxcliphttp.NewSitemapSource(srv.Client())
	urls, err := src.Discover(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, srv.URL+"/posts/intro")
	assert.Contains(t, urls, srv.URL+"/news/launch")
}

func TestSitemapSource_Discover_ScopedToPath(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/post1</loc></url>
  <url><loc>{{BASE}}/shop/item1</loc></url>
  <url><loc>{{BASE}}/blogroll</loc></url>
  <url><loc>{{BASE}}/blog/post2</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	src := wxcliphttp.NewSitemapSource(srv.Client())
	urls, err := src.Discover(context.Background(), srv.URL+"/blog")

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog/post1", srv.URL + "/blog/post2"}, urls)
}

func TestSitemapSource_Discover_MultipleSitemapsInRobots(t *testing.T) {
	t.Parallel()

	robotsTxt := `User-agent: *
Sitemap: {{BASE}}/sitemap1.xml
Sitemap: {{BASE}}/sitemap2.xml
`
	sitemap1 := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/page1</loc></url>
</urlset>`

	sitemap2 := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/page2</loc></url>
  <url><loc>{{BASE}}/page1</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/robots.txt":   robotsTxt,
		"/sitemap1.xml": sitemap1,
		"/sitemap2.xml": sitemap2,
	})
	defer srv.Close()

	src := wxcliphttp.NewSitemapSource(srv.Client())
	urls, err := src.Discover(context.Background(), srv.URL)

	require.NoError(t, err)
	// page1 appears in both sitemaps but is reported once.
	assert.Equal(t, []string{srv.URL + "/page1", srv.URL + "/page2"}, urls)
}

func TestSitemapSource_Discover_NoSitemapFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	src := wxcliphttp.NewSitemapSource(srv.Client())
	urls, err := src.Discover(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSitemapSource_Discover_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	src := wxcliphttp.NewSitemapSource(srv.Client())
	_, err := src.Discover(ctx, srv.URL)

	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSitemapSource_Discover_InvalidReference(t *testing.T) {
	t.Parallel()

	src := wxcliphttp.NewSitemapSource(nil)
	_, err := src.Discover(context.Background(), "not a url")

	require.Error(t, err)
	assert.Equal(t, wxclip.EINVALID, wxclip.ErrorCode(err))
}

// newTestServer creates a test HTTP server with the given path->content mapping.
// Content strings may contain {{BASE}} which is replaced with the server URL.
func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		// Replace {{BASE}} with actual server URL
		body = replaceBaseURL(body, srv.URL)

		// Set content type based on path
		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(body))
	}))

	return srv
}

func replaceBaseURL(content, baseURL string) string {
	return regexp.MustCompile(`\{\{BASE\}\}`).ReplaceAllString(content, baseURL)
}
