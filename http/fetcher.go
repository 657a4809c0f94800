// Package http provides HTTP-based implementations of wxclip.Fetcher
// and wxclip.ImageFetcher, plus a sitemap-backed wxclip.URLSource.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/wxclip/wxclip"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent mimics a desktop Chrome browser. Article pages serve
// a stripped-down variant to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements the domain interfaces at compile time.
var (
	_ wxclip.Fetcher      = (*Fetcher)(nil)
	_ wxclip.ImageFetcher = (*Fetcher)(nil)
)

// Fetcher retrieves article pages and images using plain HTTP requests.
// Pages behind login walls or signed URLs are out of scope; those
// requests surface as EUNAVAILABLE errors like any other upstream
// failure.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	referer   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithReferer overrides the Referer header sent with page requests.
// Some articles refuse requests without one.
func WithReferer(referer string) Option {
	return func(f *Fetcher) {
		f.referer = referer
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		referer:   "https://mp.weixin.qq.com/",
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the article page at the given URL. Redirects are
// followed; the returned page records the final URL and status.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*wxclip.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EINVALID, "invalid URL %q: %v", url, err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, wxclip.Errorf(wxclip.EUNAVAILABLE, "fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return &wxclip.Page{
		URL:        url,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

// FetchImage downloads an image and reports the server's content type.
func (f *Fetcher) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", wxclip.Errorf(wxclip.EINVALID, "invalid image URL %q: %v", url, err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", wxclip.Errorf(wxclip.EUNAVAILABLE, "fetch image %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", wxclip.Errorf(wxclip.EUNAVAILABLE, "fetch image %s: HTTP %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", wxclip.Errorf(wxclip.EUNAVAILABLE, "read image %s: %v", url, err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	if f.referer != "" {
		req.Header.Set("Referer", f.referer)
	}
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
