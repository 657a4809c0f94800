package fs

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wxclip/wxclip"
	"golang.org/x/net/html"
)

// Ensure Resolver implements wxclip.ImageResolver at compile time.
var _ wxclip.ImageResolver = (*Resolver)(nil)

// DefaultImageRetryDelays returns the backoff delays for image
// downloads. Images retry less patiently than pages: a missing
// illustration downgrades the artifact, it does not fail it.
func DefaultImageRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// Resolver downloads an article's remote images into an ImageStore and
// rewrites references in the content tree and image list to local
// relative paths.
type Resolver struct {
	fetcher wxclip.ImageFetcher
	store   *ImageStore
	limiter wxclip.DomainLimiter
	delays  []time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLimiter paces image downloads per host.
func WithResolverLimiter(limiter wxclip.DomainLimiter) ResolverOption {
	return func(r *Resolver) {
		r.limiter = limiter
	}
}

// WithResolverRetryDelays overrides the image retry backoff.
func WithResolverRetryDelays(delays []time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.delays = delays
	}
}

// NewResolver creates a Resolver that downloads through fetcher and
// stores into store.
func NewResolver(fetcher wxclip.ImageFetcher, store *ImageStore, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		store:   store,
		delays:  DefaultImageRetryDelays(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve downloads each distinct remote reference and substitutes
// local paths for the ones that succeed. Failed downloads leave the
// remote reference in place and produce a warning. References that are
// not absolute http(s) URLs are skipped, which makes a second Resolve
// over an already-resolved article a no-op.
func (r *Resolver) Resolve(ctx context.Context, article *wxclip.Article) ([]string, error) {
	var warnings []string
	localByRemote := make(map[string]string)

	for i, ref := range article.Images {
		if err := ctx.Err(); err != nil {
			return warnings, err
		}
		if !isRemote(ref) {
			continue
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx, hostOf(ref)); err != nil {
				return warnings, err
			}
		}

		data, contentType, err := r.fetchWithRetry(ctx, ref)
		if err != nil {
			if ctx.Err() != nil {
				return warnings, ctx.Err()
			}
			warnings = append(warnings, fmt.Sprintf("image %s: %s", ref, wxclip.ErrorMessage(err)))
			continue
		}

		relPath, err := r.store.Store(ref, data, contentType)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("image %s: %s", ref, wxclip.ErrorMessage(err)))
			continue
		}

		localByRemote[ref] = relPath
		article.Images[i] = relPath
	}

	if len(localByRemote) > 0 && article.Content != nil {
		rewriteImageSrcs(article.Content, localByRemote)
	}

	return warnings, nil
}

func (r *Resolver) fetchWithRetry(ctx context.Context, ref string) ([]byte, string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(r.delays); attempt++ {
		data, contentType, err := r.fetcher.FetchImage(ctx, ref)
		if err == nil {
			return data, contentType, nil
		}
		lastErr = err

		if attempt == len(r.delays) {
			break
		}
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(r.delays[attempt]):
		}
	}
	return nil, "", lastErr
}

// rewriteImageSrcs replaces img src attributes that match a downloaded
// remote URL with the local relative path.
func rewriteImageSrcs(n *html.Node, localByRemote map[string]string) {
	if n.Type == html.ElementNode && n.Data == "img" {
		for i := range n.Attr {
			if n.Attr[i].Key != "src" {
				continue
			}
			if local, ok := localByRemote[n.Attr[i].Val]; ok {
				n.Attr[i].Val = local
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteImageSrcs(c, localByRemote)
	}
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func hostOf(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return u.Host
}
