package fs_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/fs"
	"github.com/wxclip/wxclip/mock"
	"golang.org/x/net/html"
)

// articleWithImages builds an article whose content holds one img tag
// per reference.
func articleWithImages(refs ...string) *wxclip.Article {
	content := &html.Node{Type: html.ElementNode, Data: "div"}
	for _, ref := range refs {
		content.AppendChild(&html.Node{
			Type: html.ElementNode,
			Data: "img",
			Attr: []html.Attribute{{Key: "src", Val: ref}},
		})
	}
	return &wxclip.Article{
		URL:     "https://mp.weixin.qq.com/s/abc123",
		Title:   "图片测试",
		Content: content,
		Images:  append([]string(nil), refs...),
	}
}

func localImagePath(remote string) string {
	return fmt.Sprintf("images/%016x.jpg", xxhash.Sum64String(remote))
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("downloads images and rewrites references", func(t *testing.T) {
		t.Parallel()

		remote1 := "https://mmbiz.qpic.cn/mmbiz_jpg/first/640"
		remote2 := "https://mmbiz.qpic.cn/mmbiz_jpg/second/640"

		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, url string) ([]byte, string, error) {
				return []byte("data for " + url), "image/jpeg", nil
			},
		}
		resolver := fs.NewResolver(fetcher, fs.NewImageStore(t.TempDir()))

		article := articleWithImages(remote1, remote2)
		warnings, err := resolver.Resolve(context.Background(), article)

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, []string{localImagePath(remote1), localImagePath(remote2)}, article.Images)

		rendered, err := article.ContentHTML()
		require.NoError(t, err)
		assert.Contains(t, rendered, localImagePath(remote1))
		assert.Contains(t, rendered, localImagePath(remote2))
		assert.NotContains(t, rendered, remote1)
		assert.NotContains(t, rendered, remote2)
	})

	t.Run("failed downloads warn and leave the reference untouched", func(t *testing.T) {
		t.Parallel()

		remote1 := "https://mmbiz.qpic.cn/mmbiz_jpg/good/640"
		remote2 := "https://mmbiz.qpic.cn/mmbiz_jpg/bad/640"

		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, url string) ([]byte, string, error) {
				if url == remote2 {
					return nil, "", wxclip.Errorf(wxclip.EUNAVAILABLE, "fetch image: connection reset")
				}
				return []byte("data"), "image/jpeg", nil
			},
		}
		resolver := fs.NewResolver(fetcher, fs.NewImageStore(t.TempDir()),
			fs.WithResolverRetryDelays(nil))

		article := articleWithImages(remote1, remote2)
		warnings, err := resolver.Resolve(context.Background(), article)

		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], remote2)

		assert.Equal(t, []string{localImagePath(remote1), remote2}, article.Images)

		rendered, err := article.ContentHTML()
		require.NoError(t, err)
		assert.Contains(t, rendered, localImagePath(remote1))
		assert.Contains(t, rendered, remote2)
	})

	t.Run("skips references that are already local", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, _ string) ([]byte, string, error) {
				calls++
				return []byte("data"), "image/jpeg", nil
			},
		}
		resolver := fs.NewResolver(fetcher, fs.NewImageStore(t.TempDir()))

		article := articleWithImages("images/0011223344556677.jpg")
		warnings, err := resolver.Resolve(context.Background(), article)

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Zero(t, calls)
		assert.Equal(t, []string{"images/0011223344556677.jpg"}, article.Images)
	})

	t.Run("retries failed downloads", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, _ string) ([]byte, string, error) {
				calls++
				if calls == 1 {
					return nil, "", wxclip.Errorf(wxclip.EUNAVAILABLE, "fetch image: timeout")
				}
				return []byte("data"), "image/jpeg", nil
			},
		}
		resolver := fs.NewResolver(fetcher, fs.NewImageStore(t.TempDir()),
			fs.WithResolverRetryDelays([]time.Duration{time.Millisecond}))

		remote := "https://mmbiz.qpic.cn/mmbiz_jpg/flaky/640"
		article := articleWithImages(remote)
		warnings, err := resolver.Resolve(context.Background(), article)

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, 2, calls)
		assert.Equal(t, []string{localImagePath(remote)}, article.Images)
	})

	t.Run("waits on the domain limiter per image", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var hosts []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, host string) error {
				mu.Lock()
				defer mu.Unlock()
				hosts = append(hosts, host)
				return nil
			},
		}
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, _ string) ([]byte, string, error) {
				return []byte("data"), "image/jpeg", nil
			},
		}
		resolver := fs.NewResolver(fetcher, fs.NewImageStore(t.TempDir()),
			fs.WithResolverLimiter(limiter))

		article := articleWithImages(
			"https://mmbiz.qpic.cn/mmbiz_jpg/first/640",
			"https://mmbiz.qpic.cn/mmbiz_jpg/second/640",
		)
		_, err := resolver.Resolve(context.Background(), article)

		require.NoError(t, err)
		assert.Equal(t, []string{"mmbiz.qpic.cn", "mmbiz.qpic.cn"}, hosts)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, _ string) ([]byte, string, error) {
				return []byte("data"), "image/jpeg", nil
			},
		}
		resolver := fs.NewResolver(fetcher, fs.NewImageStore(t.TempDir()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		article := articleWithImages("https://mmbiz.qpic.cn/mmbiz_jpg/first/640")
		_, err := resolver.Resolve(ctx, article)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("resolving twice is a no-op", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, _ string) ([]byte, string, error) {
				calls++
				return []byte("data"), "image/jpeg", nil
			},
		}
		resolver := fs.NewResolver(fetcher, fs.NewImageStore(t.TempDir()))

		article := articleWithImages("https://mmbiz.qpic.cn/mmbiz_jpg/first/640")

		_, err := resolver.Resolve(context.Background(), article)
		require.NoError(t, err)
		require.Equal(t, 1, calls)

		imagesAfterFirst := append([]string(nil), article.Images...)

		_, err = resolver.Resolve(context.Background(), article)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, imagesAfterFirst, article.Images)
	})
}
