package fs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/fs"
)

func TestArtifactWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ wxclip.ArtifactWriter = &fs.ArtifactWriter{}
}

func TestArtifactWriter_WriteArtifact(t *testing.T) {
	t.Parallel()

	t.Run("names the file after the sanitized title", func(t *testing.T) {
		t.Parallel()

		outdir := t.TempDir()
		w := fs.NewArtifactWriter(outdir)

		article := &wxclip.Article{
			URL:   "https://mp.weixin.qq.com/s/abc123",
			Title: "深度学习入门",
		}

		path, err := w.WriteArtifact(article, []byte("# 深度学习入门\n"), "md")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outdir, "深度学习入门.md"), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# 深度学习入门\n", string(content))
	})

	t.Run("replaces unsafe characters in the file name", func(t *testing.T) {
		t.Parallel()

		outdir := t.TempDir()
		w := fs.NewArtifactWriter(outdir)

		article := &wxclip.Article{
			URL:   "https://mp.weixin.qq.com/s/abc123",
			Title: "回顾: 2024/2025",
		}

		path, err := w.WriteArtifact(article, []byte("body"), "html")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outdir, "回顾_ 2024_2025.html"), path)
	})

	t.Run("suffixes the later of two articles sharing a title", func(t *testing.T) {
		t.Parallel()

		outdir := t.TempDir()
		w := fs.NewArtifactWriter(outdir)

		first := &wxclip.Article{URL: "https://mp.weixin.qq.com/s/first", Title: "周报"}
		second := &wxclip.Article{URL: "https://mp.weixin.qq.com/s/second", Title: "周报"}

		firstPath, err := w.WriteArtifact(first, []byte("one"), "md")
		require.NoError(t, err)

		secondPath, err := w.WriteArtifact(second, []byte("two"), "md")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(outdir, "周报.md"), firstPath)

		suffix := uint32(xxhash.Sum64String(second.URL))
		assert.Equal(t, filepath.Join(outdir, fmt.Sprintf("周报-%08x.md", suffix)), secondPath)

		// Both artifacts survive on disk.
		firstContent, err := os.ReadFile(firstPath)
		require.NoError(t, err)
		assert.Equal(t, "one", string(firstContent))

		secondContent, err := os.ReadFile(secondPath)
		require.NoError(t, err)
		assert.Equal(t, "two", string(secondContent))
	})

	t.Run("rewrites the same file when the same article repeats", func(t *testing.T) {
		t.Parallel()

		outdir := t.TempDir()
		w := fs.NewArtifactWriter(outdir)

		article := &wxclip.Article{URL: "https://mp.weixin.qq.com/s/abc123", Title: "周报"}

		firstPath, err := w.WriteArtifact(article, []byte("draft"), "md")
		require.NoError(t, err)

		secondPath, err := w.WriteArtifact(article, []byte("final"), "md")
		require.NoError(t, err)

		assert.Equal(t, firstPath, secondPath)

		entries, err := os.ReadDir(outdir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		content, err := os.ReadFile(secondPath)
		require.NoError(t, err)
		assert.Equal(t, "final", string(content))
	})

	t.Run("falls back to a URL-derived name when the title is empty", func(t *testing.T) {
		t.Parallel()

		outdir := t.TempDir()
		w := fs.NewArtifactWriter(outdir)

		article := &wxclip.Article{URL: "https://mp.weixin.qq.com/s/abc123"}

		path, err := w.WriteArtifact(article, []byte("body"), "json")

		require.NoError(t, err)
		want := fmt.Sprintf("article-%016x.json", xxhash.Sum64String(article.URL))
		assert.Equal(t, filepath.Join(outdir, want), path)
	})

	t.Run("creates the output directory", func(t *testing.T) {
		t.Parallel()

		outdir := filepath.Join(t.TempDir(), "clips", "2024")
		w := fs.NewArtifactWriter(outdir)

		article := &wxclip.Article{URL: "https://mp.weixin.qq.com/s/abc123", Title: "标题"}

		path, err := w.WriteArtifact(article, []byte("body"), "md")

		require.NoError(t, err)
		_, err = os.Stat(path)
		require.NoError(t, err)
	})
}
