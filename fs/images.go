package fs

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/wxclip/wxclip"
)

// imagesDirName is the subdirectory of the output directory that holds
// downloaded images.
const imagesDirName = "images"

// ImageStore writes downloaded images under outdir/images with names
// derived from the remote URL.
type ImageStore struct {
	outdir string
}

// NewImageStore creates a store rooted at outdir.
func NewImageStore(outdir string) *ImageStore {
	return &ImageStore{outdir: outdir}
}

// Store writes the image and returns its path relative to the output
// directory, slash-separated for use in HTML and markdown references.
// The name depends only on the remote URL and content type, so storing
// the same image again overwrites in place instead of accumulating
// numbered copies.
func (s *ImageStore) Store(remoteURL string, data []byte, contentType string) (string, error) {
	dir := filepath.Join(s.outdir, imagesDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", wxclip.Errorf(wxclip.EINTERNAL, "create images directory %s: %v", dir, err)
	}

	name := fmt.Sprintf("%016x%s", xxhash.Sum64String(remoteURL), imageExt(remoteURL, contentType))
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", wxclip.Errorf(wxclip.EINTERNAL, "write image %s: %v", name, err)
	}

	return path.Join(imagesDirName, name), nil
}

// imageExt infers the file extension from the content type, the wx_fmt
// query parameter the image CDN carries, or the URL path, in that
// order.
func imageExt(remoteURL, contentType string) string {
	if ext := extFromType(contentType); ext != "" {
		return ext
	}
	u, err := url.Parse(remoteURL)
	if err != nil {
		return ""
	}
	if ext := extFromType(u.Query().Get("wx_fmt")); ext != "" {
		return ext
	}
	if ext := path.Ext(u.Path); ext != "" && len(ext) <= 5 {
		return ext
	}
	return ""
}

func extFromType(t string) string {
	switch {
	case strings.Contains(t, "jpeg"), strings.Contains(t, "jpg"):
		return ".jpg"
	case strings.Contains(t, "png"):
		return ".png"
	case strings.Contains(t, "gif"):
		return ".gif"
	case strings.Contains(t, "webp"):
		return ".webp"
	}
	return ""
}
