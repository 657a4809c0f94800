package wxclip

import "context"

// ImageResolver downloads an article's remote images and rewrites
// references to local paths.
type ImageResolver interface {
	// Resolve downloads each distinct remote image reference, stores
	// it under the artifact output directory, and rewrites matching
	// img sources in the content tree and the Images list to relative
	// local paths. A failed download leaves the remote reference in
	// place and adds a warning; references that are already local are
	// skipped, so resolving the same article twice is a no-op. The
	// returned error is reserved for context cancellation.
	Resolve(ctx context.Context, article *Article) (warnings []string, err error)
}
