package wxclip

import "context"

// Page is a fetched article page before extraction.
type Page struct {
	// URL is the requested URL.
	URL string

	// FinalURL is the URL after redirects were followed.
	FinalURL string

	// StatusCode is the final HTTP status.
	StatusCode int

	// HTML is the raw response body.
	HTML string
}

// Fetcher retrieves raw article pages over HTTP.
type Fetcher interface {
	// Fetch requests the URL and returns the page with redirects
	// resolved. Network failures, timeouts and non-2xx statuses
	// return EUNAVAILABLE errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close releases client resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// ImageFetcher retrieves image bytes referenced by articles.
type ImageFetcher interface {
	// FetchImage downloads the image and reports the content type the
	// server sent (may be empty).
	FetchImage(ctx context.Context, url string) (data []byte, contentType string, err error)
}
