package wxclip

import "context"

// DomainLimiter paces requests per host.
type DomainLimiter interface {
	// Wait blocks until the limiter allows a request to the host.
	// Returns an error if the context is canceled before the wait
	// completes.
	Wait(ctx context.Context, host string) error
}
