package batch

import (
	"context"
	"sync"

	"github.com/wxclip/wxclip"
	"golang.org/x/time/rate"
)

var _ wxclip.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per host using token buckets. Article
// pages and image CDN hosts get independent limiters, so throttling
// the page host does not slow image downloads from another host.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a limiter allowing rps requests per second
// to each host. Each host gets a burst of 1, so requests to one host
// are spaced evenly rather than clustered.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait
// completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
