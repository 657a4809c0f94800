package mock

import (
	"context"

	"github.com/wxclip/wxclip"
)

var _ wxclip.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of wxclip.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
