package batch_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/batch"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements wxclip.DomainLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ wxclip.DomainLimiter = batch.NewDomainLimiter(1)
	})

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "mp.weixin.qq.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(10) // 100ms between requests

		err := limiter.Wait(context.Background(), "mp.weixin.qq.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "mp.weixin.qq.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(10)

		err := limiter.Wait(context.Background(), "mp.weixin.qq.com")
		require.NoError(t, err)

		// The image CDN should not queue behind the page host.
		start := time.Now()
		err = limiter.Wait(context.Background(), "mmbiz.qpic.cn")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(1) // 1s between requests

		err := limiter.Wait(context.Background(), "mp.weixin.qq.com")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx, "mp.weixin.qq.com")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("concurrent requests are serialized per host", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(100) // 10ms between requests

		var wg sync.WaitGroup
		var completed atomic.Int32

		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "mp.weixin.qq.com"); err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load(), "all requests should complete")
	})
}
