package pocket

import (
	"context"
	"net/http"
	"time"

	"github.com/Adda-Baaj/pocket-sync/pkg/httpclient"
)

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper. It returns ctx.Err() when ctx ends first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Backoff returns the delay before retry n (n >= 1): base * 2^(n-1).
func Backoff(base time.Duration, n int) time.Duration {
	if n < 1 || base <= 0 {
		return 0
	}
	return base << (n - 1)
}

// shouldRetry reports whether another attempt is allowed after `retries`
// retries have already happened. Transport errors are retried unless the
// caller's context is done.
func shouldRetry(ctx context.Context, maxRetries, retries int, resp httpclient.Response, err error) bool {
	if retries >= maxRetries {
		return false
	}
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	status := resp.StatusCode()
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}
