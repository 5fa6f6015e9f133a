package modaps

import (
	"context"
	"net/http"
	"time"
)

// RetryPolicy decides whether a request should be retried.
type RetryPolicy interface {
	ShouldRetry(resp *http.Response, err error) (bool, time.Duration)
}

// RetryPolicyFunc adapts a function to the RetryPolicy interface.
type RetryPolicyFunc func(resp *http.Response, err error) (bool, time.Duration)

// ShouldRetry implements the RetryPolicy interface.
func (f RetryPolicyFunc) ShouldRetry(resp *http.Response, err error) (bool, time.Duration) {
	return f(resp, err)
}

// DefaultRetryPolicy retries on network errors, server errors, and 429
// responses. The catalog answers large queries with 502s under load, so
// server errors are worth a couple of backed-off attempts.
var DefaultRetryPolicy RetryPolicy = RetryPolicyFunc(func(resp *http.Response, err error) (bool, time.Duration) {
	switch {
	case err != nil:
		return true, 500 * time.Millisecond
	case resp.StatusCode >= 500:
		return true, time.Second
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, 2 * time.Second
	default:
		return false, 0
	}
})

const maxRetryAttempts = 3

func (c *Client) retry(ctx context.Context, fn func() (*http.Response, error)) (*http.Response, error) {
	policy := c.retryPolicy
	if policy == nil {
		return fn()
	}
	var attempt int
	for {
		resp, err := fn()
		retry, delay := policy.ShouldRetry(resp, err)
		if !retry || attempt >= maxRetryAttempts || ctx.Err() != nil {
			return resp, err
		}
		if resp != nil {
			resp.Body.Close()
		}
		attempt++
		select {
		case <-ctx.Done():
			return resp, ctx.Err()
		case <-time.After(delay * time.Duration(attempt)):
		}
	}
}
