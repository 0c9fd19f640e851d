package http

import (
	"math/rand"
	"net/http"
	"time"
)

// RetryPolicy bounds fetch attempts and the politeness window between them.
type RetryPolicy struct {
	MaxRetries int
	SleepMin   time.Duration
	SleepMax   time.Duration
}

// DefaultRetryPolicy returns the crawl retry defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		SleepMin:   1 * time.Second,
		SleepMax:   2500 * time.Millisecond,
	}
}

// Jitter returns the randomized share of the politeness delay, drawn
// uniformly from [0, SleepMax-SleepMin]. The SleepMin floor itself is
// enforced by the fetcher's rate limiter, so the combined inter-request gap
// stays inside [SleepMin, SleepMax].
func (p RetryPolicy) Jitter() time.Duration {
	window := p.SleepMax - p.SleepMin
	if window <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(window)))
}

// ShouldRetry reports whether a fetch attempt outcome warrants another try.
// Any transport error is retryable; for responses, everything outside 2xx is.
func (p RetryPolicy) ShouldRetry(statusCode int, err error) bool {
	if err != nil {
		return true
	}
	return statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices
}
