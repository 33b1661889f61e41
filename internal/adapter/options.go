package adapter

import (
	"net/http"
	"net/url"
	"time"
)

type requestOptions struct {
	timeout     time.Duration
	maxAttempts int
	retryIf     func(*APIError) bool
	noCache     bool
	cacheKey    string
	cacheTTL    time.Duration
	header      http.Header
	query       url.Values
}

// RequestOption tunes a single request.
type RequestOption func(*requestOptions)

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxAttempts overrides the total number of attempts.
func WithMaxAttempts(n int) RequestOption {
	return func(o *requestOptions) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithRetryIf adds a predicate that must also agree before a retryable error
// is retried.
func WithRetryIf(fn func(*APIError) bool) RequestOption {
	return func(o *requestOptions) {
		o.retryIf = fn
	}
}

// WithoutCache bypasses the response cache for both lookup and store.
func WithoutCache() RequestOption {
	return func(o *requestOptions) {
		o.noCache = true
	}
}

// WithCacheKey uses key instead of the derived method+url+payload key. It
// also makes non-GET requests cacheable.
func WithCacheKey(key string) RequestOption {
	return func(o *requestOptions) {
		o.cacheKey = key
	}
}

// WithCacheTTL overrides the time-to-live of the stored response.
func WithCacheTTL(ttl time.Duration) RequestOption {
	return func(o *requestOptions) {
		o.cacheTTL = ttl
	}
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.header.Set(key, value)
	}
}

// WithQuery adds a query parameter. Empty values are skipped.
func WithQuery(key, value string) RequestOption {
	return func(o *requestOptions) {
		if value != "" {
			o.query.Add(key, value)
		}
	}
}
