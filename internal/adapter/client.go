// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

// Request is the outgoing request as seen by interceptors.
type Request struct {
	Method  string
	URL     string
	Body    any
	Header  http.Header
	Query   url.Values
	TraceID string
}

// Client is the resilient storefront API client. It is safe for concurrent
// use; interceptors may be registered at any time and apply to requests
// started afterwards.
type Client struct {
	http     *utils.HTTPClient
	cache    Cache
	cacheTTL time.Duration
	policy   RetryPolicy
	timeout  time.Duration
	ids      *utils.UUIDGenerator
	now      func() time.Time
	logger   *logger.Logger
	pipeline handler

	mu  sync.RWMutex
	set interceptorSet
}

// NewClient builds a client for apiCfg. cache may be nil; it is ignored when
// cacheCfg.Disabled is set.
func NewClient(apiCfg config.API, cache Cache, cacheCfg config.Cache, log *logger.Logger) *Client {
	if cacheCfg.Disabled {
		cache = nil
	}

	timeout := apiCfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	c := &Client{
		http:     utils.NewHTTPClient(strings.TrimRight(apiCfg.BaseURL, "/"), 0),
		cache:    cache,
		cacheTTL: cacheCfg.TTL,
		policy:   NewRetryPolicy(apiCfg),
		timeout:  timeout,
		ids:      utils.NewUUIDGenerator(),
		now:      time.Now,
		logger:   log,
	}
	c.pipeline = chain(c.attempt,
		c.requestInterceptorStage,
		c.responseInterceptorStage,
		c.cacheStage,
		c.retryStage,
	)

	return c
}

// UseRequest registers request interceptors; they run in registration order.
func (c *Client) UseRequest(interceptors ...RequestInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set.request = append(c.set.request, interceptors...)
}

// UseResponse registers response interceptors; they run in registration order.
func (c *Client) UseResponse(interceptors ...ResponseInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set.response = append(c.set.response, interceptors...)
}

// UseError registers error interceptors; they run in registration order.
func (c *Client) UseError(interceptors ...ErrorInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set.error = append(c.set.error, interceptors...)
}

// Observe registers request observers.
func (c *Client) Observe(observers ...Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set.observers = append(c.set.observers, observers...)
}

func (c *Client) interceptors() interceptorSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.set
}

// Cache returns the response cache, nil when caching is disabled.
func (c *Client) Cache() Cache {
	return c.cache
}

// Get sends a GET request to url.
func (c *Client) Get(ctx context.Context, url string, data any, opts ...RequestOption) (*models.Response, error) {
	return c.Do(ctx, http.MethodGet, url, data, opts...)
}

// Post sends data as the JSON body of a POST request.
func (c *Client) Post(ctx context.Context, url string, data any, opts ...RequestOption) (*models.Response, error) {
	return c.Do(ctx, http.MethodPost, url, data, opts...)
}

// Put sends data as the JSON body of a PUT request.
func (c *Client) Put(ctx context.Context, url string, data any, opts ...RequestOption) (*models.Response, error) {
	return c.Do(ctx, http.MethodPut, url, data, opts...)
}

// Patch sends data as the JSON body of a PATCH request.
func (c *Client) Patch(ctx context.Context, url string, data any, opts ...RequestOption) (*models.Response, error) {
	return c.Do(ctx, http.MethodPatch, url, data, opts...)
}

// Delete sends a DELETE request; data may be nil.
func (c *Client) Delete(ctx context.Context, url string, data any, opts ...RequestOption) (*models.Response, error) {
	return c.Do(ctx, http.MethodDelete, url, data, opts...)
}

// Do sends a request through the pipeline. The trace id is taken from ctx
// when present, otherwise a new one is generated.
func (c *Client) Do(ctx context.Context, method, url string, data any, opts ...RequestOption) (*models.Response, error) {
	o := &requestOptions{
		timeout:     c.timeout,
		maxAttempts: c.policy.MaxAttempts,
		cacheTTL:    c.cacheTTL,
		header:      make(http.Header),
		query:       make(map[string][]string),
	}
	for _, opt := range opts {
		opt(o)
	}

	traceID, ok := utils.GetTraceIDFromContext(ctx)
	if !ok {
		traceID = c.ids.Generate()
		ctx = utils.WithTraceID(ctx, traceID)
	}

	req := &Request{
		Method:  method,
		URL:     url,
		Body:    data,
		Header:  o.header,
		Query:   o.query,
		TraceID: traceID,
	}
	req.Header.Set(HeaderTraceID, traceID)

	log := &logger.Logger{Logger: c.logger.With().Str("trace_id", traceID).Logger()}
	ctx = log.WithContext(ctx)

	start := c.now()
	resp, err := c.pipeline(ctx, req, o)
	elapsed := c.now().Sub(start)

	for _, observe := range c.interceptors().observers {
		observe(ctx, req, resp, err, elapsed)
	}

	if err != nil {
		log.Err(err).
			Str("func", "Client.Do").
			Str("method", method).
			Str("url", url).
			Dur("elapsed", elapsed).
			Msg("request failed")
		return nil, err
	}

	log.Debug().
		Str("func", "Client.Do").
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Bool("cached", resp.Cached).
		Dur("elapsed", elapsed).
		Msg("request completed")
	return resp, nil
}
