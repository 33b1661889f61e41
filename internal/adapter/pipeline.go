package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

// handler runs one request through the remaining pipeline stages.
type handler func(ctx context.Context, req *Request, o *requestOptions) (*models.Response, error)

// stage wraps the next handler.
type stage func(next handler) handler

// chain composes stages around h; the first stage is the outermost.
func chain(h handler, stages ...stage) handler {
	for i := len(stages) - 1; i >= 0; i-- {
		h = stages[i](h)
	}
	return h
}

func (c *Client) requestInterceptorStage(next handler) handler {
	return func(ctx context.Context, req *Request, o *requestOptions) (*models.Response, error) {
		for _, intercept := range c.interceptors().request {
			if err := intercept(ctx, req); err != nil {
				return nil, fmt.Errorf("request interceptor: %w", err)
			}
		}
		return next(ctx, req, o)
	}
}

func (c *Client) responseInterceptorStage(next handler) handler {
	return func(ctx context.Context, req *Request, o *requestOptions) (*models.Response, error) {
		resp, err := next(ctx, req, o)
		if err != nil {
			return nil, err
		}
		for _, intercept := range c.interceptors().response {
			if err := intercept(ctx, req, resp); err != nil {
				return nil, fmt.Errorf("response interceptor: %w", err)
			}
		}
		return resp, nil
	}
}

func (c *Client) cacheStage(next handler) handler {
	return func(ctx context.Context, req *Request, o *requestOptions) (*models.Response, error) {
		if c.cache == nil || o.noCache || (req.Method != http.MethodGet && o.cacheKey == "") {
			return next(ctx, req, o)
		}
		log := logger.FromContext(ctx)

		key := o.cacheKey
		if key == "" {
			key = cacheKey(req)
		}

		cached, ok, err := c.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("func", "Client.cacheStage").Msg("cache lookup failed")
		case ok:
			log.Debug().Str("func", "Client.cacheStage").Str("url", req.URL).Msg("served from cache")
			cached.Cached = true
			return cached, nil
		}

		resp, err := next(ctx, req, o)
		if err != nil {
			return nil, err
		}

		if resp.Success {
			if err := c.cache.Set(ctx, key, resp, o.cacheTTL); err != nil {
				log.Warn().Err(err).Str("func", "Client.cacheStage").Msg("cache store failed")
			}
		}
		return resp, nil
	}
}

func (c *Client) retryStage(next handler) handler {
	return func(ctx context.Context, req *Request, o *requestOptions) (*models.Response, error) {
		log := logger.FromContext(ctx)

		var (
			resp    *models.Response
			attempt int
		)
		err := retry.Do(ctx, c.policy.backoff(o.maxAttempts), func(ctx context.Context) error {
			attempt++
			r, err := next(ctx, req, o)
			if err == nil {
				resp = r
				return nil
			}

			apiErr := asAPIError(err, req.TraceID)
			for _, intercept := range c.interceptors().error {
				if rewritten := intercept(ctx, req, apiErr); rewritten != nil {
					apiErr = rewritten
				}
			}

			if apiErr.Retryable && (o.retryIf == nil || o.retryIf(apiErr)) {
				log.Warn().
					Str("func", "Client.retryStage").
					Str("method", req.Method).
					Str("url", req.URL).
					Int("attempt", attempt).
					Int("status", apiErr.StatusCode).
					Str("code", apiErr.Code).
					Msg("retryable request failure")
				return retry.RetryableError(apiErr)
			}
			return apiErr
		})
		if err != nil {
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				// context cancelled while waiting between attempts
				apiErr = asAPIError(err, req.TraceID)
			}
			return nil, apiErr
		}
		return resp, nil
	}
}

// attempt performs a single HTTP exchange under the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, req *Request, o *requestOptions) (*models.Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	r := c.http.R().
		SetContext(attemptCtx).
		SetHeaderMultiValues(req.Header).
		SetQueryParamsFromValues(req.Query)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, mapTransportError(ctx, attemptCtx, err, req.TraceID)
	}

	traceID := resp.Header().Get(HeaderTraceID)
	if traceID == "" {
		traceID = req.TraceID
	}

	if !resp.IsSuccess() {
		return nil, mapHTTPError(resp, traceID)
	}

	return &models.Response{
		Success:    true,
		Data:       rawData(resp.Body()),
		StatusCode: resp.StatusCode(),
		Timestamp:  c.now(),
		TraceID:    traceID,
	}, nil
}

// cacheKey derives the default cache key from method, url, query and payload.
func cacheKey(req *Request) string {
	var payload []byte
	if req.Body != nil {
		payload, _ = json.Marshal(req.Body)
	}

	key := req.Method + " " + req.URL
	if len(req.Query) > 0 {
		key += "?" + req.Query.Encode()
	}
	if h := utils.HashString(payload); h != "" {
		key += "#" + h
	}
	return key
}

// rawData keeps JSON bodies as-is and wraps anything else as a JSON string.
func rawData(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return append(json.RawMessage(nil), body...)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
