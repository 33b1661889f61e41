package adapter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-storefront/models"
)

// Headers set by the client and its built-in interceptors.
const (
	HeaderTraceID       = "X-Trace-Id"
	HeaderCSRFToken     = "X-CSRF-Token"
	HeaderAuthorization = "Authorization"
)

// RequestInterceptor mutates an outgoing request. A non-nil error aborts the
// request before it reaches the cache or the network.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor transforms a successful response envelope in place.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *models.Response) error

// ErrorInterceptor may rewrite or augment a failed attempt before the retry
// decision is made. Returning nil keeps the original error.
type ErrorInterceptor func(ctx context.Context, req *Request, err *APIError) *APIError

// Observer is notified once per request with its final outcome.
type Observer func(ctx context.Context, req *Request, resp *models.Response, err error, elapsed time.Duration)

type interceptorSet struct {
	request   []RequestInterceptor
	response  []ResponseInterceptor
	error     []ErrorInterceptor
	observers []Observer
}

// AuthInterceptor sets a bearer Authorization header from token when it
// returns a non-empty value and the request has none yet.
func AuthInterceptor(token func() string) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if req.Header.Get(HeaderAuthorization) != "" {
			return nil
		}
		if t := strings.TrimSpace(token()); t != "" {
			req.Header.Set(HeaderAuthorization, "Bearer "+t)
		}
		return nil
	}
}

// CSRFInterceptor attaches token to state-changing requests.
func CSRFInterceptor(token string) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if token == "" {
			return nil
		}
		switch req.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			req.Header.Set(HeaderCSRFToken, token)
		}
		return nil
	}
}
