package adapter

import (
	"errors"
	"fmt"
)

// Failure kinds. Every [APIError] unwraps to exactly one of them.
var (
	// ErrNetwork is a connectivity failure: no HTTP status was received.
	ErrNetwork = errors.New("network error")

	// ErrTimeout means the attempt did not complete before its deadline.
	ErrTimeout = errors.New("request timeout")

	// ErrValidation covers 400 and 422 responses.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized is a 401 response.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrForbidden is a 403 response.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is a 404 response.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited is a 429 response.
	ErrRateLimited = errors.New("rate limited")

	// ErrServer covers 5xx responses.
	ErrServer = errors.New("server error")

	// ErrUnknown is anything else, including cancellation by the caller.
	ErrUnknown = errors.New("unknown error")
)

// Machine-readable error codes carried by [APIError.Code] when the server
// does not provide its own.
const (
	CodeNetwork            = "NETWORK_ERROR"
	CodeTimeout            = "TIMEOUT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeServer             = "SERVER_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeCanceled           = "CANCELED"
	CodeUnknown            = "UNKNOWN_ERROR"
)

// APIError is the typed failure returned by [Client].
type APIError struct {
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int

	// Code is a machine-readable code, taken from the response body when the
	// server sent one.
	Code string

	// Message is the technical description (server message or transport error).
	Message string

	// UserMessage is a stable human-facing message derived from the kind.
	UserMessage string

	// Retryable reports whether the failure is transient.
	Retryable bool

	// TraceID correlates the failure with the request.
	TraceID string

	kind  error
	cause error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("http %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap exposes the failure kind and, for transport failures, the
// underlying error.
func (e *APIError) Unwrap() []error {
	kind := e.kind
	if kind == nil {
		kind = ErrUnknown
	}
	if e.cause == nil {
		return []error{kind}
	}
	return []error{kind, e.cause}
}

// Kind returns the failure kind sentinel.
func (e *APIError) Kind() error {
	if e.kind == nil {
		return ErrUnknown
	}
	return e.kind
}

// WithKind returns a copy of e reclassified as kind. Error interceptors use
// it to rewrite a failure before retry evaluation.
func (e *APIError) WithKind(kind error, retryable bool) *APIError {
	cp := *e
	cp.kind = kind
	cp.Retryable = retryable
	cp.UserMessage = userMessage(kind, e.StatusCode)
	return &cp
}

// IsRetryable reports whether err is an [APIError] marked retryable.
func IsRetryable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Retryable
}

// UserMessage returns the human-facing message of err, or a generic one when
// err is not an [APIError].
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.UserMessage != "" {
		return apiErr.UserMessage
	}
	return userMessage(ErrUnknown, 0)
}
