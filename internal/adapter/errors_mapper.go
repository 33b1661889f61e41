package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var userMessages = map[error]string{
	ErrNetwork:      "Unable to connect. Please check your internet connection.",
	ErrTimeout:      "The request timed out. Please try again.",
	ErrValidation:   "Please check your input and try again.",
	ErrUnauthorized: "Please sign in to continue.",
	ErrForbidden:    "You don't have permission to do that.",
	ErrNotFound:     "The requested item could not be found.",
	ErrRateLimited:  "Too many requests. Please wait a moment and try again.",
	ErrServer:       "Something went wrong on our side. Please try again later.",
	ErrUnknown:      "Something went wrong. Please try again.",
}

const serviceUnavailableMessage = "The service is temporarily unavailable. Please try again shortly."

func userMessage(kind error, status int) string {
	if errors.Is(kind, ErrServer) && status >= http.StatusBadGateway && status <= http.StatusGatewayTimeout {
		return serviceUnavailableMessage
	}
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[ErrUnknown]
}

// classifyStatus maps a non-2xx status to its kind, default code and
// retryability.
func classifyStatus(status int) (kind error, code string, retryable bool) {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrValidation, CodeValidation, false
	case status == http.StatusUnauthorized:
		return ErrUnauthorized, CodeUnauthorized, false
	case status == http.StatusForbidden:
		return ErrForbidden, CodeForbidden, false
	case status == http.StatusNotFound:
		return ErrNotFound, CodeNotFound, false
	case status == http.StatusRequestTimeout:
		return ErrTimeout, CodeTimeout, true
	case status == http.StatusTooManyRequests:
		return ErrRateLimited, CodeRateLimited, true
	case status >= http.StatusBadGateway && status <= http.StatusGatewayTimeout:
		return ErrServer, CodeServiceUnavailable, true
	case status >= http.StatusInternalServerError:
		return ErrServer, CodeServer, true
	default:
		return ErrUnknown, CodeUnknown, false
	}
}

// errorBody is the error shape understood in response bodies: either
// {"error":{"code","message"}} or a flat {"code","message"}.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func mapHTTPError(resp *resty.Response, traceID string) *APIError {
	status := resp.StatusCode()
	kind, code, retryable := classifyStatus(status)

	body := strings.TrimSpace(string(resp.Body()))
	message := body

	var eb errorBody
	if body != "" && json.Unmarshal(resp.Body(), &eb) == nil {
		switch {
		case eb.Error != nil:
			code = firstNonEmpty(eb.Error.Code, code)
			message = firstNonEmpty(eb.Error.Message, eb.Message, body)
		case eb.Message != "" || eb.Code != "":
			code = firstNonEmpty(eb.Code, code)
			message = firstNonEmpty(eb.Message, body)
		}
	}
	if message == "" {
		message = http.StatusText(status)
	}

	return &APIError{
		StatusCode:  status,
		Code:        code,
		Message:     message,
		UserMessage: userMessage(kind, status),
		Retryable:   retryable,
		TraceID:     traceID,
		kind:        kind,
	}
}

// mapTransportError classifies an attempt that produced no HTTP response.
// parent is the caller's context, attempt the per-attempt one derived from it.
func mapTransportError(parent, attempt context.Context, err error, traceID string) *APIError {
	apiErr := &APIError{
		Message: err.Error(),
		TraceID: traceID,
		cause:   err,
	}

	switch {
	case parent.Err() != nil:
		apiErr.kind, apiErr.Code = ErrUnknown, CodeCanceled
	case errors.Is(attempt.Err(), context.DeadlineExceeded), isTimeout(err):
		apiErr.kind, apiErr.Code, apiErr.Retryable = ErrTimeout, CodeTimeout, true
	default:
		apiErr.kind, apiErr.Code, apiErr.Retryable = ErrNetwork, CodeNetwork, true
	}
	apiErr.UserMessage = userMessage(apiErr.kind, 0)

	return apiErr
}

// asAPIError converts any pipeline error into an [APIError].
func asAPIError(err error, traceID string) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	code := CodeUnknown
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		code = CodeCanceled
	}
	return &APIError{
		Code:        code,
		Message:     err.Error(),
		UserMessage: userMessage(ErrUnknown, 0),
		TraceID:     traceID,
		kind:        ErrUnknown,
		cause:       err,
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
