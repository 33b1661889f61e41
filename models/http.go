// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Response is the uniform envelope returned by the API client.
type Response struct {
	// Success is true for 2xx responses.
	Success bool `json:"success"`

	// Data is the raw JSON body of the response.
	Data json.RawMessage `json:"data"`

	// StatusCode is the HTTP status code.
	StatusCode int `json:"statusCode"`

	// Timestamp is when the response was produced (or cached).
	Timestamp time.Time `json:"timestamp"`

	// TraceID correlates the request with server-side logs.
	TraceID string `json:"traceId"`

	// Cached is true when the response was served from the response cache.
	Cached bool `json:"-"`
}

// Decode unmarshals Data into v.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
