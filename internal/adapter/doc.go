// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the resilient HTTP client used to talk to the
// storefront API.
//
// [Client] sends every request through a fixed pipeline of stages:
//
//	request interceptors → response interceptors → cache → retry → attempt
//
// Request interceptors mutate the outgoing [Request] in registration order.
// The cache stage serves fresh entries without touching the network and stores
// successful responses. The retry stage re-runs the attempt while the typed
// [APIError] is retryable, after error interceptors have had their say. Each
// attempt runs under its own timeout.
//
// Failures surface as *[APIError]; callers match the failure kind with
// [errors.Is] against the sentinels in errors.go (e.g. [ErrRateLimited]).
package adapter
