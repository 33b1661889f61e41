// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the storefront client runtime.
//
// It wires configuration, persistence, the resilient API client, the state
// stores and the background workers into a single process lifecycle.
package client
