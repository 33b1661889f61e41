// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package state holds the storefront client state containers: cart, user,
// UI, waitlist, app/device and monitoring stores.
//
// Stores are plain structs built by [NewStores] and passed explicitly to
// whoever needs them. Every store is safe for concurrent use. Stores that opt
// into persistence (cart, user, waitlist) mirror their whole state to a
// [store.StateRepository] after each mutation; persistence failures are
// logged and never surface to the caller.
package state
