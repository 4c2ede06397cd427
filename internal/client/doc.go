// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client application runtime.
//
// It wires the storage adapter, the local stores and the sync manager into
// a periodic background job with a single process lifecycle.
package client
