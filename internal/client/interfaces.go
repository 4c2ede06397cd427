// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts background syncing and blocks until ctx is done.
	Run(ctx context.Context) error
	// Wipe deletes all local data of the configured engines.
	Wipe(ctx context.Context) error
	// Close releases local storage.
	Close() error
}
