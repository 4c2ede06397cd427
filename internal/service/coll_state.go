// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync15/internal/crypto"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/models"
)

// CollectionState is everything one cycle needs to talk to one collection.
// It lives for a single Synchronize call.
type CollectionState struct {
	Collection string
	Config     models.InfoConfiguration
	Key        crypto.KeyBundle
	// LastModified is the collection's high-water mark. The fetch replaces
	// it with the response timestamp; uploads send it as
	// X-If-Unmodified-Since.
	LastModified models.ServerTimestamp
}

// Reasons a collection is skipped without error.
const (
	SkipDeclined         = "declined"
	SkipNoSuchCollection = "no such collection"
	SkipNoKeys           = "no keys"
)

type collStateKind int

const (
	collStateUnknown collStateKind = iota
	collStateSyncIDChanged
	collStateReady
)

// maxCollStateTransitions bounds the Unknown -> SyncIDChanged -> Unknown ->
// Ready walk.
const maxCollStateTransitions = 5

// collStateMachine validates a store against the global state and resets
// it when its sync ids are stale.
type collStateMachine struct {
	store  Store
	global *GlobalState
	root   crypto.KeyBundle
	limits LimitOverrides
	logger *logger.Logger
}

// resolve returns the collection state, or nil and a skip reason when the
// collection cannot be synced right now.
func (m *collStateMachine) resolve(ctx context.Context) (*CollectionState, string, error) {
	collection := m.store.CollectionName()

	var (
		state    = collStateUnknown
		ids      models.CollSyncIDs
		key      crypto.KeyBundle
		didReset bool
	)

	for range maxCollStateTransitions {
		switch state {
		case collStateUnknown:
			meta := m.global.Global
			if meta.IsDeclined(collection) {
				return nil, SkipDeclined, nil
			}

			var ok bool
			ids, ok = meta.CollSyncIDs(collection)
			if !ok {
				return nil, SkipNoSuchCollection, nil
			}

			keys, err := m.global.CollectionKeys(m.root)
			if err != nil {
				return nil, "", err
			}
			if keys == nil {
				return nil, SkipNoKeys, nil
			}
			key = keys.KeyForCollection(collection)

			assoc, err := m.store.GetSyncAssoc(ctx)
			if err != nil {
				return nil, "", storeError(collection, "GetSyncAssoc", err)
			}

			if assoc.Matches(ids) {
				state = collStateReady
				continue
			}

			m.logger.Info().
				Str("collection", collection).
				Stringer("local", assoc).
				Str("global_sync_id", ids.Global).
				Str("coll_sync_id", ids.Coll).
				Msg("sync ids changed")
			state = collStateSyncIDChanged

		case collStateSyncIDChanged:
			if didReset {
				return nil, "", fmt.Errorf("%w: %s still not associated with %s/%s after reset",
					ErrStateMachineLoop, collection, ids.Global, ids.Coll)
			}
			if err := m.store.Reset(ctx, models.Connected(ids)); err != nil {
				return nil, "", storeError(collection, "Reset", err)
			}
			didReset = true
			state = collStateUnknown

		case collStateReady:
			lastModified := m.global.Collections.Timestamp(collection)
			if didReset {
				lastModified = 0
			}
			return &CollectionState{
				Collection:   collection,
				Config:       m.limits.apply(m.global.Config),
				Key:          key,
				LastModified: lastModified,
			}, "", nil
		}
	}

	return nil, "", fmt.Errorf("%w: %s", ErrStateMachineLoop, collection)
}

// LimitOverrides lowers the server upload limits for this client. Zero
// fields leave the server value untouched.
type LimitOverrides struct {
	MaxPostRecords int
	MaxPostBytes   int
}

func (o LimitOverrides) apply(cfg models.InfoConfiguration) models.InfoConfiguration {
	cfg = cfg.WithDefaults()
	if o.MaxPostRecords > 0 && o.MaxPostRecords < cfg.MaxPostRecords {
		cfg.MaxPostRecords = o.MaxPostRecords
	}
	if o.MaxPostBytes > 0 && o.MaxPostBytes < cfg.MaxPostBytes {
		cfg.MaxPostBytes = o.MaxPostBytes
	}
	return cfg
}
