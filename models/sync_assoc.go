// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// CollSyncIDs pairs the global sync id from meta/global with the sync id of
// one collection's engine entry.
type CollSyncIDs struct {
	Global string `json:"global"`
	Coll   string `json:"coll"`
}

// StoreSyncAssociation is a store's persisted claim about which sync epoch it
// last synced against. The zero value is "disconnected".
type StoreSyncAssociation struct {
	// IDs is nil when the store is disconnected.
	IDs *CollSyncIDs `json:"ids,omitempty"`
}

// Disconnected returns the association of a store that never synced or was
// reset without a known epoch.
func Disconnected() StoreSyncAssociation {
	return StoreSyncAssociation{}
}

// Connected returns the association for the given ids.
func Connected(ids CollSyncIDs) StoreSyncAssociation {
	return StoreSyncAssociation{IDs: &ids}
}

// IsConnected reports whether the association names a sync epoch.
func (a StoreSyncAssociation) IsConnected() bool {
	return a.IDs != nil
}

// Matches reports whether a is connected to exactly ids.
func (a StoreSyncAssociation) Matches(ids CollSyncIDs) bool {
	return a.IDs != nil && *a.IDs == ids
}

// String implements fmt.Stringer for logging.
func (a StoreSyncAssociation) String() string {
	if a.IDs == nil {
		return "disconnected"
	}
	return fmt.Sprintf("connected(global=%s, coll=%s)", a.IDs.Global, a.IDs.Coll)
}
