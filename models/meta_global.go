package models

import "slices"

// StorageVersion is the storage format version written to meta/global.
const StorageVersion = 5

// Well-known record locations.
const (
	MetaCollection   = "meta"
	MetaGlobalID     = "global"
	CryptoCollection = "crypto"
	CryptoKeysID     = "keys"
)

// MetaGlobalEngine describes one collection's engine in meta/global.
type MetaGlobalEngine struct {
	Version int    `json:"version"`
	SyncID  string `json:"syncID"`
}

// MetaGlobal is the cleartext meta/global record: the account-wide sync id,
// the per-engine sync ids and the list of declined engines.
type MetaGlobal struct {
	SyncID         string                      `json:"syncID"`
	StorageVersion int                         `json:"storageVersion"`
	Engines        map[string]MetaGlobalEngine `json:"engines"`
	Declined       []string                    `json:"declined,omitempty"`
}

// IsDeclined reports whether the user declined syncing collection.
func (m MetaGlobal) IsDeclined(collection string) bool {
	return slices.Contains(m.Declined, collection)
}

// CollSyncIDs returns the ids a store of collection must be associated with,
// and false when meta/global has no engine entry for it.
func (m MetaGlobal) CollSyncIDs(collection string) (CollSyncIDs, bool) {
	engine, ok := m.Engines[collection]
	if !ok {
		return CollSyncIDs{}, false
	}
	return CollSyncIDs{Global: m.SyncID, Coll: engine.SyncID}, true
}

// MetaGlobalRecord is meta/global together with the server timestamp of the
// record, needed for conditional re-uploads.
type MetaGlobalRecord struct {
	MetaGlobal
	Modified ServerTimestamp
}
