package service

import (
	"context"

	"github.com/MKhiriev/go-sync15/internal/telemetry"
	"github.com/MKhiriev/go-sync15/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/store_mock.go -package=mock

// Store is implemented by every domain store (passwords, bookmarks, tabs)
// that wants its collection synced. The engine owns the protocol; the store
// owns reconciliation and its persisted sync bookkeeping.
type Store interface {
	// CollectionName is the server collection the store syncs.
	CollectionName() string

	// ApplyIncoming reconciles the downloaded changes with local data and
	// returns the records to upload. The store must not set the outgoing
	// Timestamp.
	ApplyIncoming(ctx context.Context, inbound models.IncomingChangeset, telem *telemetry.Engine) (models.OutgoingChangeset, error)

	// SyncFinished persists the new collection high-water mark and marks the
	// uploaded ids as synced. It is the only place a successful cycle
	// changes persisted sync state.
	SyncFinished(ctx context.Context, newTimestamp models.ServerTimestamp, recordsSynced []models.Guid) error

	// GetCollectionRequest describes which records to download, typically
	// full records newer than the stored high-water mark.
	GetCollectionRequest(ctx context.Context) (models.CollectionRequest, error)

	// GetSyncAssoc returns the persisted sync ids. When they differ from
	// the server's, the store is Reset with the server's ids.
	GetSyncAssoc(ctx context.Context) (models.StoreSyncAssociation, error)

	// Reset forgets sync bookkeeping without dropping local data, so the
	// next cycle behaves like a first sync. assoc is the new association.
	Reset(ctx context.Context, assoc models.StoreSyncAssociation) error

	// Wipe deletes all local data of the collection.
	Wipe(ctx context.Context) error
}

// SyncPreparer is implemented by stores that need the cross-collection
// clients context before syncing (for example to resolve device names).
type SyncPreparer interface {
	PrepareForSync(ctx context.Context, clients *models.ClientsContext) error
}
