// Package store holds the persistence layers of the module: the PostgreSQL
// record repository behind the storage server and the SQLite passwords
// store synced by the client.
package store

import (
	"context"

	"github.com/MKhiriev/go-sync15/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/bso_repository_mock.go -package=mock

// BsoRepository persists encrypted records per user and collection. Every
// write bumps the collection timestamp inside the same transaction.
type BsoRepository interface {
	// CollectionTimestamps returns the last-modified time of every
	// non-empty collection of the user.
	CollectionTimestamps(ctx context.Context, userID int64) (models.InfoCollections, error)

	// CollectionTimestamp returns the last-modified time of one collection,
	// zero when it does not exist.
	CollectionTimestamp(ctx context.Context, userID int64, collection string) (models.ServerTimestamp, error)

	// FindRecords returns the records matching req, ordered as requested.
	FindRecords(ctx context.Context, userID int64, req models.CollectionRequest) ([]models.EncryptedBso, error)

	// FindRecord returns one record or ErrNotFound.
	FindRecord(ctx context.Context, userID int64, collection string, id models.Guid) (models.EncryptedBso, error)

	// PutRecords upserts records and returns the new collection timestamp.
	// It fails with ErrCollectionModified when the collection changed after
	// ifUnmodifiedSince (zero disables the check).
	PutRecords(ctx context.Context, userID int64, collection string, records []models.EncryptedBso, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error)

	// DeleteCollection drops every record of the collection and any pending
	// batch. It returns ErrNotFound when the collection does not exist.
	DeleteCollection(ctx context.Context, userID int64, collection string) (models.ServerTimestamp, error)

	// CreateBatch opens an empty pending batch.
	CreateBatch(ctx context.Context, userID int64, collection, batchID string) error

	// AppendBatch adds records to a pending batch or returns
	// ErrBatchNotFound.
	AppendBatch(ctx context.Context, userID int64, collection, batchID string, records []models.EncryptedBso) error

	// CommitBatch moves the records of a pending batch into the collection
	// in one transaction and deletes the batch.
	CommitBatch(ctx context.Context, userID int64, collection, batchID string, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error)
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
