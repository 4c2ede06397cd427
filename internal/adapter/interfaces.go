// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the sync engine and
// the remote storage service.
//
// The primary abstraction is [StorageClient], which decouples the service
// layer from the HTTP protocol. [NewHTTPStorageClient] is the resty-based
// implementation.
//
// Every failure is returned as a [*RemoteError] that wraps one of the
// sentinels in errors.go, so callers can use [errors.Is] for
// transport-agnostic handling (e.g. [ErrPreconditionFailed] for 412,
// [ErrUnauthorized] for 401) and [errors.As] to read the route and status.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-sync15/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/storage_client_mock.go -package=mock

// StorageClient speaks the storage protocol on behalf of the engine.
// Implementations are responsible for serialisation, authentication headers,
// timestamp headers and mapping transport-level errors to [*RemoteError].
type StorageClient interface {
	// FetchCollection issues the request built by a store and returns the
	// encrypted records together with the collection timestamp the server
	// reported in X-Last-Modified.
	FetchCollection(ctx context.Context, req models.CollectionRequest) ([]models.EncryptedBso, models.ServerTimestamp, error)

	// UploadBatch POSTs records to collection. params selects the batch
	// semantics and the X-If-Unmodified-Since precondition. The server may
	// accept some records and reject others; that is not an error.
	UploadBatch(ctx context.Context, collection string, records []models.EncryptedBso, params models.PostParams) (models.PostResponse, error)

	// FetchInfoConfiguration returns the server limits. Servers that do not
	// implement the endpoint answer 404 ([ErrNotFound]).
	FetchInfoConfiguration(ctx context.Context) (models.InfoConfiguration, error)

	// FetchInfoCollections returns the last-modified timestamp of every
	// collection the account has.
	FetchInfoCollections(ctx context.Context) (models.InfoCollections, error)

	// FetchMetaGlobal returns the cleartext meta/global record, or
	// [ErrNotFound] on a fresh account.
	FetchMetaGlobal(ctx context.Context) (models.MetaGlobalRecord, error)

	// PutMetaGlobal replaces meta/global. A non-zero ifUnmodifiedSince makes
	// the write conditional. Returns the new record timestamp.
	PutMetaGlobal(ctx context.Context, meta models.MetaGlobal, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error)

	// FetchCryptoKeys returns the encrypted crypto/keys record.
	FetchCryptoKeys(ctx context.Context) (models.EncryptedBso, error)

	// PutCryptoKeys replaces crypto/keys, conditionally when
	// ifUnmodifiedSince is non-zero. Returns the new record timestamp.
	PutCryptoKeys(ctx context.Context, keys models.EncryptedBso, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error)

	// DeleteCollection removes every record of collection on the server.
	DeleteCollection(ctx context.Context, collection string) error
}
