package service

import (
	"context"

	"github.com/MKhiriev/go-sync15/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// StorageService implements the storage protocol of the reference server.
// Every method works on the records of a single user.
type StorageService interface {
	// InfoConfiguration returns the limits served at info/configuration.
	InfoConfiguration(ctx context.Context) models.InfoConfiguration

	// InfoCollections returns the last-modified time of every collection.
	InfoCollections(ctx context.Context, userID int64) (models.InfoCollections, error)

	// GetCollection returns the records matching req together with the
	// collection timestamp.
	GetCollection(ctx context.Context, userID int64, req models.CollectionRequest) ([]models.EncryptedBso, models.ServerTimestamp, error)

	// GetRecord returns one record or ErrNotFound.
	GetRecord(ctx context.Context, userID int64, collection string, id models.Guid) (models.EncryptedBso, error)

	// PutRecord stores a single record and returns the new timestamp.
	PutRecord(ctx context.Context, userID int64, collection string, record models.EncryptedBso, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error)

	// PostRecords stores many records. Invalid records are reported as
	// failed without failing the request. params selects the batch
	// semantics.
	PostRecords(ctx context.Context, userID int64, collection string, records []models.EncryptedBso, params models.PostParams) (models.PostResponse, error)

	// DeleteCollection removes every record of the collection.
	DeleteCollection(ctx context.Context, userID int64, collection string) (models.ServerTimestamp, error)
}

// AuthService issues and validates bearer tokens.
type AuthService interface {
	CreateToken(ctx context.Context, userID int64) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports the version and uptime of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionInfo
}
