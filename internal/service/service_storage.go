// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/store"
	"github.com/MKhiriev/go-sync15/internal/validators"
	"github.com/MKhiriev/go-sync15/models"
)

// batchIDGenerator mints ids for new server batches.
type batchIDGenerator interface {
	Generate() string
}

// storageService is the concrete implementation of StorageService on top of
// a store.BsoRepository.
type storageService struct {
	// repository persists records and collection timestamps.
	repository store.BsoRepository

	// limits is served at info/configuration and enforced on writes.
	limits models.InfoConfiguration

	validator validators.Validator
	ids       batchIDGenerator
	logger    *logger.Logger
}

// NewStorageService constructs a StorageService. Zero limits fall back to
// the protocol defaults.
func NewStorageService(repository store.BsoRepository, limits models.InfoConfiguration, ids batchIDGenerator, logger *logger.Logger) StorageService {
	limits = limits.WithDefaults()
	return &storageService{
		repository: repository,
		limits:     limits,
		validator:  validators.NewBsoValidator(limits.MaxRecordPayloadBytes),
		ids:        ids,
		logger:     logger,
	}
}

func (s *storageService) InfoConfiguration(_ context.Context) models.InfoConfiguration {
	return s.limits
}

func (s *storageService) InfoCollections(ctx context.Context, userID int64) (models.InfoCollections, error) {
	info, err := s.repository.CollectionTimestamps(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return info, nil
}

func (s *storageService) GetCollection(ctx context.Context, userID int64, req models.CollectionRequest) ([]models.EncryptedBso, models.ServerTimestamp, error) {
	if err := s.validateCollection(ctx, req.Collection); err != nil {
		return nil, 0, err
	}

	modified, err := s.repository.CollectionTimestamp(ctx, userID, req.Collection)
	if err != nil {
		return nil, 0, fmt.Errorf("read collection timestamp: %w", err)
	}

	records, err := s.repository.FindRecords(ctx, userID, req)
	if err != nil {
		return nil, 0, fmt.Errorf("find records: %w", err)
	}

	return records, modified, nil
}

func (s *storageService) GetRecord(ctx context.Context, userID int64, collection string, id models.Guid) (models.EncryptedBso, error) {
	if err := s.validateCollection(ctx, collection); err != nil {
		return models.EncryptedBso{}, err
	}

	record, err := s.repository.FindRecord(ctx, userID, collection, id)
	if err != nil {
		return models.EncryptedBso{}, mapStoreError(err)
	}
	return record, nil
}

func (s *storageService) PutRecord(ctx context.Context, userID int64, collection string, record models.EncryptedBso, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	if err := s.validateCollection(ctx, collection); err != nil {
		return 0, err
	}
	if err := s.validateRecord(ctx, record); err != nil {
		return 0, err
	}

	modified, err := s.repository.PutRecords(ctx, userID, collection, []models.EncryptedBso{record}, ifUnmodifiedSince)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return modified, nil
}

// PostRecords validates every record, stores the valid ones and reports
// the rest as failed.
//
// Without a batch the valid records are committed at once. params.Batch
// "true" opens a new batch, any other value appends to an open one; the
// records of a batch become visible only when a POST sets Commit.
func (s *storageService) PostRecords(ctx context.Context, userID int64, collection string, records []models.EncryptedBso, params models.PostParams) (models.PostResponse, error) {
	log := logger.FromContextOr(ctx, s.logger)

	if err := s.validateCollection(ctx, collection); err != nil {
		return models.PostResponse{}, err
	}
	if len(records) > s.limits.MaxPostRecords {
		return models.PostResponse{}, fmt.Errorf("%w: %d records, at most %d allowed", ErrRequestTooLarge, len(records), s.limits.MaxPostRecords)
	}

	valid, result := s.partitionRecords(ctx, records)

	var err error
	switch params.Batch {
	case "":
		result.Modified, err = s.postUnbatched(ctx, userID, collection, valid, params.IfUnmodifiedSince)
	default:
		result.Batch, result.Modified, err = s.postBatch(ctx, userID, collection, valid, params)
	}
	if err != nil {
		return models.PostResponse{}, err
	}

	log.Debug().
		Int64("user_id", userID).
		Str("collection", collection).
		Str("batch", result.Batch).
		Int("success", len(result.Success)).
		Int("failed", len(result.Failed)).
		Msg("records posted")

	return result, nil
}

func (s *storageService) postUnbatched(ctx context.Context, userID int64, collection string, records []models.EncryptedBso, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	if len(records) == 0 {
		return s.checkUnmodified(ctx, userID, collection, ifUnmodifiedSince)
	}

	modified, err := s.repository.PutRecords(ctx, userID, collection, records, ifUnmodifiedSince)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return modified, nil
}

// postBatch returns the open batch id (empty once committed) and the
// timestamp to report.
func (s *storageService) postBatch(ctx context.Context, userID int64, collection string, records []models.EncryptedBso, params models.PostParams) (string, models.ServerTimestamp, error) {
	current, err := s.checkUnmodified(ctx, userID, collection, params.IfUnmodifiedSince)
	if err != nil {
		return "", 0, err
	}

	batchID := params.Batch
	if batchID == batchStart {
		batchID = s.ids.Generate()
		if err = s.repository.CreateBatch(ctx, userID, collection, batchID); err != nil {
			return "", 0, fmt.Errorf("create batch: %w", err)
		}
	}

	if err = s.repository.AppendBatch(ctx, userID, collection, batchID, records); err != nil {
		return "", 0, mapStoreError(err)
	}

	if !params.Commit {
		return batchID, current, nil
	}

	modified, err := s.repository.CommitBatch(ctx, userID, collection, batchID, params.IfUnmodifiedSince)
	if err != nil {
		return "", 0, mapStoreError(err)
	}
	return "", modified, nil
}

func (s *storageService) DeleteCollection(ctx context.Context, userID int64, collection string) (models.ServerTimestamp, error) {
	if err := s.validateCollection(ctx, collection); err != nil {
		return 0, err
	}

	modified, err := s.repository.DeleteCollection(ctx, userID, collection)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return modified, nil
}

// checkUnmodified returns the collection timestamp, or ErrPreconditionFailed
// when it is past a non-zero ifUnmodifiedSince.
func (s *storageService) checkUnmodified(ctx context.Context, userID int64, collection string, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	current, err := s.repository.CollectionTimestamp(ctx, userID, collection)
	if err != nil {
		return 0, fmt.Errorf("read collection timestamp: %w", err)
	}
	if !ifUnmodifiedSince.IsZero() && current > ifUnmodifiedSince {
		return 0, ErrPreconditionFailed
	}
	return current, nil
}

// partitionRecords splits records into the valid ones and a response that
// already lists every id as succeeded or failed.
func (s *storageService) partitionRecords(ctx context.Context, records []models.EncryptedBso) ([]models.EncryptedBso, models.PostResponse) {
	result := models.PostResponse{
		Success: make([]models.Guid, 0, len(records)),
		Failed:  make(map[models.Guid]string),
	}

	valid := make([]models.EncryptedBso, 0, len(records))
	for _, record := range records {
		if err := s.validateRecord(ctx, record); err != nil {
			result.Failed[record.ID] = err.Error()
			continue
		}
		valid = append(valid, record)
		result.Success = append(result.Success, record.ID)
	}
	return valid, result
}

func (s *storageService) validateRecord(ctx context.Context, record models.EncryptedBso) error {
	if err := s.validator.Validate(ctx, record); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}

func (s *storageService) validateCollection(ctx context.Context, collection string) error {
	if err := s.validator.Validate(ctx, validators.Collection(collection)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}

// mapStoreError translates repository sentinels into service errors.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrCollectionModified):
		return fmt.Errorf("%w: %w", ErrPreconditionFailed, err)
	case errors.Is(err, store.ErrBatchNotFound):
		return fmt.Errorf("%w: %w", ErrBatchNotFound, err)
	default:
		return err
	}
}
