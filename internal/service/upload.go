// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync15/internal/adapter"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/models"
)

const batchStart = "true"

// collectionUpdate uploads one outgoing changeset.
type collectionUpdate struct {
	client      adapter.StorageClient
	state       *CollectionState
	changes     models.OutgoingChangeset
	fullyAtomic bool
	logger      *logger.Logger
}

func newCollectionUpdate(client adapter.StorageClient, state *CollectionState, changes models.OutgoingChangeset, fullyAtomic bool, log *logger.Logger) *collectionUpdate {
	return &collectionUpdate{
		client:      client,
		state:       state,
		changes:     changes,
		fullyAtomic: fullyAtomic,
		logger:      log,
	}
}

// upload encrypts and posts every change. Successful and failed ids in the
// result partition the changeset ids.
func (u *collectionUpdate) upload(ctx context.Context) (models.UploadInfo, error) {
	info := models.UploadInfo{
		SuccessfulIDs:     []models.Guid{},
		FailedIDs:         []models.Guid{},
		ModifiedTimestamp: u.state.LastModified,
	}
	if len(u.changes.Changes) == 0 {
		return info, nil
	}

	cfg := u.state.Config.WithDefaults()
	queue := newPostQueue(cfg)

	var (
		totalRecords int
		totalBytes   int
	)
	for _, payload := range u.changes.Changes {
		bso, err := u.state.Key.EncryptBso(payload)
		if err != nil {
			return models.UploadInfo{}, fmt.Errorf("encrypt %s record: %w", u.state.Collection, err)
		}

		if len(bso.Payload) > cfg.MaxRecordPayloadBytes {
			if u.fullyAtomic {
				return models.UploadInfo{}, fmt.Errorf("%w: %s is %d bytes, limit %d",
					ErrRecordTooLarge, bso.ID, len(bso.Payload), cfg.MaxRecordPayloadBytes)
			}
			u.logger.Warn().
				Str("collection", u.state.Collection).
				Str("id", bso.ID.String()).
				Int("size", len(bso.Payload)).
				Msg("record too large, not uploading")
			info.FailedIDs = append(info.FailedIDs, bso.ID)
			continue
		}

		record, err := newQueuedRecord(bso)
		if err != nil {
			return models.UploadInfo{}, err
		}
		queue.push(record)
		totalRecords++
		totalBytes += record.size
	}

	posts := queue.drain()
	if len(posts) == 0 {
		return info, nil
	}

	if u.fullyAtomic {
		if totalRecords > cfg.MaxTotalRecords || totalBytes > cfg.MaxTotalBytes {
			return models.UploadInfo{}, fmt.Errorf("%w: %d records / %d bytes exceed batch limits %d / %d",
				ErrAtomicUploadFailed, totalRecords, totalBytes, cfg.MaxTotalRecords, cfg.MaxTotalBytes)
		}
		return u.uploadAtomic(ctx, posts, info)
	}
	return u.uploadEach(ctx, posts, info)
}

// uploadEach commits every POST on its own. Rejected ids are collected, the
// rest of the changeset keeps going.
func (u *collectionUpdate) uploadEach(ctx context.Context, posts [][]models.EncryptedBso, info models.UploadInfo) (models.UploadInfo, error) {
	ifUnmodifiedSince := u.state.LastModified
	var modified models.ServerTimestamp

	for _, post := range posts {
		resp, err := u.client.UploadBatch(ctx, u.state.Collection, post, models.PostParams{
			IfUnmodifiedSince: ifUnmodifiedSince,
		})
		if err != nil {
			return models.UploadInfo{}, fmt.Errorf("upload %s: %w", u.state.Collection, err)
		}

		ok, failed := partitionResponse(post, resp)
		info.SuccessfulIDs = append(info.SuccessfulIDs, ok...)
		info.FailedIDs = append(info.FailedIDs, failed...)

		if len(failed) > 0 {
			u.logger.Warn().
				Str("collection", u.state.Collection).
				Int("failed", len(failed)).
				Any("reasons", resp.Failed).
				Msg("server rejected records")
		}

		if resp.Modified > 0 {
			ifUnmodifiedSince = resp.Modified
		}
		modified = modified.Max(resp.Modified)
	}

	if modified > 0 {
		info.ModifiedTimestamp = modified
	}
	return info, nil
}

// uploadAtomic sends every POST into a single server batch committed by the
// last one. Any rejection fails the whole upload.
func (u *collectionUpdate) uploadAtomic(ctx context.Context, posts [][]models.EncryptedBso, info models.UploadInfo) (models.UploadInfo, error) {
	var (
		batch    = batchStart
		modified models.ServerTimestamp
		ids      []models.Guid
	)

	for i, post := range posts {
		last := i == len(posts)-1
		resp, err := u.client.UploadBatch(ctx, u.state.Collection, post, models.PostParams{
			Batch:             batch,
			Commit:            last,
			IfUnmodifiedSince: u.state.LastModified,
		})
		if err != nil {
			return models.UploadInfo{}, fmt.Errorf("%w: %w", ErrAtomicUploadFailed, err)
		}

		ok, failed := partitionResponse(post, resp)
		if len(failed) > 0 {
			return models.UploadInfo{}, fmt.Errorf("%w: server rejected %d of %d records",
				ErrAtomicUploadFailed, len(failed), len(post))
		}
		ids = append(ids, ok...)

		if i == 0 && !last {
			if resp.Batch == "" {
				return models.UploadInfo{}, fmt.Errorf("%w: %d POSTs needed for %s",
					ErrBatchUnsupported, len(posts), u.state.Collection)
			}
			batch = resp.Batch
		}
		if last {
			modified = resp.Modified
		}
	}

	info.SuccessfulIDs = append(info.SuccessfulIDs, ids...)
	if modified > 0 {
		info.ModifiedTimestamp = modified
	}
	return info, nil
}

// partitionResponse sorts the ids of post into accepted and rejected. An id
// the server did not mention is treated as rejected.
func partitionResponse(post []models.EncryptedBso, resp models.PostResponse) (ok, failed []models.Guid) {
	accepted := make(map[models.Guid]struct{}, len(resp.Success))
	for _, id := range resp.Success {
		accepted[id] = struct{}{}
	}

	for _, bso := range post {
		if _, rejected := resp.Failed[bso.ID]; rejected {
			failed = append(failed, bso.ID)
			continue
		}
		if _, found := accepted[bso.ID]; found {
			ok = append(ok, bso.ID)
			continue
		}
		failed = append(failed, bso.ID)
	}
	return ok, failed
}
