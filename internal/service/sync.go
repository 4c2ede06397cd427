// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync15/internal/adapter"
	"github.com/MKhiriev/go-sync15/internal/crypto"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/telemetry"
	"github.com/MKhiriev/go-sync15/models"
)

// Stage is how far a sync cycle got.
type Stage int

const (
	StageInit Stage = iota
	StageStateResolved
	StageFetched
	StageApplied
	StageUploaded
	StageFinished
	StageSkipped
	StageCancelled
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageStateResolved:
		return "state_resolved"
	case StageFetched:
		return "fetched"
	case StageApplied:
		return "applied"
	case StageUploaded:
		return "uploaded"
	case StageFinished:
		return "finished"
	case StageSkipped:
		return "skipped"
	case StageCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Outcome summarizes one Synchronize call. On error Stage is the last stage
// completed (or StageCancelled).
type Outcome struct {
	Collection string
	Stage      Stage
	// SkipReason is set when Stage is StageSkipped.
	SkipReason string
	// Incoming is the number of records downloaded.
	Incoming int
	Upload   models.UploadInfo
}

// SyncRequest is the input of a single collection sync cycle.
type SyncRequest struct {
	Global  *GlobalState
	RootKey crypto.KeyBundle
	Store   Store
	// FullyAtomic makes the upload all-or-nothing through the server batch
	// API.
	FullyAtomic bool
	Telemetry   *telemetry.Engine
	// Clients is optional. When set, stores implementing SyncPreparer are
	// prepared with it.
	Clients *models.ClientsContext
}

// Synchronizer drives one collection through fetch, apply, upload and
// finish.
type Synchronizer struct {
	client adapter.StorageClient
	limits LimitOverrides
	logger *logger.Logger

	fetch incomingFetcher
}

// NewSynchronizer returns a Synchronizer talking to client. limits lowers
// the server's upload limits for this client.
func NewSynchronizer(client adapter.StorageClient, limits LimitOverrides, log *logger.Logger) *Synchronizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Synchronizer{
		client: client,
		limits: limits,
		logger: log,
		fetch:  fetchIncoming,
	}
}

// Synchronize runs one sync cycle for req.Store. Persisted sync state only
// changes in SyncFinished, so after any error the cycle can be rerun.
func (s *Synchronizer) Synchronize(ctx context.Context, req SyncRequest) (Outcome, error) {
	collection := req.Store.CollectionName()
	log := logger.FromContextOr(ctx, s.logger)

	telem := req.Telemetry
	if telem == nil {
		telem = telemetry.NewEngine(collection)
	}

	outcome := Outcome{Collection: collection, Stage: StageInit}
	outcome, err := s.synchronize(ctx, req, telem, outcome, log)
	if err != nil {
		telem.SetFailure(failureName(err), err)
		event := log.Error()
		if errors.Is(err, ErrInterrupted) {
			event = log.Warn()
		}
		event.Err(err).
			Str("collection", collection).
			Stringer("stage", outcome.Stage).
			Msg("sync failed")
	}
	telem.Finish()
	return outcome, err
}

func (s *Synchronizer) synchronize(ctx context.Context, req SyncRequest, telem *telemetry.Engine, outcome Outcome, log *logger.Logger) (Outcome, error) {
	store := req.Store
	collection := outcome.Collection

	machine := &collStateMachine{
		store:  store,
		global: req.Global,
		root:   req.RootKey,
		limits: s.limits,
		logger: log,
	}
	state, skip, err := machine.resolve(ctx)
	if err != nil {
		return outcome, err
	}
	if state == nil {
		log.Info().Str("collection", collection).Str("reason", skip).Msg("skipping collection")
		outcome.Stage = StageSkipped
		outcome.SkipReason = skip
		return outcome, nil
	}
	outcome.Stage = StageStateResolved

	if req.Clients != nil {
		if preparer, ok := store.(SyncPreparer); ok {
			if err = preparer.PrepareForSync(ctx, req.Clients); err != nil {
				return outcome, storeError(collection, "PrepareForSync", err)
			}
		}
	}

	if err = interrupted(ctx); err != nil {
		outcome.Stage = StageCancelled
		return outcome, err
	}

	request, err := store.GetCollectionRequest(ctx)
	if err != nil {
		return outcome, storeError(collection, "GetCollectionRequest", err)
	}

	log.Debug().Str("collection", collection).Stringer("newer", request.Newer).Msg("fetching incoming")
	incoming, err := s.fetch(ctx, s.client, state, request)
	if err != nil {
		return outcome, err
	}
	if incoming.Timestamp != state.LastModified {
		log.Error().
			Str("collection", collection).
			Stringer("incoming", incoming.Timestamp).
			Stringer("state", state.LastModified).
			Msg("timestamp mismatch after fetch")
		return outcome, fmt.Errorf("%w: incoming %s, state %s",
			ErrTimestampMismatch, incoming.Timestamp, state.LastModified)
	}
	outcome.Stage = StageFetched
	outcome.Incoming = len(incoming.Changes)

	if err = interrupted(ctx); err != nil {
		outcome.Stage = StageCancelled
		return outcome, err
	}

	outgoing, err := store.ApplyIncoming(ctx, incoming, telem)
	if err != nil {
		return outcome, storeError(collection, "ApplyIncoming", err)
	}
	outgoing.Timestamp = incoming.Timestamp
	state.LastModified = incoming.Timestamp
	outcome.Stage = StageApplied

	if err = interrupted(ctx); err != nil {
		outcome.Stage = StageCancelled
		return outcome, err
	}

	log.Debug().
		Str("collection", collection).
		Int("outgoing", len(outgoing.Changes)).
		Bool("atomic", req.FullyAtomic).
		Msg("uploading outgoing")
	upload, err := newCollectionUpdate(s.client, state, outgoing, req.FullyAtomic, log).upload(ctx)
	if err != nil {
		return outcome, err
	}
	telem.AddOutgoing(telemetry.EngineOutgoing{
		Sent:   len(upload.SuccessfulIDs) + len(upload.FailedIDs),
		Failed: len(upload.FailedIDs),
	})
	outcome.Stage = StageUploaded
	outcome.Upload = upload

	if err = store.SyncFinished(ctx, upload.ModifiedTimestamp, upload.SuccessfulIDs); err != nil {
		return outcome, storeError(collection, "SyncFinished", err)
	}
	outcome.Stage = StageFinished

	log.Info().
		Str("collection", collection).
		Int("incoming", outcome.Incoming).
		Int("uploaded", len(upload.SuccessfulIDs)).
		Int("failed", len(upload.FailedIDs)).
		Stringer("timestamp", upload.ModifiedTimestamp).
		Msg("collection synced")
	return outcome, nil
}

func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	return nil
}

// failureName classifies err for telemetry.
func failureName(err error) string {
	var (
		cryptoErr *crypto.Error
		remoteErr *adapter.RemoteError
		storeErr  *StoreError
	)
	switch {
	case errors.Is(err, ErrInterrupted):
		return "interrupted"
	case errors.As(err, &cryptoErr):
		return "cryptoError"
	case errors.As(err, &remoteErr):
		return "httpError"
	case errors.As(err, &storeErr):
		return "storeError"
	default:
		return "unexpectedError"
	}
}
