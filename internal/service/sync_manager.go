package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync15/internal/adapter"
	"github.com/MKhiriev/go-sync15/internal/crypto"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/telemetry"
	"github.com/MKhiriev/go-sync15/models"
)

// StoreResult is the outcome of syncing one store during a pass.
type StoreResult struct {
	Collection string
	Outcome    Outcome
	Telemetry  *telemetry.Engine
	Err        error
}

// PassResult collects the per-store results of one SyncAll call.
type PassResult struct {
	Results  []StoreResult
	Started  time.Time
	Finished time.Time
}

// Err joins the errors of all failed stores.
func (r PassResult) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Collection, res.Err))
		}
	}
	return errors.Join(errs...)
}

// SyncManager runs sync passes over a set of stores sharing one account.
type SyncManager struct {
	syncer      *Synchronizer
	provider    *GlobalStateProvider
	root        crypto.KeyBundle
	fullyAtomic bool
	clients     *models.ClientsContext
	logger      *logger.Logger
}

// SyncManagerOption configures a SyncManager.
type SyncManagerOption func(*SyncManager)

// WithFullyAtomic makes every upload all-or-nothing.
func WithFullyAtomic(atomic bool) SyncManagerOption {
	return func(m *SyncManager) { m.fullyAtomic = atomic }
}

// WithClientsContext shares clients with stores implementing SyncPreparer.
func WithClientsContext(clients *models.ClientsContext) SyncManagerOption {
	return func(m *SyncManager) { m.clients = clients }
}

// NewSyncManager wires a manager around sync and provider.
func NewSyncManager(syncer *Synchronizer, provider *GlobalStateProvider, root crypto.KeyBundle, log *logger.Logger, opts ...SyncManagerOption) *SyncManager {
	m := &SyncManager{
		syncer:   syncer,
		provider: provider,
		root:     root,
		logger:   log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SyncAll syncs stores one after another against a single global state
// snapshot. A failing store does not stop the pass; its error is reported
// in the result. The returned error is only set when the pass could not
// start at all.
func (m *SyncManager) SyncAll(ctx context.Context, stores ...Store) (PassResult, error) {
	result := PassResult{Started: time.Now()}

	global, err := m.provider.Get(ctx)
	if err != nil {
		m.invalidateOn(err)
		return result, fmt.Errorf("load global state: %w", err)
	}

	for _, store := range stores {
		collection := store.CollectionName()
		telem := telemetry.NewEngine(collection)

		outcome, syncErr := m.syncer.Synchronize(ctx, SyncRequest{
			Global:      global,
			RootKey:     m.root,
			Store:       store,
			FullyAtomic: m.fullyAtomic,
			Telemetry:   telem,
			Clients:     m.clients,
		})
		result.Results = append(result.Results, StoreResult{
			Collection: collection,
			Outcome:    outcome,
			Telemetry:  telem,
			Err:        syncErr,
		})

		if syncErr != nil {
			m.invalidateOn(syncErr)
			if errors.Is(syncErr, ErrInterrupted) {
				break
			}
		}
	}

	result.Finished = time.Now()
	m.logger.Info().
		Int("stores", len(stores)).
		Dur("took", result.Finished.Sub(result.Started)).
		AnErr("error", result.Err()).
		Msg("sync pass finished")
	return result, nil
}

// WipeAll deletes the local data of every store and forgets their sync
// association.
func (m *SyncManager) WipeAll(ctx context.Context, stores ...Store) error {
	var errs []error
	for _, store := range stores {
		collection := store.CollectionName()
		if err := store.Wipe(ctx); err != nil {
			errs = append(errs, storeError(collection, "Wipe", err))
			continue
		}
		if err := store.Reset(ctx, models.Disconnected()); err != nil {
			errs = append(errs, storeError(collection, "Reset", err))
			continue
		}
		m.logger.Info().Str("collection", collection).Msg("local data wiped")
	}
	m.provider.Invalidate()
	return errors.Join(errs...)
}

// invalidateOn drops the cached global state when err suggests it is stale.
func (m *SyncManager) invalidateOn(err error) {
	if errors.Is(err, adapter.ErrPreconditionFailed) ||
		errors.Is(err, adapter.ErrUnauthorized) ||
		errors.Is(err, ErrStateMachineLoop) {
		m.logger.Debug().Err(err).Msg("invalidating global state")
		m.provider.Invalidate()
	}
}
