package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-sync15/internal/adapter"
	"github.com/MKhiriev/go-sync15/internal/config"
	"github.com/MKhiriev/go-sync15/internal/crypto"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/service"
	"github.com/MKhiriev/go-sync15/internal/store"
	"github.com/MKhiriev/go-sync15/internal/workers"
)

var errNoStores = errors.New("none of the configured engines has a local store")

type App struct {
	manager *service.SyncManager
	stores  []service.Store
	workers *workers.Workers
	closer  io.Closer
	logger  *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp opens the local storage and builds the sync pipeline described by
// cfg. The returned App owns the storage and must be closed.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	root, err := rootKey(cfg.Sync)
	if err != nil {
		return nil, fmt.Errorf("root key: %w", err)
	}

	storageClient, err := adapter.NewHTTPStorageClient(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	stores := selectStores(cfg.Sync.Engines, map[string]service.Store{
		store.PasswordsCollection: storages.Passwords,
	}, log)
	if len(stores) == 0 {
		storages.Close()
		return nil, errNoStores
	}

	return newApp(storageClient, stores, root, cfg, storages, log), nil
}

func newApp(storageClient adapter.StorageClient, stores []service.Store, root crypto.KeyBundle,
	cfg *config.ClientConfig, closer io.Closer, log *logger.Logger) *App {
	syncer := service.NewSynchronizer(storageClient, service.LimitOverrides{
		MaxPostRecords: cfg.Sync.MaxPostRecords,
		MaxPostBytes:   cfg.Sync.MaxPostBytes,
	}, log)
	provider := service.NewGlobalStateProvider(storageClient, root, cfg.Sync.Engines, log)
	manager := service.NewSyncManager(syncer, provider, root, log, service.WithFullyAtomic(cfg.Sync.FullyAtomic))

	app := &App{
		manager: manager,
		stores:  stores,
		closer:  closer,
		logger:  log,
	}
	job := service.NewSyncJob(service.StoresPass(manager, stores...), app.logPass)
	app.workers = workers.NewWorkers(workers.NewSyncWorker(job, cfg.Workers.SyncInterval))
	return app
}

// Run syncs right away and then periodically until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Int("stores", len(a.stores)).Msg("starting sync client")

	a.workers.Start(ctx)
	<-ctx.Done()
	a.workers.Stop()

	a.logger.Info().Msg("sync client stopped")
	return nil
}

// Wipe removes every local record and disconnects the stores, so the next
// pass starts from scratch.
func (a *App) Wipe(ctx context.Context) error {
	if err := a.manager.WipeAll(ctx, a.stores...); err != nil {
		return fmt.Errorf("wipe: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) logPass(result service.PassResult, err error) {
	if err != nil {
		a.logger.Error().Err(err).Msg("sync pass did not start")
		return
	}
	for _, res := range result.Results {
		event := a.logger.Info()
		if res.Err != nil {
			event = a.logger.Warn().Err(res.Err)
		}
		event.Str("collection", res.Collection).
			Stringer("stage", res.Outcome.Stage).
			Msg("store synced")
	}
}

// rootKey returns the account root bundle from the raw key, or derives it
// from the passphrase and salt.
func rootKey(cfg config.ClientSync) (crypto.KeyBundle, error) {
	if cfg.RootKey != "" {
		secret, err := base64.StdEncoding.DecodeString(cfg.RootKey)
		if err != nil {
			return crypto.KeyBundle{}, fmt.Errorf("decode root key: %w", err)
		}
		return crypto.KeyBundleFromRootSecret(secret)
	}

	salt, err := base64.StdEncoding.DecodeString(cfg.Salt)
	if err != nil {
		return crypto.KeyBundle{}, fmt.Errorf("decode salt: %w", err)
	}
	return crypto.NewDeriver().DeriveRootBundle(cfg.Passphrase, salt)
}

// selectStores returns the stores of engines in engine order. Engines
// without a local store are synced by other clients only.
func selectStores(engines []string, available map[string]service.Store, log *logger.Logger) []service.Store {
	var stores []service.Store
	for _, engine := range engines {
		s, ok := available[engine]
		if !ok {
			log.Warn().Str("engine", engine).Msg("no local store for engine, skipping")
			continue
		}
		stores = append(stores, s)
	}
	return stores
}
