package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-sync15/internal/adapter"
	"github.com/MKhiriev/go-sync15/internal/crypto"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/models"
)

// GlobalState is the account-wide sync metadata read at the start of a pass.
// It is never mutated while stores are syncing.
type GlobalState struct {
	Config      models.InfoConfiguration
	Collections models.InfoCollections
	Global      models.MetaGlobalRecord
	// Keys is nil when the collection keys are not available yet.
	Keys *crypto.CollectionKeys
	// EncryptedKeys is the crypto/keys record as fetched. It is used when Keys
	// is nil and a root bundle is supplied later.
	EncryptedKeys *models.EncryptedBso
}

// CollectionKeys returns the decrypted keys, decrypting EncryptedKeys with
// root when needed. A nil result with a nil error means no keys exist.
func (g *GlobalState) CollectionKeys(root crypto.KeyBundle) (*crypto.CollectionKeys, error) {
	if g.Keys != nil {
		return g.Keys, nil
	}
	if g.EncryptedKeys == nil {
		return nil, nil
	}
	keys, err := crypto.DecryptKeys(root, *g.EncryptedKeys)
	if err != nil {
		return nil, fmt.Errorf("decrypt crypto/keys: %w", err)
	}
	return &keys, nil
}

// GlobalStateProvider is a lazily filled cache cell for [GlobalState].
// Get builds the snapshot on first use; Invalidate is the only way to drop it.
type GlobalStateProvider struct {
	client  adapter.StorageClient
	root    crypto.KeyBundle
	engines []string
	logger  *logger.Logger

	mu    sync.Mutex
	state *GlobalState
}

// NewGlobalStateProvider returns a provider that registers engines in
// meta/global when they are missing.
func NewGlobalStateProvider(client adapter.StorageClient, root crypto.KeyBundle, engines []string, logger *logger.Logger) *GlobalStateProvider {
	return &GlobalStateProvider{
		client:  client,
		root:    root,
		engines: append([]string(nil), engines...),
		logger:  logger,
	}
}

// Get returns the cached snapshot or fetches a new one.
func (p *GlobalStateProvider) Get(ctx context.Context) (*GlobalState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != nil {
		return p.state, nil
	}

	state, err := p.build(ctx)
	if err != nil {
		return nil, err
	}
	p.state = state
	return state, nil
}

// Invalidate drops the cached snapshot so the next Get refetches it.
func (p *GlobalStateProvider) Invalidate() {
	p.mu.Lock()
	p.state = nil
	p.mu.Unlock()
}

func (p *GlobalStateProvider) build(ctx context.Context) (*GlobalState, error) {
	cfg, err := p.client.FetchInfoConfiguration(ctx)
	if err != nil {
		if !errors.Is(err, adapter.ErrNotFound) {
			return nil, fmt.Errorf("fetch info/configuration: %w", err)
		}
		cfg = models.DefaultInfoConfiguration()
	}
	cfg = cfg.WithDefaults()

	collections, err := p.client.FetchInfoCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch info/collections: %w", err)
	}

	meta, err := p.client.FetchMetaGlobal(ctx)
	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return p.freshStart(ctx, cfg, "meta/global is missing")
	case err != nil:
		return nil, fmt.Errorf("fetch meta/global: %w", err)
	case meta.StorageVersion > models.StorageVersion:
		return nil, fmt.Errorf("%w: server has %d, client supports %d",
			ErrStorageVersionUnsupported, meta.StorageVersion, models.StorageVersion)
	case meta.StorageVersion < models.StorageVersion:
		return p.freshStart(ctx, cfg, fmt.Sprintf("storage version %d is outdated", meta.StorageVersion))
	}

	// Without crypto/keys the stored records cannot be decrypted.
	encKeys, err := p.client.FetchCryptoKeys(ctx)
	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return p.freshStart(ctx, cfg, "crypto/keys is missing")
	case err != nil:
		return nil, fmt.Errorf("fetch crypto/keys: %w", err)
	}

	if meta, err = p.registerEngines(ctx, meta); err != nil {
		return nil, err
	}

	keys, err := crypto.DecryptKeys(p.root, encKeys)
	if err != nil {
		return nil, fmt.Errorf("decrypt crypto/keys: %w", err)
	}

	return &GlobalState{
		Config:        cfg,
		Collections:   collections,
		Global:        meta,
		Keys:          &keys,
		EncryptedKeys: &encKeys,
	}, nil
}

// freshStart wipes the engine collections and writes a brand new meta/global
// and crypto/keys.
func (p *GlobalStateProvider) freshStart(ctx context.Context, cfg models.InfoConfiguration, reason string) (*GlobalState, error) {
	p.logger.Warn().Str("reason", reason).Strs("engines", p.engines).Msg("performing fresh start")

	meta := models.MetaGlobal{
		SyncID:         models.NewGuid().String(),
		StorageVersion: models.StorageVersion,
		Engines:        make(map[string]models.MetaGlobalEngine, len(p.engines)),
	}
	for _, name := range p.engines {
		meta.Engines[name] = models.MetaGlobalEngine{Version: 1, SyncID: models.NewGuid().String()}
		if err := p.client.DeleteCollection(ctx, name); err != nil && !errors.Is(err, adapter.ErrNotFound) {
			return nil, fmt.Errorf("wipe collection %s: %w", name, err)
		}
	}

	modified, err := p.client.PutMetaGlobal(ctx, meta, 0)
	if err != nil {
		return nil, fmt.Errorf("upload meta/global: %w", err)
	}

	keys, encKeys, err := p.uploadNewKeys(ctx, 0)
	if err != nil {
		return nil, err
	}

	collections, err := p.client.FetchInfoCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch info/collections: %w", err)
	}

	return &GlobalState{
		Config:        cfg,
		Collections:   collections,
		Global:        models.MetaGlobalRecord{MetaGlobal: meta, Modified: modified},
		Keys:          keys,
		EncryptedKeys: encKeys,
	}, nil
}

// registerEngines adds configured engines that meta/global does not know
// about and are not declined.
func (p *GlobalStateProvider) registerEngines(ctx context.Context, meta models.MetaGlobalRecord) (models.MetaGlobalRecord, error) {
	var added []string
	for _, name := range p.engines {
		if _, ok := meta.Engines[name]; ok || meta.IsDeclined(name) {
			continue
		}
		if meta.Engines == nil {
			meta.Engines = make(map[string]models.MetaGlobalEngine)
		}
		meta.Engines[name] = models.MetaGlobalEngine{Version: 1, SyncID: models.NewGuid().String()}
		added = append(added, name)
	}
	if len(added) == 0 {
		return meta, nil
	}

	p.logger.Info().Strs("engines", added).Msg("registering engines in meta/global")

	modified, err := p.client.PutMetaGlobal(ctx, meta.MetaGlobal, meta.Modified)
	if err != nil {
		return models.MetaGlobalRecord{}, fmt.Errorf("upload meta/global: %w", err)
	}
	meta.Modified = modified
	return meta, nil
}

func (p *GlobalStateProvider) uploadNewKeys(ctx context.Context, ifUnmodifiedSince models.ServerTimestamp) (*crypto.CollectionKeys, *models.EncryptedBso, error) {
	keys, err := crypto.NewRandomCollectionKeys()
	if err != nil {
		return nil, nil, fmt.Errorf("generate collection keys: %w", err)
	}
	bso, err := crypto.EncryptKeys(p.root, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("encrypt crypto/keys: %w", err)
	}
	modified, err := p.client.PutCryptoKeys(ctx, bso, ifUnmodifiedSince)
	if err != nil {
		return nil, nil, fmt.Errorf("upload crypto/keys: %w", err)
	}
	keys.Timestamp = modified
	bso.Modified = modified
	return &keys, &bso, nil
}
