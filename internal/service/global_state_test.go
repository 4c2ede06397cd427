package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-sync15/internal/adapter"
	"github.com/MKhiriev/go-sync15/internal/crypto"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/mock"
	"github.com/MKhiriev/go-sync15/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func notFound(route string) error {
	return &adapter.RemoteError{Route: route, StatusCode: 404, Err: adapter.ErrNotFound}
}

func newTestProvider(t *testing.T, engines ...string) (*GlobalStateProvider, *mock.MockStorageClient, crypto.KeyBundle) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockStorageClient(ctrl)
	root, err := crypto.NewRandomKeyBundle()
	require.NoError(t, err)
	return NewGlobalStateProvider(client, root, engines, logger.Nop()), client, root
}

func existingMeta() models.MetaGlobalRecord {
	return models.MetaGlobalRecord{
		MetaGlobal: models.MetaGlobal{
			SyncID:         testGlobalSyncID,
			StorageVersion: models.StorageVersion,
			Engines: map[string]models.MetaGlobalEngine{
				testCollection: {Version: 1, SyncID: testCollSyncID},
			},
		},
		Modified: testCollModified - 1000,
	}
}

func encryptedKeys(t *testing.T, root crypto.KeyBundle) (crypto.CollectionKeys, models.EncryptedBso) {
	t.Helper()
	keys, err := crypto.NewRandomCollectionKeys()
	require.NoError(t, err)
	bso, err := crypto.EncryptKeys(root, keys)
	require.NoError(t, err)
	bso.Modified = testCollModified - 500
	return keys, bso
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestGlobalStateProvider_Get_Existing(t *testing.T) {
	p, client, root := newTestProvider(t, testCollection)
	ctx := context.Background()
	keys, bso := encryptedKeys(t, root)
	collections := models.InfoCollections{testCollection: testCollModified}

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{MaxPostRecords: 10}, nil)
	client.EXPECT().FetchInfoCollections(ctx).Return(collections, nil)
	client.EXPECT().FetchMetaGlobal(ctx).Return(existingMeta(), nil)
	client.EXPECT().FetchCryptoKeys(ctx).Return(bso, nil)

	state, err := p.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, state.Config.MaxPostRecords)
	assert.Equal(t, models.DefaultMaxPostBytes, state.Config.MaxPostBytes)
	assert.Equal(t, collections, state.Collections)
	assert.Equal(t, existingMeta(), state.Global)
	require.NotNil(t, state.Keys)
	assert.True(t, state.Keys.Default.Equal(keys.Default))
	assert.Equal(t, bso.Modified, state.Keys.Timestamp)

	// cached: no further calls
	again, err := p.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, state, again)
}

func TestGlobalStateProvider_Invalidate_Refetches(t *testing.T) {
	p, client, root := newTestProvider(t, testCollection)
	ctx := context.Background()
	_, bso := encryptedKeys(t, root)

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, nil).Times(2)
	client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{}, nil).Times(2)
	client.EXPECT().FetchMetaGlobal(ctx).Return(existingMeta(), nil).Times(2)
	client.EXPECT().FetchCryptoKeys(ctx).Return(bso, nil).Times(2)

	first, err := p.Get(ctx)
	require.NoError(t, err)
	p.Invalidate()
	second, err := p.Get(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestGlobalStateProvider_InfoConfigurationMissing_UsesDefaults(t *testing.T) {
	p, client, root := newTestProvider(t, testCollection)
	ctx := context.Background()
	_, bso := encryptedKeys(t, root)

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, notFound("info/configuration"))
	client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{}, nil)
	client.EXPECT().FetchMetaGlobal(ctx).Return(existingMeta(), nil)
	client.EXPECT().FetchCryptoKeys(ctx).Return(bso, nil)

	state, err := p.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultInfoConfiguration(), state.Config)
}

func TestGlobalStateProvider_FetchError(t *testing.T) {
	p, client, _ := newTestProvider(t, testCollection)
	ctx := context.Background()

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{},
		&adapter.RemoteError{Route: "info/configuration", StatusCode: 401, Err: adapter.ErrUnauthorized})

	_, err := p.Get(ctx)
	require.ErrorIs(t, err, adapter.ErrUnauthorized)

	// nothing cached after a failure
	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, adapter.ErrTransport)
	_, err = p.Get(ctx)
	require.Error(t, err)
}

// ── Fresh start ──────────────────────────────────────────────────────────────

func TestGlobalStateProvider_FreshStart(t *testing.T) {
	p, client, root := newTestProvider(t, testCollection, "tabs")
	ctx := context.Background()
	after := models.InfoCollections{"meta": testCollModified, "crypto": testCollModified}

	var (
		putMeta models.MetaGlobal
		putKeys models.EncryptedBso
	)

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, nil)
	gomock.InOrder(
		client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{testCollection: 1}, nil),
		client.EXPECT().FetchMetaGlobal(ctx).Return(models.MetaGlobalRecord{}, notFound("meta/global")),
		client.EXPECT().DeleteCollection(ctx, testCollection).Return(nil),
		client.EXPECT().DeleteCollection(ctx, "tabs").Return(notFound("storage/tabs")),
		client.EXPECT().PutMetaGlobal(ctx, gomock.Any(), models.ServerTimestamp(0)).
			DoAndReturn(func(_ context.Context, meta models.MetaGlobal, _ models.ServerTimestamp) (models.ServerTimestamp, error) {
				putMeta = meta
				return testCollModified, nil
			}),
		client.EXPECT().PutCryptoKeys(ctx, gomock.Any(), models.ServerTimestamp(0)).
			DoAndReturn(func(_ context.Context, bso models.EncryptedBso, _ models.ServerTimestamp) (models.ServerTimestamp, error) {
				putKeys = bso
				return testCollModified + 10, nil
			}),
		client.EXPECT().FetchInfoCollections(ctx).Return(after, nil),
	)

	state, err := p.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.StorageVersion, putMeta.StorageVersion)
	assert.True(t, models.Guid(putMeta.SyncID).IsValid())
	require.Len(t, putMeta.Engines, 2)
	assert.NotEqual(t, putMeta.Engines[testCollection].SyncID, putMeta.Engines["tabs"].SyncID)
	assert.Equal(t, putMeta, state.Global.MetaGlobal)
	assert.Equal(t, testCollModified, state.Global.Modified)
	assert.Equal(t, after, state.Collections)

	// the uploaded keys decrypt with the root key and match the state
	uploaded, err := crypto.DecryptKeys(root, putKeys)
	require.NoError(t, err)
	require.NotNil(t, state.Keys)
	assert.True(t, uploaded.Default.Equal(state.Keys.Default))
	assert.Equal(t, testCollModified+10, state.Keys.Timestamp)
}

func TestGlobalStateProvider_OldStorageVersion_FreshStart(t *testing.T) {
	p, client, _ := newTestProvider(t, testCollection)
	ctx := context.Background()
	old := existingMeta()
	old.StorageVersion = models.StorageVersion - 1

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, nil)
	client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{}, nil).Times(2)
	client.EXPECT().FetchMetaGlobal(ctx).Return(old, nil)
	client.EXPECT().DeleteCollection(ctx, testCollection).Return(nil)
	client.EXPECT().PutMetaGlobal(ctx, gomock.Any(), gomock.Any()).Return(testCollModified, nil)
	client.EXPECT().PutCryptoKeys(ctx, gomock.Any(), gomock.Any()).Return(testCollModified, nil)

	state, err := p.Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, testGlobalSyncID, state.Global.SyncID)
}

func TestGlobalStateProvider_NewerStorageVersion(t *testing.T) {
	p, client, _ := newTestProvider(t, testCollection)
	ctx := context.Background()
	newer := existingMeta()
	newer.StorageVersion = models.StorageVersion + 1

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, nil)
	client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{}, nil)
	client.EXPECT().FetchMetaGlobal(ctx).Return(newer, nil)

	_, err := p.Get(ctx)
	require.ErrorIs(t, err, ErrStorageVersionUnsupported)
}

// ── Engines ──────────────────────────────────────────────────────────────────

func TestGlobalStateProvider_RegistersMissingEngines(t *testing.T) {
	p, client, root := newTestProvider(t, testCollection, "tabs", "history")
	ctx := context.Background()
	_, bso := encryptedKeys(t, root)

	meta := existingMeta()
	meta.Declined = []string{"history"}

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, nil)
	client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{}, nil)
	client.EXPECT().FetchMetaGlobal(ctx).Return(meta, nil)
	client.EXPECT().PutMetaGlobal(ctx, gomock.Any(), meta.Modified).
		DoAndReturn(func(_ context.Context, put models.MetaGlobal, _ models.ServerTimestamp) (models.ServerTimestamp, error) {
			assert.Contains(t, put.Engines, "tabs")
			assert.NotContains(t, put.Engines, "history")
			assert.Equal(t, testCollSyncID, put.Engines[testCollection].SyncID)
			return testCollModified + 1, nil
		})
	client.EXPECT().FetchCryptoKeys(ctx).Return(bso, nil)

	state, err := p.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, testCollModified+1, state.Global.Modified)
	assert.Contains(t, state.Global.Engines, "tabs")
}

func TestGlobalStateProvider_MissingKeys_FreshStart(t *testing.T) {
	p, client, root := newTestProvider(t, testCollection)
	ctx := context.Background()

	var putMeta models.MetaGlobal

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, nil)
	gomock.InOrder(
		client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{testCollection: testCollModified}, nil),
		client.EXPECT().FetchMetaGlobal(ctx).Return(existingMeta(), nil),
		client.EXPECT().FetchCryptoKeys(ctx).Return(models.EncryptedBso{}, notFound("crypto/keys")),
		client.EXPECT().DeleteCollection(ctx, testCollection).Return(nil),
		client.EXPECT().PutMetaGlobal(ctx, gomock.Any(), models.ServerTimestamp(0)).
			DoAndReturn(func(_ context.Context, meta models.MetaGlobal, _ models.ServerTimestamp) (models.ServerTimestamp, error) {
				putMeta = meta
				return testCollModified + 1, nil
			}),
		client.EXPECT().PutCryptoKeys(ctx, gomock.Any(), models.ServerTimestamp(0)).Return(testCollModified+2, nil),
		client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{"meta": testCollModified + 1}, nil),
	)

	state, err := p.Get(ctx)
	require.NoError(t, err)

	// old records were encrypted with lost keys, so every store must reset
	assert.NotEqual(t, testGlobalSyncID, putMeta.SyncID)
	assert.NotEqual(t, testCollSyncID, putMeta.Engines[testCollection].SyncID)
	assert.Equal(t, putMeta, state.Global.MetaGlobal)
	assert.NotContains(t, state.Collections, testCollection)

	require.NotNil(t, state.Keys)
	require.NotNil(t, state.EncryptedKeys)
	decrypted, err := crypto.DecryptKeys(root, *state.EncryptedKeys)
	require.NoError(t, err)
	assert.True(t, decrypted.Default.Equal(state.Keys.Default))
}

func TestGlobalStateProvider_MissingKeys_NextCycleResetsStore(t *testing.T) {
	p, client, _ := newTestProvider(t, testCollection)
	ctx := context.Background()

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, nil)
	client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{}, nil).Times(2)
	client.EXPECT().FetchMetaGlobal(ctx).Return(existingMeta(), nil)
	client.EXPECT().FetchCryptoKeys(ctx).Return(models.EncryptedBso{}, notFound("crypto/keys"))
	client.EXPECT().DeleteCollection(ctx, testCollection).Return(nil)
	client.EXPECT().PutMetaGlobal(ctx, gomock.Any(), gomock.Any()).Return(testCollModified, nil)
	client.EXPECT().PutCryptoKeys(ctx, gomock.Any(), gomock.Any()).Return(testCollModified, nil)

	state, err := p.Get(ctx)
	require.NoError(t, err)

	ids, ok := state.Global.CollSyncIDs(testCollection)
	require.True(t, ok)
	assert.NotEqual(t, models.CollSyncIDs{Global: testGlobalSyncID, Coll: testCollSyncID}, ids)
}

func TestGlobalStateProvider_KeysEncryptedWithOtherRoot(t *testing.T) {
	p, client, _ := newTestProvider(t, testCollection)
	ctx := context.Background()
	other, err := crypto.NewRandomKeyBundle()
	require.NoError(t, err)
	_, bso := encryptedKeys(t, other)

	client.EXPECT().FetchInfoConfiguration(ctx).Return(models.InfoConfiguration{}, nil)
	client.EXPECT().FetchInfoCollections(ctx).Return(models.InfoCollections{}, nil)
	client.EXPECT().FetchMetaGlobal(ctx).Return(existingMeta(), nil)
	client.EXPECT().FetchCryptoKeys(ctx).Return(bso, nil)

	_, err = p.Get(ctx)
	var cryptoErr *crypto.Error
	require.ErrorAs(t, err, &cryptoErr)
}

func TestGlobalState_CollectionKeys(t *testing.T) {
	root, err := crypto.NewRandomKeyBundle()
	require.NoError(t, err)

	empty := &GlobalState{}
	keys, err := empty.CollectionKeys(root)
	require.NoError(t, err)
	assert.Nil(t, keys)

	want, bso := encryptedKeys(t, root)
	lazy := &GlobalState{EncryptedKeys: &bso}
	keys, err = lazy.CollectionKeys(root)
	require.NoError(t, err)
	assert.True(t, keys.Default.Equal(want.Default))
}
