package service

import (
	"context"
	"strings"
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

func newTestUpdate(t *testing.T, cfg models.InfoConfiguration, payloads []models.Payload, atomic bool) (*collectionUpdate, *mock.MockStorageClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockStorageClient(ctrl)

	key, err := crypto.NewRandomKeyBundle()
	require.NoError(t, err)

	state := &CollectionState{
		Collection:   testCollection,
		Config:       cfg,
		Key:          key,
		LastModified: testCollModified,
	}
	changes := models.NewOutgoingChangeset(testCollection)
	changes.Changes = payloads

	return newCollectionUpdate(client, state, changes, atomic, logger.Nop()), client
}

func assertPartition(t *testing.T, submitted []models.Guid, info models.UploadInfo) {
	t.Helper()
	all := append(append([]models.Guid{}, info.SuccessfulIDs...), info.FailedIDs...)
	assert.ElementsMatch(t, submitted, all, "successful and failed must cover every submitted id")
	for _, ok := range info.SuccessfulIDs {
		assert.NotContains(t, info.FailedIDs, ok)
	}
}

// ── Empty ────────────────────────────────────────────────────────────────────

func TestUpload_NoRecords_NoNetwork(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		u, _ := newTestUpdate(t, models.InfoConfiguration{}, nil, atomic)

		info, err := u.upload(context.Background())
		require.NoError(t, err)
		assert.Equal(t, models.UploadInfo{
			SuccessfulIDs:     []models.Guid{},
			FailedIDs:         []models.Guid{},
			ModifiedTimestamp: testCollModified,
		}, info)
	}
}

// ── Non-atomic ───────────────────────────────────────────────────────────────

func TestUpload_NonAtomic_SplitsByRecordCount(t *testing.T) {
	payloads := testPayloads(t, 10)
	u, client := newTestUpdate(t, models.InfoConfiguration{MaxPostRecords: 4}, payloads, false)
	ctx := context.Background()

	gomock.InOrder(
		client.EXPECT().UploadBatch(ctx, testCollection, gomock.Len(4), models.PostParams{IfUnmodifiedSince: testCollModified}).
			DoAndReturn(acceptAll(testCollModified+10)),
		client.EXPECT().UploadBatch(ctx, testCollection, gomock.Len(4), models.PostParams{IfUnmodifiedSince: testCollModified + 10}).
			DoAndReturn(acceptAll(testCollModified+20)),
		client.EXPECT().UploadBatch(ctx, testCollection, gomock.Len(2), models.PostParams{IfUnmodifiedSince: testCollModified + 20}).
			DoAndReturn(acceptAll(testCollModified+30)),
	)

	info, err := u.upload(ctx)
	require.NoError(t, err)
	assert.Equal(t, payloadIDs(payloads), info.SuccessfulIDs)
	assert.Empty(t, info.FailedIDs)
	assert.Equal(t, testCollModified+30, info.ModifiedTimestamp)
}

func TestUpload_NonAtomic_SplitsByBytes(t *testing.T) {
	payloads := testPayloads(t, 6)
	u, client := newTestUpdate(t, models.InfoConfiguration{MaxPostBytes: 1}, payloads, false)

	// a one byte limit still lets every POST carry a single record
	client.EXPECT().UploadBatch(gomock.Any(), testCollection, gomock.Len(1), gomock.Any()).
		DoAndReturn(acceptAll(testCollModified + 10)).Times(6)

	info, err := u.upload(context.Background())
	require.NoError(t, err)
	assertPartition(t, payloadIDs(payloads), info)
	assert.Len(t, info.SuccessfulIDs, 6)
}

func TestUpload_NonAtomic_UnmentionedIDsAreFailed(t *testing.T) {
	payloads := testPayloads(t, 3)
	u, client := newTestUpdate(t, models.InfoConfiguration{}, payloads, false)

	client.EXPECT().UploadBatch(gomock.Any(), testCollection, gomock.Len(3), gomock.Any()).
		Return(models.PostResponse{
			Modified: testCollModified + 10,
			Success:  []models.Guid{"record00000"},
			Failed:   map[models.Guid]string{"record00001": "bad"},
		}, nil)

	info, err := u.upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Guid{"record00000"}, info.SuccessfulIDs)
	assert.Equal(t, []models.Guid{"record00001", "record00002"}, info.FailedIDs)
	assertPartition(t, payloadIDs(payloads), info)
}

func TestUpload_NonAtomic_TooLargeRecordNotSent(t *testing.T) {
	payloads := testPayloads(t, 2)
	big, err := models.NewPayload("bigrecord000", map[string]string{"notes": strings.Repeat("x", 4096)})
	require.NoError(t, err)
	payloads = append(payloads, big)

	u, client := newTestUpdate(t, models.InfoConfiguration{MaxRecordPayloadBytes: 1024}, payloads, false)
	client.EXPECT().UploadBatch(gomock.Any(), testCollection, gomock.Len(2), gomock.Any()).
		DoAndReturn(acceptAll(testCollModified + 10))

	info, err := u.upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Guid{"bigrecord000"}, info.FailedIDs)
	assertPartition(t, payloadIDs(payloads), info)
}

func TestUpload_NonAtomic_OnlyTooLargeRecords_NoNetwork(t *testing.T) {
	big, err := models.NewPayload("bigrecord000", map[string]string{"notes": strings.Repeat("x", 4096)})
	require.NoError(t, err)

	u, _ := newTestUpdate(t, models.InfoConfiguration{MaxRecordPayloadBytes: 1024}, []models.Payload{big}, false)

	info, err := u.upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Guid{"bigrecord000"}, info.FailedIDs)
	assert.Equal(t, testCollModified, info.ModifiedTimestamp)
}

func TestUpload_NonAtomic_PreconditionFailed(t *testing.T) {
	u, client := newTestUpdate(t, models.InfoConfiguration{}, testPayloads(t, 2), false)
	client.EXPECT().UploadBatch(gomock.Any(), testCollection, gomock.Any(), gomock.Any()).
		Return(models.PostResponse{}, &adapter.RemoteError{Route: "storage", StatusCode: 412, Err: adapter.ErrPreconditionFailed})

	_, err := u.upload(context.Background())
	assert.ErrorIs(t, err, adapter.ErrPreconditionFailed)
}

// ── Atomic ───────────────────────────────────────────────────────────────────

func TestUpload_Atomic_UsesBatchAPI(t *testing.T) {
	payloads := testPayloads(t, 5)
	u, client := newTestUpdate(t, models.InfoConfiguration{MaxPostRecords: 2}, payloads, true)
	ctx := context.Background()

	batchResp := func(batch string, modified models.ServerTimestamp) func(context.Context, string, []models.EncryptedBso, models.PostParams) (models.PostResponse, error) {
		return func(ctx context.Context, c string, records []models.EncryptedBso, p models.PostParams) (models.PostResponse, error) {
			resp, err := acceptAll(modified)(ctx, c, records, p)
			resp.Batch = batch
			return resp, err
		}
	}

	gomock.InOrder(
		client.EXPECT().UploadBatch(ctx, testCollection, gomock.Len(2),
			models.PostParams{Batch: "true", IfUnmodifiedSince: testCollModified}).
			DoAndReturn(batchResp("b1", testCollModified)),
		client.EXPECT().UploadBatch(ctx, testCollection, gomock.Len(2),
			models.PostParams{Batch: "b1", IfUnmodifiedSince: testCollModified}).
			DoAndReturn(batchResp("b1", testCollModified)),
		client.EXPECT().UploadBatch(ctx, testCollection, gomock.Len(1),
			models.PostParams{Batch: "b1", Commit: true, IfUnmodifiedSince: testCollModified}).
			DoAndReturn(batchResp("", testCollModified+50)),
	)

	info, err := u.upload(ctx)
	require.NoError(t, err)
	assert.Equal(t, payloadIDs(payloads), info.SuccessfulIDs)
	assert.Empty(t, info.FailedIDs)
	assert.Equal(t, testCollModified+50, info.ModifiedTimestamp)
}

func TestUpload_Atomic_SinglePostCommits(t *testing.T) {
	payloads := testPayloads(t, 3)
	u, client := newTestUpdate(t, models.InfoConfiguration{}, payloads, true)

	client.EXPECT().UploadBatch(gomock.Any(), testCollection, gomock.Len(3),
		models.PostParams{Batch: "true", Commit: true, IfUnmodifiedSince: testCollModified}).
		DoAndReturn(acceptAll(testCollModified + 10))

	info, err := u.upload(context.Background())
	require.NoError(t, err)
	assertPartition(t, payloadIDs(payloads), info)
	assert.Empty(t, info.FailedIDs)
}

func TestUpload_Atomic_RejectionFailsEverything(t *testing.T) {
	u, client := newTestUpdate(t, models.InfoConfiguration{}, testPayloads(t, 3), true)
	client.EXPECT().UploadBatch(gomock.Any(), testCollection, gomock.Any(), gomock.Any()).
		Return(models.PostResponse{
			Success: []models.Guid{"record00000", "record00002"},
			Failed:  map[models.Guid]string{"record00001": "bad"},
		}, nil)

	info, err := u.upload(context.Background())
	require.ErrorIs(t, err, ErrAtomicUploadFailed)
	assert.Empty(t, info.SuccessfulIDs)
}

func TestUpload_Atomic_BatchUnsupported(t *testing.T) {
	u, client := newTestUpdate(t, models.InfoConfiguration{MaxPostRecords: 2}, testPayloads(t, 3), true)
	client.EXPECT().UploadBatch(gomock.Any(), testCollection, gomock.Len(2), gomock.Any()).
		DoAndReturn(acceptAll(testCollModified + 10))

	_, err := u.upload(context.Background())
	require.ErrorIs(t, err, ErrBatchUnsupported)
}

func TestUpload_Atomic_TooLargeRecord(t *testing.T) {
	big, err := models.NewPayload("bigrecord000", map[string]string{"notes": strings.Repeat("x", 4096)})
	require.NoError(t, err)
	u, _ := newTestUpdate(t, models.InfoConfiguration{MaxRecordPayloadBytes: 1024},
		append(testPayloads(t, 2), big), true)

	_, err = u.upload(context.Background())
	require.ErrorIs(t, err, ErrRecordTooLarge)
}

func TestUpload_Atomic_ExceedsTotalRecords(t *testing.T) {
	u, _ := newTestUpdate(t, models.InfoConfiguration{MaxTotalRecords: 2}, testPayloads(t, 3), true)

	_, err := u.upload(context.Background())
	require.ErrorIs(t, err, ErrAtomicUploadFailed)
}

func TestUpload_Atomic_TransportError(t *testing.T) {
	u, client := newTestUpdate(t, models.InfoConfiguration{}, testPayloads(t, 1), true)
	client.EXPECT().UploadBatch(gomock.Any(), testCollection, gomock.Any(), gomock.Any()).
		Return(models.PostResponse{}, &adapter.RemoteError{Route: "storage", Err: adapter.ErrTransport})

	_, err := u.upload(context.Background())
	require.ErrorIs(t, err, ErrAtomicUploadFailed)
	assert.ErrorIs(t, err, adapter.ErrTransport)
}

// ── partitionResponse ────────────────────────────────────────────────────────

func TestPartitionResponse(t *testing.T) {
	post := []models.EncryptedBso{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	resp := models.PostResponse{
		Success: []models.Guid{"a", "c", "zzz"},
		Failed:  map[models.Guid]string{"b": "invalid", "c": "conflict"},
	}

	ok, failed := partitionResponse(post, resp)
	assert.Equal(t, []models.Guid{"a"}, ok)
	assert.Equal(t, []models.Guid{"b", "c", "d"}, failed)
}
