package http

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/MKhiriev/go-sync15/internal/service"
	"github.com/MKhiriev/go-sync15/internal/store"
	"github.com/MKhiriev/go-sync15/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const collModified = models.ServerTimestamp(1699999999990)

func TestGetCollection_Full(t *testing.T) {
	s := newTestServer(t)

	want := models.CollectionRequest{
		Collection: "passwords",
		Full:       true,
		Newer:      models.ServerTimestamp(1699999990120),
		IDs:        []models.Guid{"aaa", "bbb"},
		Limit:      10,
		Order:      models.OrderNewest,
	}
	records := []models.EncryptedBso{
		{ID: "aaa", Modified: 1699999999990, Payload: "p1"},
		{ID: "bbb", Modified: 1699999999000, Payload: "p2"},
	}
	s.storage.EXPECT().GetCollection(gomock.Any(), testUserID, want).Return(records, collModified, nil)

	rr := s.do(http.MethodGet, "/storage/passwords?full=1&newer=1699999990.12&ids=aaa,bbb&limit=10&sort=newest", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1699999999.99", rr.Header().Get(models.HeaderLastModified))
	assert.Equal(t, "2", rr.Header().Get(models.HeaderWeaveRecords))
	assert.Equal(t, records, decodeJSON[[]models.EncryptedBso](t, rr))
}

func TestGetCollection_IDsOnly(t *testing.T) {
	s := newTestServer(t)

	s.storage.EXPECT().GetCollection(gomock.Any(), testUserID, models.CollectionRequest{Collection: "passwords"}).
		Return([]models.EncryptedBso{{ID: "aaa"}, {ID: "bbb"}}, collModified, nil)

	rr := s.do(http.MethodGet, "/storage/passwords", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []models.Guid{"aaa", "bbb"}, decodeJSON[[]models.Guid](t, rr))
}

func TestGetCollection_EmptyIsArray(t *testing.T) {
	s := newTestServer(t)

	s.storage.EXPECT().GetCollection(gomock.Any(), testUserID, gomock.Any()).Return(nil, models.ServerTimestamp(0), nil)

	rr := s.do(http.MethodGet, "/storage/passwords?full=1", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
	assert.Equal(t, "0.00", rr.Header().Get(models.HeaderLastModified))
}

func TestGetCollection_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		serviceErr error
		wantStatus int
	}{
		{name: "unknown sort", target: "/storage/passwords?sort=random", wantStatus: http.StatusBadRequest},
		{name: "bad limit", target: "/storage/passwords?limit=-1", wantStatus: http.StatusBadRequest},
		{name: "bad newer", target: "/storage/passwords?newer=yesterday", wantStatus: http.StatusBadRequest},
		{
			name:       "invalid collection",
			target:     "/storage/pass%20words",
			serviceErr: fmt.Errorf("%w: collection name", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "database failure",
			target:     "/storage/passwords",
			serviceErr: fmt.Errorf("find records: %w", store.ErrExecutingQuery),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			if tt.serviceErr != nil {
				s.storage.EXPECT().GetCollection(gomock.Any(), testUserID, gomock.Any()).Return(nil, models.ServerTimestamp(0), tt.serviceErr)
			}

			rr := s.do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rr.Body.String(), "sql")
			}
		})
	}
}

func TestGetRecord(t *testing.T) {
	s := newTestServer(t)
	record := models.EncryptedBso{ID: "global", Modified: collModified, Payload: `{"syncID":"abc"}`}
	s.storage.EXPECT().GetRecord(gomock.Any(), testUserID, "meta", models.Guid("global")).Return(record, nil)

	rr := s.do(http.MethodGet, "/storage/meta/global", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, record, decodeJSON[models.EncryptedBso](t, rr))
	assert.Equal(t, collModified.String(), rr.Header().Get(models.HeaderLastModified))
}

func TestGetRecord_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.storage.EXPECT().GetRecord(gomock.Any(), testUserID, "crypto", models.Guid("keys")).
		Return(models.EncryptedBso{}, fmt.Errorf("%w: %w", service.ErrNotFound, store.ErrNotFound))

	rr := s.do(http.MethodGet, "/storage/crypto/keys", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPutRecord(t *testing.T) {
	s := newTestServer(t)
	// one step past the request time, the response timestamp follows it
	modified := models.ServerTimestamp(1700000000010)

	s.storage.EXPECT().PutRecord(gomock.Any(), testUserID, "meta",
		models.EncryptedBso{ID: "global", Payload: "{}"}, collModified).Return(modified, nil)

	rr := s.do(http.MethodPut, "/storage/meta/global", `{"id":"ignored","payload":"{}"}`,
		models.HeaderIfUnmodifiedSince, collModified.String())

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1700000000.01", rr.Header().Get(models.HeaderLastModified))
	assert.Equal(t, "1700000000.01", rr.Header().Get(models.HeaderWeaveTimestamp))
}

func TestPutRecord_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		headers    []string
		serviceErr error
		wantStatus int
	}{
		{name: "bad json", body: `{"payload":`, wantStatus: http.StatusBadRequest},
		{name: "bad precondition header", body: `{"payload":"{}"}`, headers: []string{models.HeaderIfUnmodifiedSince, "soon"}, wantStatus: http.StatusBadRequest},
		{name: "modified since", body: `{"payload":"{}"}`, serviceErr: service.ErrPreconditionFailed, wantStatus: http.StatusPreconditionFailed},
		{name: "invalid record", body: `{"payload":""}`, serviceErr: fmt.Errorf("%w: empty payload", service.ErrInvalidRecord), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			if tt.serviceErr != nil {
				s.storage.EXPECT().PutRecord(gomock.Any(), testUserID, "meta", gomock.Any(), gomock.Any()).Return(models.ServerTimestamp(0), tt.serviceErr)
			}

			rr := s.do(http.MethodPut, "/storage/meta/global", tt.body, tt.headers...)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestPostRecords_Batch(t *testing.T) {
	s := newTestServer(t)

	records := []models.EncryptedBso{{ID: "aaa", Payload: "p1"}, {ID: "bbb", Payload: "p2"}}
	params := models.PostParams{Batch: "true", IfUnmodifiedSince: collModified}
	response := models.PostResponse{
		Batch:    "batch-1",
		Modified: collModified,
		Success:  []models.Guid{"aaa", "bbb"},
		Failed:   map[models.Guid]string{},
	}
	s.storage.EXPECT().PostRecords(gomock.Any(), testUserID, "passwords", records, params).Return(response, nil)

	rr := s.do(http.MethodPost, "/storage/passwords?batch=true",
		`[{"id":"aaa","payload":"p1"},{"id":"bbb","payload":"p2"}]`,
		models.HeaderIfUnmodifiedSince, collModified.String())

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, response, decodeJSON[models.PostResponse](t, rr))
	assert.Equal(t, collModified.String(), rr.Header().Get(models.HeaderLastModified))
}

func TestPostRecords_Commit(t *testing.T) {
	s := newTestServer(t)

	params := models.PostParams{Batch: "batch-1", Commit: true}
	s.storage.EXPECT().PostRecords(gomock.Any(), testUserID, "passwords", []models.EncryptedBso{}, params).
		Return(models.PostResponse{Modified: 1700000000000, Success: []models.Guid{}, Failed: map[models.Guid]string{}}, nil)

	rr := s.do(http.MethodPost, "/storage/passwords?batch=batch-1&commit=true", `[]`)

	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeJSON[models.PostResponse](t, rr)
	assert.Empty(t, got.Batch)
	assert.Equal(t, models.ServerTimestamp(1700000000000), got.Modified)
}

func TestPostRecords_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "commit without batch", target: "/storage/passwords?commit=true", body: `[]`, wantStatus: http.StatusBadRequest},
		{name: "bad commit flag", target: "/storage/passwords?batch=true&commit=maybe", body: `[]`, wantStatus: http.StatusBadRequest},
		{name: "not an array", target: "/storage/passwords", body: `{"id":"aaa"}`, wantStatus: http.StatusBadRequest},
		{name: "body over max_request_bytes", target: "/storage/passwords", body: `[{"id":"aaa","payload":"` + strings.Repeat("x", models.DefaultMaxRequestBytes) + `"}]`, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "too many records", target: "/storage/passwords", body: `[]`, serviceErr: fmt.Errorf("%w: 101 records", service.ErrRequestTooLarge), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "unknown batch", target: "/storage/passwords?batch=nope", body: `[]`, serviceErr: service.ErrBatchNotFound, wantStatus: http.StatusBadRequest},
		{name: "modified since", target: "/storage/passwords", body: `[]`, serviceErr: service.ErrPreconditionFailed, wantStatus: http.StatusPreconditionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			if tt.serviceErr != nil {
				s.storage.EXPECT().PostRecords(gomock.Any(), testUserID, "passwords", gomock.Any(), gomock.Any()).Return(models.PostResponse{}, tt.serviceErr)
			}

			rr := s.do(http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestDeleteCollection(t *testing.T) {
	s := newTestServer(t)
	s.storage.EXPECT().DeleteCollection(gomock.Any(), testUserID, "passwords").Return(models.ServerTimestamp(1700000000000), nil)

	rr := s.do(http.MethodDelete, "/storage/passwords", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1700000000.00", rr.Header().Get(models.HeaderLastModified))
	assert.JSONEq(t, `{"modified":1700000000.00}`, rr.Body.String())
}

func TestDeleteCollection_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.storage.EXPECT().DeleteCollection(gomock.Any(), testUserID, "tabs").Return(models.ServerTimestamp(0), service.ErrNotFound)

	rr := s.do(http.MethodDelete, "/storage/tabs", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInfoConfiguration(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/info/configuration", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.DefaultInfoConfiguration(), decodeJSON[models.InfoConfiguration](t, rr))
}

func TestInfoCollections(t *testing.T) {
	s := newTestServer(t)
	info := models.InfoCollections{
		"passwords": collModified,
		"meta":      1699999990000,
	}
	s.storage.EXPECT().InfoCollections(gomock.Any(), testUserID).Return(info, nil)

	rr := s.do(http.MethodGet, "/info/collections", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, info, decodeJSON[models.InfoCollections](t, rr))
	assert.Equal(t, collModified.String(), rr.Header().Get(models.HeaderLastModified))
}

func TestInfoCollections_Error(t *testing.T) {
	s := newTestServer(t)
	s.storage.EXPECT().InfoCollections(gomock.Any(), testUserID).Return(nil, fmt.Errorf("list collections: %w", store.ErrScanningRows))

	rr := s.do(http.MethodGet, "/info/collections", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
