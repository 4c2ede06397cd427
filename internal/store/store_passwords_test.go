package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/telemetry"
	"github.com/MKhiriev/go-sync15/models"
)

var loginRowColumns = []string{"guid", "data", "modified", "server_modified", "sync_status", "is_deleted"}

func newTestPasswordsStore(t *testing.T) (*PasswordsStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	store := NewPasswordsStore(&DB{
		DB:                 db,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             logger.Nop(),
	}, logger.Nop())
	store.now = func() time.Time { return testNow }
	return store, mock
}

func loginJSON(t *testing.T, data models.LoginData) string {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return string(raw)
}

var exampleLogin = models.LoginData{Origin: "https://example.com", Username: "alice", Password: "hunter2"}

func TestPasswordsStore_Upsert(t *testing.T) {
	t.Run("new login gets an id", func(t *testing.T) {
		store, mock := newTestPasswordsStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q("SELECT guid, data, modified, server_modified, sync_status, is_deleted FROM logins WHERE guid = ?")).
			WillReturnRows(sqlmock.NewRows(loginRowColumns))
		mock.ExpectExec(q("INSERT INTO logins")).
			WithArgs(sqlmock.AnyArg(), loginJSON(t, exampleLogin), testNow.UnixMilli(), 0, syncStatusNew, false).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		id, err := store.Upsert(testContext(), models.Login{Data: exampleLogin})
		require.NoError(t, err)
		assert.True(t, id.IsValid())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("synced login becomes changed", func(t *testing.T) {
		store, mock := newTestPasswordsStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q("FROM logins WHERE guid = ?")).
			WithArgs("id1").
			WillReturnRows(sqlmock.NewRows(loginRowColumns).
				AddRow("id1", "{}", int64(1), int64(1690000000000), syncStatusSynced, false))
		mock.ExpectExec(q("INSERT INTO logins")).
			WithArgs("id1", sqlmock.AnyArg(), testNow.UnixMilli(), int64(1690000000000), syncStatusChanged, false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		id, err := store.Upsert(testContext(), models.Login{ID: "id1", Data: exampleLogin})
		require.NoError(t, err)
		assert.Equal(t, models.Guid("id1"), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid login", func(t *testing.T) {
		store, mock := newTestPasswordsStore(t)

		_, err := store.Upsert(testContext(), models.Login{Data: models.LoginData{Origin: "https://example.com"}})
		require.ErrorIs(t, err, ErrInvalidLogin)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPasswordsStore_Delete(t *testing.T) {
	tests := []struct {
		name    string
		row     []any
		expect  func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "never uploaded login is removed",
			row:  []any{"id1", "{}", int64(1), int64(0), syncStatusNew, false},
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(q("DELETE FROM logins WHERE guid = ?")).
					WithArgs("id1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "synced login leaves a tombstone",
			row:  []any{"id1", "{}", int64(1), int64(1690000000000), syncStatusSynced, false},
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(q("INSERT INTO logins")).
					WithArgs("id1", "{}", testNow.UnixMilli(), int64(1690000000000), syncStatusChanged, true).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "tombstone is not found",
			row:  []any{"id1", "{}", int64(1), int64(0), syncStatusChanged, true},
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectRollback()
			},
			wantErr: ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newTestPasswordsStore(t)

			mock.ExpectBegin()
			mock.ExpectQuery(q("FROM logins WHERE guid = ?")).
				WillReturnRows(sqlmock.NewRows(loginRowColumns).AddRow(toDriverValues(tt.row)...))
			tt.expect(mock)

			err := store.Delete(testContext(), "id1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPasswordsStore_List(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	mock.ExpectQuery(q("FROM logins WHERE is_deleted = ? ORDER BY modified, guid")).
		WithArgs(0).
		WillReturnRows(sqlmock.NewRows(loginRowColumns).
			AddRow("id1", loginJSON(t, exampleLogin), int64(10), int64(0), syncStatusNew, false))

	logins, err := store.List(testContext())
	require.NoError(t, err)
	require.Len(t, logins, 1)
	assert.Equal(t, models.Guid("id1"), logins[0].ID)
	assert.Equal(t, exampleLogin, logins[0].Data)
	assert.Equal(t, int64(10), logins[0].Modified)
}

func TestPasswordsStore_Get_Missing(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	mock.ExpectQuery(q("FROM logins WHERE guid = ?")).
		WillReturnRows(sqlmock.NewRows(loginRowColumns))

	_, err := store.Get(testContext(), "missing")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestPasswordsStore_ApplyIncoming(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	remoteNew, err := models.NewPayload("new1", exampleLogin)
	require.NoError(t, err)
	remoteOld, err := models.NewPayload("conflict", exampleLogin)
	require.NoError(t, err)
	broken := models.Payload{ID: "broken", Data: map[string]json.RawMessage{"username": json.RawMessage(`42`)}}

	inbound := models.NewIncomingChangeset(PasswordsCollection, 1700000000000)
	inbound.Changes = []models.IncomingRecord{
		{Payload: remoteNew, Modified: 1690000000000},
		{Payload: remoteOld, Modified: 1690000000000},
		{Payload: broken, Modified: 1690000000000},
		{Payload: models.NewTombstone("gone"), Modified: 1690000000000},
	}

	localEdit := loginJSON(t, models.LoginData{Origin: "https://example.com", Username: "alice", Password: "newer"})

	mock.ExpectBegin()
	// new1: unknown locally, inserted as synced
	mock.ExpectQuery(q("FROM logins WHERE guid = ?")).WithArgs("new1").
		WillReturnRows(sqlmock.NewRows(loginRowColumns))
	mock.ExpectExec(q("INSERT INTO logins")).
		WithArgs("new1", sqlmock.AnyArg(), int64(1690000000000), int64(1690000000000), syncStatusSynced, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// conflict: local edit is newer and wins
	mock.ExpectQuery(q("FROM logins WHERE guid = ?")).WithArgs("conflict").
		WillReturnRows(sqlmock.NewRows(loginRowColumns).
			AddRow("conflict", localEdit, int64(1695000000000), int64(1680000000000), syncStatusChanged, false))
	// broken: undecodable, counted as failed
	mock.ExpectQuery(q("FROM logins WHERE guid = ?")).WithArgs("broken").
		WillReturnRows(sqlmock.NewRows(loginRowColumns))
	// gone: synced locally, deleted remotely
	mock.ExpectQuery(q("FROM logins WHERE guid = ?")).WithArgs("gone").
		WillReturnRows(sqlmock.NewRows(loginRowColumns).
			AddRow("gone", "{}", int64(1), int64(1680000000000), syncStatusSynced, false))
	mock.ExpectExec(q("DELETE FROM logins WHERE guid = ?")).WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("FROM logins WHERE sync_status <> ?")).
		WillReturnRows(sqlmock.NewRows(loginRowColumns).
			AddRow("conflict", localEdit, int64(1695000000000), int64(1680000000000), syncStatusChanged, false).
			AddRow("deleted1", "{}", int64(1695000000000), int64(1680000000000), syncStatusChanged, true))
	mock.ExpectCommit()

	telem := telemetry.NewEngine(PasswordsCollection)
	outgoing, err := store.ApplyIncoming(testContext(), inbound, telem)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.NotNil(t, telem.Incoming)
	assert.Equal(t, telemetry.EngineIncoming{Applied: 2, Reconciled: 1, Failed: 1, NewFailed: 1}, *telem.Incoming)

	assert.Equal(t, PasswordsCollection, outgoing.Collection)
	assert.True(t, outgoing.Timestamp.IsZero())
	require.Len(t, outgoing.Changes, 2)
	assert.Equal(t, models.Guid("conflict"), outgoing.Changes[0].ID)
	var data models.LoginData
	require.NoError(t, outgoing.Changes[0].Into(&data))
	assert.Equal(t, "newer", data.Password)
	assert.True(t, outgoing.Changes[1].Deleted)
}

func TestPasswordsStore_ApplyIncoming_RemoteNewerWinsConflict(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	remote, err := models.NewPayload("conflict", exampleLogin)
	require.NoError(t, err)
	inbound := models.NewIncomingChangeset(PasswordsCollection, 1700000000000)
	inbound.Changes = []models.IncomingRecord{{Payload: remote, Modified: 1700000000000}}

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM logins WHERE guid = ?")).
		WillReturnRows(sqlmock.NewRows(loginRowColumns).
			AddRow("conflict", "{}", int64(1695000000000), int64(0), syncStatusChanged, false))
	mock.ExpectExec(q("INSERT INTO logins")).
		WithArgs("conflict", loginJSON(t, exampleLogin), int64(1700000000000), int64(1700000000000), syncStatusSynced, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("FROM logins WHERE sync_status <> ?")).
		WillReturnRows(sqlmock.NewRows(loginRowColumns))
	mock.ExpectCommit()

	telem := telemetry.NewEngine(PasswordsCollection)
	outgoing, err := store.ApplyIncoming(testContext(), inbound, telem)
	require.NoError(t, err)
	assert.Empty(t, outgoing.Changes)
	assert.Equal(t, 1, telem.Incoming.Reconciled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPasswordsStore_ApplyIncoming_RollsBackOnError(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	remote, err := models.NewPayload("a", exampleLogin)
	require.NoError(t, err)
	inbound := models.NewIncomingChangeset(PasswordsCollection, 1)
	inbound.Changes = []models.IncomingRecord{{Payload: remote, Modified: 1}}

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM logins WHERE guid = ?")).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	telem := telemetry.NewEngine(PasswordsCollection)
	_, err = store.ApplyIncoming(testContext(), inbound, telem)
	require.ErrorIs(t, err, ErrScanningRow)
	assert.Nil(t, telem.Incoming)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPasswordsStore_SyncFinished(t *testing.T) {
	store, mock := newTestPasswordsStore(t)
	store.uploaded = map[models.Guid]int64{"a": 1695000000000, "b": 1695000000001}

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO sync_meta")).
		WithArgs(metaLastSync, "1700000000120").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM logins WHERE ((guid = ? AND modified = ?) OR (guid = ? AND modified = ?)) AND is_deleted = ?")).
		WithArgs("a", int64(1695000000000), "b", int64(1695000000001), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE logins SET sync_status = ?, server_modified = ?")).
		WithArgs(syncStatusSynced, int64(1700000000120), "a", int64(1695000000000), "b", int64(1695000000001), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// "c" was never handed out for upload and stays as it is
	err := store.SyncFinished(testContext(), 1700000000120, []models.Guid{"a", "b", "c"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Nil(t, store.uploaded)
}

func TestPasswordsStore_SyncFinished_EditDuringUploadStaysPending(t *testing.T) {
	store, mock := newTestPasswordsStore(t)
	uploadedVersion := int64(1695000000000)

	// ApplyIncoming hands out version 1 of "a"
	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM logins WHERE sync_status <> ?")).
		WillReturnRows(sqlmock.NewRows(loginRowColumns).
			AddRow("a", loginJSON(t, exampleLogin), uploadedVersion, int64(0), syncStatusNew, false))
	mock.ExpectCommit()

	// the user edits "a" before the upload is confirmed
	edited := models.LoginData{Origin: exampleLogin.Origin, Username: "alice", Password: "v2"}
	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM logins WHERE guid = ?")).WithArgs("a").
		WillReturnRows(sqlmock.NewRows(loginRowColumns).
			AddRow("a", loginJSON(t, exampleLogin), uploadedVersion, int64(0), syncStatusNew, false))
	mock.ExpectExec(q("INSERT INTO logins")).
		WithArgs("a", loginJSON(t, edited), testNow.UnixMilli(), int64(0), syncStatusNew, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// SyncFinished only matches the uploaded version, so the edit is untouched
	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO sync_meta")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM logins")).
		WithArgs("a", uploadedVersion, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q("UPDATE logins SET sync_status = ?")).
		WithArgs(syncStatusSynced, int64(1700000000120), "a", uploadedVersion, 0).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	inbound := models.NewIncomingChangeset(PasswordsCollection, 1700000000000)
	outgoing, err := store.ApplyIncoming(testContext(), inbound, telemetry.NewEngine(PasswordsCollection))
	require.NoError(t, err)
	require.Len(t, outgoing.Changes, 1)

	_, err = store.Upsert(testContext(), models.Login{ID: "a", Data: edited})
	require.NoError(t, err)

	require.NoError(t, store.SyncFinished(testContext(), 1700000000120, []models.Guid{"a"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPasswordsStore_SyncFinished_WithoutUpload(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO sync_meta")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.SyncFinished(testContext(), 1700000000120, []models.Guid{"a"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPasswordsStore_Upsert_SameMillisecondEditGetsNewVersion(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM logins WHERE guid = ?")).WithArgs("a").
		WillReturnRows(sqlmock.NewRows(loginRowColumns).
			AddRow("a", "{}", testNow.UnixMilli(), int64(0), syncStatusNew, false))
	mock.ExpectExec(q("INSERT INTO logins")).
		WithArgs("a", sqlmock.AnyArg(), testNow.UnixMilli()+1, int64(0), syncStatusNew, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := store.Upsert(testContext(), models.Login{ID: "a", Data: exampleLogin})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPasswordsStore_SyncFinished_NothingUploaded(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO sync_meta")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.SyncFinished(testContext(), 1700000000120, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPasswordsStore_GetCollectionRequest(t *testing.T) {
	t.Run("first sync", func(t *testing.T) {
		store, mock := newTestPasswordsStore(t)
		mock.ExpectQuery(q("SELECT key, value FROM sync_meta WHERE key IN (?)")).
			WithArgs(metaLastSync).
			WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))

		req, err := store.GetCollectionRequest(testContext())
		require.NoError(t, err)
		assert.Equal(t, models.NewCollectionRequest(PasswordsCollection), req)
	})

	t.Run("incremental", func(t *testing.T) {
		store, mock := newTestPasswordsStore(t)
		mock.ExpectQuery(q("FROM sync_meta")).
			WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow(metaLastSync, "1700000000120"))

		req, err := store.GetCollectionRequest(testContext())
		require.NoError(t, err)
		assert.Equal(t, models.ServerTimestamp(1700000000120), req.Newer)
		assert.True(t, req.Full)
	})
}

func TestPasswordsStore_GetSyncAssoc(t *testing.T) {
	tests := []struct {
		name string
		rows [][2]string
		want models.StoreSyncAssociation
	}{
		{
			name: "no ids",
			want: models.Disconnected(),
		},
		{
			name: "partial ids",
			rows: [][2]string{{metaGlobalSyncID, "g"}},
			want: models.Disconnected(),
		},
		{
			name: "connected",
			rows: [][2]string{{metaGlobalSyncID, "g"}, {metaCollSyncID, "c"}},
			want: models.Connected(models.CollSyncIDs{Global: "g", Coll: "c"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newTestPasswordsStore(t)
			rows := sqlmock.NewRows([]string{"key", "value"})
			for _, r := range tt.rows {
				rows.AddRow(r[0], r[1])
			}
			mock.ExpectQuery(q("FROM sync_meta WHERE key IN (?,?)")).
				WithArgs(metaGlobalSyncID, metaCollSyncID).
				WillReturnRows(rows)

			got, err := store.GetSyncAssoc(testContext())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPasswordsStore_Reset(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM sync_meta WHERE key IN (?,?,?)")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(q("INSERT INTO sync_meta")).WithArgs(metaGlobalSyncID, "g").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("INSERT INTO sync_meta")).WithArgs(metaCollSyncID, "c").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE logins SET sync_status = ?, server_modified = ?")).
		WithArgs(syncStatusNew, 0).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	err := store.Reset(testContext(), models.Connected(models.CollSyncIDs{Global: "g", Coll: "c"}))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPasswordsStore_Wipe(t *testing.T) {
	store, mock := newTestPasswordsStore(t)

	mock.ExpectExec(q("DELETE FROM logins")).WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, store.Wipe(testContext()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func toDriverValues(values []any) []driver.Value {
	out := make([]driver.Value, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
