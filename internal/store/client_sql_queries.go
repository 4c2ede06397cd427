package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync15/models"
)

// sqlite builds SQLite statements with ? placeholders.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const (
	tableLogins   = "logins"
	tableSyncMeta = "sync_meta"
)

// Keys of the sync_meta table.
const (
	metaLastSync     = "last_sync"
	metaGlobalSyncID = "global_sync_id"
	metaCollSyncID   = "coll_sync_id"
)

// Values of logins.sync_status.
const (
	syncStatusSynced  = 0
	syncStatusChanged = 1
	syncStatusNew     = 2
)

var loginColumns = []string{"guid", "data", "modified", "server_modified", "sync_status", "is_deleted"}

const upsertLoginSuffix = `ON CONFLICT (guid) DO UPDATE SET
	data = excluded.data,
	modified = excluded.modified,
	server_modified = excluded.server_modified,
	sync_status = excluded.sync_status,
	is_deleted = excluded.is_deleted`

func buildSelectLiveLoginsQuery(_ context.Context) (string, []any, error) {
	return sqlite.Select(loginColumns...).
		From(tableLogins).
		Where(sq.Eq{"is_deleted": 0}).
		OrderBy("modified", "guid").
		ToSql()
}

func buildSelectLoginQuery(_ context.Context, id models.Guid) (string, []any, error) {
	return sqlite.Select(loginColumns...).
		From(tableLogins).
		Where(sq.Eq{"guid": id.String()}).
		ToSql()
}

func buildSelectPendingLoginsQuery(_ context.Context) (string, []any, error) {
	return sqlite.Select(loginColumns...).
		From(tableLogins).
		Where(sq.NotEq{"sync_status": syncStatusSynced}).
		OrderBy("guid").
		ToSql()
}

func buildUpsertLoginQuery(_ context.Context, row loginRow) (string, []any, error) {
	return sqlite.Insert(tableLogins).
		Columns(loginColumns...).
		Values(row.guid, row.data, row.modified, row.serverModified, row.syncStatus, row.deleted).
		Suffix(upsertLoginSuffix).
		ToSql()
}

func buildDeleteLoginQuery(_ context.Context, id models.Guid) (string, []any, error) {
	return sqlite.Delete(tableLogins).
		Where(sq.Eq{"guid": id.String()}).
		ToSql()
}

// uploadedLogin is a login version handed out for upload.
type uploadedLogin struct {
	id       models.Guid
	modified int64
}

// sameVersion matches rows that still hold the uploaded version.
func sameVersion(logins []uploadedLogin) sq.Or {
	or := make(sq.Or, 0, len(logins))
	for _, l := range logins {
		or = append(or, sq.And{sq.Eq{"guid": l.id.String()}, sq.Eq{"modified": l.modified}})
	}
	return or
}

// buildMarkSyncedQuery clears the pending flag of uploaded live records.
func buildMarkSyncedQuery(_ context.Context, logins []uploadedLogin, serverModified models.ServerTimestamp) (string, []any, error) {
	return sqlite.Update(tableLogins).
		Set("sync_status", syncStatusSynced).
		Set("server_modified", serverModified.Millis()).
		Where(sameVersion(logins)).
		Where(sq.Eq{"is_deleted": 0}).
		ToSql()
}

// buildPurgeTombstonesQuery drops tombstones the server has accepted.
func buildPurgeTombstonesQuery(_ context.Context, logins []uploadedLogin) (string, []any, error) {
	return sqlite.Delete(tableLogins).
		Where(sameVersion(logins)).
		Where(sq.Eq{"is_deleted": 1}).
		ToSql()
}

func buildResetLoginsQuery(_ context.Context) (string, []any, error) {
	return sqlite.Update(tableLogins).
		Set("sync_status", syncStatusNew).
		Set("server_modified", 0).
		ToSql()
}

func buildWipeLoginsQuery(_ context.Context) (string, []any, error) {
	return sqlite.Delete(tableLogins).ToSql()
}

func buildGetMetaQuery(_ context.Context, keys ...string) (string, []any, error) {
	return sqlite.Select("key", "value").
		From(tableSyncMeta).
		Where(sq.Eq{"key": keys}).
		ToSql()
}

func buildPutMetaQuery(_ context.Context, key, value string) (string, []any, error) {
	return sqlite.Insert(tableSyncMeta).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value").
		ToSql()
}

func buildDeleteMetaQuery(_ context.Context, keys ...string) (string, []any, error) {
	return sqlite.Delete(tableSyncMeta).
		Where(sq.Eq{"key": keys}).
		ToSql()
}
