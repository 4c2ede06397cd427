package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync15/models"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	tableCollections = "collections"
	tableBso         = "bso"
	tableBatches     = "batches"
	tableBatchItems  = "batch_items"
)

const (
	upsertBsoSuffix = `ON CONFLICT (user_id, collection, id) DO UPDATE SET
		modified = EXCLUDED.modified,
		payload = EXCLUDED.payload,
		sortindex = COALESCE(EXCLUDED.sortindex, bso.sortindex),
		expires = EXCLUDED.expires`

	upsertBatchItemSuffix = `ON CONFLICT (user_id, collection, batch_id, id) DO UPDATE SET
		sortindex = EXCLUDED.sortindex,
		ttl = EXCLUDED.ttl,
		payload = EXCLUDED.payload`
)

// whereCollection keeps user_id as the first argument. A single sq.Eq would
// sort its keys.
func whereCollection(userID int64, collection string) sq.And {
	return sq.And{sq.Eq{"user_id": userID}, sq.Eq{"collection": collection}}
}

func notExpired(now models.ServerTimestamp) sq.Or {
	return sq.Or{sq.Eq{"expires": nil}, sq.Gt{"expires": now.Millis()}}
}

func buildCollectionTimestampsQuery(_ context.Context, userID int64) (string, []any, error) {
	return psql.Select("collection", "modified").
		From(tableCollections).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Gt{"modified": 0}).
		ToSql()
}

func buildCollectionTimestampQuery(_ context.Context, userID int64, collection string) (string, []any, error) {
	return psql.Select("modified").
		From(tableCollections).
		Where(whereCollection(userID, collection)).
		ToSql()
}

// buildFindRecordsQuery renders the filters of req. Expired records are
// never returned.
func buildFindRecordsQuery(_ context.Context, userID int64, req models.CollectionRequest, now models.ServerTimestamp) (string, []any, error) {
	query := psql.Select("id", "modified", "sortindex", "payload").
		From(tableBso).
		Where(whereCollection(userID, req.Collection)).
		Where(notExpired(now))

	if !req.Newer.IsZero() {
		query = query.Where(sq.Gt{"modified": req.Newer.Millis()})
	}
	if !req.Older.IsZero() {
		query = query.Where(sq.Lt{"modified": req.Older.Millis()})
	}
	if len(req.IDs) > 0 {
		query = query.Where(sq.Eq{"id": models.GuidsToStrings(req.IDs)})
	}

	switch req.Order {
	case models.OrderNewest:
		query = query.OrderBy("modified DESC", "id")
	case models.OrderIndex:
		query = query.OrderBy("sortindex DESC NULLS LAST", "id")
	case models.OrderOldest, models.OrderNone:
		query = query.OrderBy("modified ASC", "id")
	default:
		return "", nil, fmt.Errorf("unknown sort order %q", req.Order)
	}

	if req.Limit > 0 {
		query = query.Limit(uint64(req.Limit))
	}

	return query.ToSql()
}

func buildFindRecordQuery(_ context.Context, userID int64, collection string, id models.Guid, now models.ServerTimestamp) (string, []any, error) {
	return psql.Select("id", "modified", "sortindex", "payload").
		From(tableBso).
		Where(whereCollection(userID, collection)).
		Where(sq.Eq{"id": id.String()}).
		Where(notExpired(now)).
		ToSql()
}

func buildEnsureCollectionQuery(_ context.Context, userID int64, collection string) (string, []any, error) {
	return psql.Insert(tableCollections).
		Columns("user_id", "collection", "modified").
		Values(userID, collection, 0).
		Suffix("ON CONFLICT (user_id, collection) DO NOTHING").
		ToSql()
}

// buildLockCollectionQuery reads the collection timestamp and holds the row
// lock until the transaction ends, serialising writers per collection.
func buildLockCollectionQuery(_ context.Context, userID int64, collection string) (string, []any, error) {
	return psql.Select("modified").
		From(tableCollections).
		Where(whereCollection(userID, collection)).
		Suffix("FOR UPDATE").
		ToSql()
}

func buildTouchCollectionQuery(_ context.Context, userID int64, collection string, modified models.ServerTimestamp) (string, []any, error) {
	return psql.Update(tableCollections).
		Set("modified", modified.Millis()).
		Where(whereCollection(userID, collection)).
		ToSql()
}

func buildUpsertRecordsQuery(_ context.Context, userID int64, collection string, records []models.EncryptedBso, modified models.ServerTimestamp) (string, []any, error) {
	if len(records) == 0 {
		return "", nil, errors.New("no records to upsert")
	}

	query := psql.Insert(tableBso).
		Columns("user_id", "collection", "id", "modified", "sortindex", "expires", "payload")
	for _, record := range records {
		var expires *int64
		if record.TTL != nil {
			e := modified.Millis() + *record.TTL*1000
			expires = &e
		}
		query = query.Values(userID, collection, record.ID.String(), modified.Millis(), record.SortIndex, expires, record.Payload)
	}

	return query.Suffix(upsertBsoSuffix).ToSql()
}

func buildDeleteCollectionQuery(_ context.Context, userID int64, collection string) (string, []any, error) {
	return psql.Delete(tableCollections).
		Where(whereCollection(userID, collection)).
		ToSql()
}

func buildDeleteCollectionBatchesQuery(_ context.Context, userID int64, collection string) (string, []any, error) {
	return psql.Delete(tableBatches).
		Where(whereCollection(userID, collection)).
		ToSql()
}

func buildInsertBatchQuery(_ context.Context, userID int64, collection, batchID string) (string, []any, error) {
	return psql.Insert(tableBatches).
		Columns("user_id", "collection", "id").
		Values(userID, collection, batchID).
		ToSql()
}

func buildLockBatchQuery(_ context.Context, userID int64, collection, batchID string) (string, []any, error) {
	return psql.Select("id").
		From(tableBatches).
		Where(whereCollection(userID, collection)).
		Where(sq.Eq{"id": batchID}).
		Suffix("FOR UPDATE").
		ToSql()
}

func buildAppendBatchQuery(_ context.Context, userID int64, collection, batchID string, records []models.EncryptedBso) (string, []any, error) {
	if len(records) == 0 {
		return "", nil, errors.New("no records to append")
	}

	query := psql.Insert(tableBatchItems).
		Columns("user_id", "collection", "batch_id", "id", "sortindex", "ttl", "payload")
	for _, record := range records {
		query = query.Values(userID, collection, batchID, record.ID.String(), record.SortIndex, record.TTL, record.Payload)
	}

	return query.Suffix(upsertBatchItemSuffix).ToSql()
}

func buildSelectBatchItemsQuery(_ context.Context, userID int64, collection, batchID string) (string, []any, error) {
	return psql.Select("id", "sortindex", "ttl", "payload").
		From(tableBatchItems).
		Where(whereCollection(userID, collection)).
		Where(sq.Eq{"batch_id": batchID}).
		OrderBy("id").
		ToSql()
}

func buildDeleteBatchQuery(_ context.Context, userID int64, collection, batchID string) (string, []any, error) {
	return psql.Delete(tableBatches).
		Where(whereCollection(userID, collection)).
		Where(sq.Eq{"id": batchID}).
		ToSql()
}
