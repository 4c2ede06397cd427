// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/models"
)

// timestampStep is the resolution of server timestamps in milliseconds.
// Two writes to one collection never share a timestamp.
const timestampStep = 10

// bsoRepository is the PostgreSQL-backed implementation of
// [BsoRepository]. Writes lock the collection row, so concurrent writers of
// one collection are serialised and timestamps grow strictly.
type bsoRepository struct {
	*DB
	now    func() time.Time
	logger *logger.Logger
}

// NewBsoRepository constructs a [BsoRepository] on top of db.
func NewBsoRepository(db *DB, logger *logger.Logger) BsoRepository {
	return &bsoRepository{
		DB:     db,
		now:    time.Now,
		logger: logger,
	}
}

func (r *bsoRepository) CollectionTimestamps(ctx context.Context, userID int64) (models.InfoCollections, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCollectionTimestampsQuery(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "bsoRepository.CollectionTimestamps").
			Int64("user_id", userID).
			Msg("failed to execute query for collection timestamps")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	info := models.InfoCollections{}
	for rows.Next() {
		var (
			collection string
			modified   int64
		)
		if err = rows.Scan(&collection, &modified); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		info[collection] = models.ServerTimestamp(modified)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return info, nil
}

func (r *bsoRepository) CollectionTimestamp(ctx context.Context, userID int64, collection string) (models.ServerTimestamp, error) {
	query, args, err := buildCollectionTimestampQuery(ctx, userID, collection)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var modified int64
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&modified)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return models.ServerTimestamp(modified), nil
}

// FindRecords returns the live records matching req.
func (r *bsoRepository) FindRecords(ctx context.Context, userID int64, req models.CollectionRequest) ([]models.EncryptedBso, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindRecordsQuery(ctx, userID, req, models.ServerTimestampFromTime(r.now()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "bsoRepository.FindRecords").
			Int64("user_id", userID).
			Str("collection", req.Collection).
			Msg("failed to execute query for records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.EncryptedBso, 0, 50)
	for rows.Next() {
		record, scanErr := scanBso(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "bsoRepository.FindRecords").
				Int64("user_id", userID).
				Msg("failed to scan record row")
			return nil, scanErr
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *bsoRepository) FindRecord(ctx context.Context, userID int64, collection string, id models.Guid) (models.EncryptedBso, error) {
	query, args, err := buildFindRecordQuery(ctx, userID, collection, id, models.ServerTimestampFromTime(r.now()))
	if err != nil {
		return models.EncryptedBso{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanBso(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.EncryptedBso{}, ErrNotFound
	}
	return record, err
}

// PutRecords upserts records inside one transaction. Later duplicates of an
// id replace earlier ones.
func (r *bsoRepository) PutRecords(ctx context.Context, userID int64, collection string, records []models.EncryptedBso, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	log := logger.FromContext(ctx)

	var modified models.ServerTimestamp
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var txErr error
		modified, txErr = r.putRecordsTx(ctx, tx, userID, collection, dedupeRecords(records), ifUnmodifiedSince)
		return txErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "bsoRepository.PutRecords").
			Int64("user_id", userID).
			Str("collection", collection).
			Int("records", len(records)).
			Msg("failed to put records")
		return 0, err
	}

	return modified, nil
}

func (r *bsoRepository) DeleteCollection(ctx context.Context, userID int64, collection string) (models.ServerTimestamp, error) {
	var modified models.ServerTimestamp
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		last, err := r.lockCollection(ctx, tx, userID, collection)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err = execBuilt(ctx, tx, buildDeleteCollectionBatchesQuery, userID, collection); err != nil {
			return err
		}
		if err = execBuilt(ctx, tx, buildDeleteCollectionQuery, userID, collection); err != nil {
			return err
		}

		modified = r.nextTimestamp(last)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return modified, nil
}

func (r *bsoRepository) CreateBatch(ctx context.Context, userID int64, collection, batchID string) error {
	query, args, err := buildInsertBatchQuery(ctx, userID, collection, batchID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *bsoRepository) AppendBatch(ctx context.Context, userID int64, collection, batchID string, records []models.EncryptedBso) error {
	if len(records) == 0 {
		return nil
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := r.lockBatch(ctx, tx, userID, collection, batchID); err != nil {
			return err
		}

		query, args, err := buildAppendBatchQuery(ctx, userID, collection, batchID, dedupeRecords(records))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

// CommitBatch applies every pending record of the batch with a single
// collection timestamp and deletes the batch.
func (r *bsoRepository) CommitBatch(ctx context.Context, userID int64, collection, batchID string, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	log := logger.FromContext(ctx)

	var modified models.ServerTimestamp
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := r.lockBatch(ctx, tx, userID, collection, batchID); err != nil {
			return err
		}

		records, err := r.batchItems(ctx, tx, userID, collection, batchID)
		if err != nil {
			return err
		}

		if len(records) > 0 {
			modified, err = r.putRecordsTx(ctx, tx, userID, collection, records, ifUnmodifiedSince)
		} else {
			modified, err = r.checkUnmodified(ctx, tx, userID, collection, ifUnmodifiedSince)
		}
		if err != nil {
			return err
		}

		return execBuilt(ctx, tx, func(ctx context.Context, userID int64, collection string) (string, []any, error) {
			return buildDeleteBatchQuery(ctx, userID, collection, batchID)
		}, userID, collection)
	})
	if err != nil {
		log.Err(err).
			Str("func", "bsoRepository.CommitBatch").
			Int64("user_id", userID).
			Str("collection", collection).
			Str("batch", batchID).
			Msg("failed to commit batch")
		return 0, err
	}

	return modified, nil
}

func (r *bsoRepository) putRecordsTx(ctx context.Context, tx *sql.Tx, userID int64, collection string, records []models.EncryptedBso, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	if err := execBuilt(ctx, tx, buildEnsureCollectionQuery, userID, collection); err != nil {
		return 0, err
	}

	last, err := r.lockCollection(ctx, tx, userID, collection)
	if err != nil {
		return 0, err
	}
	if !ifUnmodifiedSince.IsZero() && last > ifUnmodifiedSince {
		return 0, ErrCollectionModified
	}

	modified := r.nextTimestamp(last)
	if len(records) > 0 {
		query, args, buildErr := buildUpsertRecordsQuery(ctx, userID, collection, records, modified)
		if buildErr != nil {
			return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	query, args, err := buildTouchCollectionQuery(ctx, userID, collection, modified)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return modified, nil
}

// checkUnmodified enforces ifUnmodifiedSince for a commit without records
// and returns the unchanged collection timestamp.
func (r *bsoRepository) checkUnmodified(ctx context.Context, tx *sql.Tx, userID int64, collection string, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	last, err := r.lockCollection(ctx, tx, userID, collection)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if !ifUnmodifiedSince.IsZero() && last > ifUnmodifiedSince {
		return 0, ErrCollectionModified
	}
	return last, nil
}

// lockCollection returns sql.ErrNoRows unwrapped when the collection does
// not exist.
func (r *bsoRepository) lockCollection(ctx context.Context, tx *sql.Tx, userID int64, collection string) (models.ServerTimestamp, error) {
	query, args, err := buildLockCollectionQuery(ctx, userID, collection)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var modified int64
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&modified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return models.ServerTimestamp(modified), nil
}

func (r *bsoRepository) lockBatch(ctx context.Context, tx *sql.Tx, userID int64, collection, batchID string) error {
	query, args, err := buildLockBatchQuery(ctx, userID, collection, batchID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBatchNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return nil
}

func (r *bsoRepository) batchItems(ctx context.Context, tx *sql.Tx, userID int64, collection, batchID string) ([]models.EncryptedBso, error) {
	query, args, err := buildSelectBatchItemsQuery(ctx, userID, collection, batchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.EncryptedBso
	for rows.Next() {
		var (
			record    models.EncryptedBso
			id        string
			sortIndex sql.NullInt64
			ttl       sql.NullInt64
		)
		if err = rows.Scan(&id, &sortIndex, &ttl, &record.Payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		record.ID = models.Guid(id)
		record.SortIndex = nullInt64Ptr(sortIndex)
		record.TTL = nullInt64Ptr(ttl)
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// nextTimestamp is the current time at 10ms resolution, forced past last.
func (r *bsoRepository) nextTimestamp(last models.ServerTimestamp) models.ServerTimestamp {
	return models.ServerTimestampFromTime(r.now()).Max(last + timestampStep)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBso(row rowScanner) (models.EncryptedBso, error) {
	var (
		record    models.EncryptedBso
		id        string
		modified  int64
		sortIndex sql.NullInt64
	)
	if err := row.Scan(&id, &modified, &sortIndex, &record.Payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedBso{}, err
		}
		return models.EncryptedBso{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	record.ID = models.Guid(id)
	record.Modified = models.ServerTimestamp(modified)
	record.SortIndex = nullInt64Ptr(sortIndex)
	return record, nil
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// dedupeRecords keeps the last record of every id, in first-seen order.
func dedupeRecords(records []models.EncryptedBso) []models.EncryptedBso {
	index := make(map[models.Guid]int, len(records))
	out := make([]models.EncryptedBso, 0, len(records))
	for _, record := range records {
		if i, ok := index[record.ID]; ok {
			out[i] = record
			continue
		}
		index[record.ID] = len(out)
		out = append(out, record)
	}
	return out
}

type collectionQueryBuilder func(ctx context.Context, userID int64, collection string) (string, []any, error)

func execBuilt(ctx context.Context, tx *sql.Tx, build collectionQueryBuilder, userID int64, collection string) error {
	query, args, err := build(ctx, userID, collection)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
