package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/telemetry"
	"github.com/MKhiriev/go-sync15/models"
)

// PasswordsCollection is the server collection the passwords store syncs.
const PasswordsCollection = "passwords"

// sqlExecutor is satisfied by both *sql.DB and *sql.Tx.
type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// loginRow mirrors one row of the logins table.
type loginRow struct {
	guid           string
	data           string
	modified       int64
	serverModified int64
	syncStatus     int
	deleted        bool
}

func (r loginRow) login() (models.Login, error) {
	login := models.Login{ID: models.Guid(r.guid), Modified: r.modified}
	if err := json.Unmarshal([]byte(r.data), &login.Data); err != nil {
		return models.Login{}, fmt.Errorf("decode login %s: %w", r.guid, err)
	}
	return login, nil
}

// payload returns the record to upload for the row.
func (r loginRow) payload() (models.Payload, error) {
	if r.deleted {
		return models.NewTombstone(models.Guid(r.guid)), nil
	}
	login, err := r.login()
	if err != nil {
		return models.Payload{}, err
	}
	return models.NewPayload(login.ID, login.Data)
}

// PasswordsStore keeps logins in SQLite and syncs them as the "passwords"
// collection. Local edits are flagged in sync_status until SyncFinished
// confirms the upload; deletions of synced logins leave a tombstone behind.
//
// Conflicts between a pending local edit and an incoming record are
// resolved newest-wins on the modification time.
//
// ApplyIncoming remembers the version of every row it hands out for upload.
// SyncFinished only clears rows that still hold that version, so edits made
// while an upload is in flight stay pending.
type PasswordsStore struct {
	*DB
	now    func() time.Time
	logger *logger.Logger

	mu       sync.Mutex
	uploaded map[models.Guid]int64
}

// NewPasswordsStore constructs a [PasswordsStore] on a migrated SQLite db.
func NewPasswordsStore(db *DB, logger *logger.Logger) *PasswordsStore {
	return &PasswordsStore{
		DB:     db,
		now:    time.Now,
		logger: logger,
	}
}

// CollectionName implements the sync Store contract.
func (s *PasswordsStore) CollectionName() string {
	return PasswordsCollection
}

// Upsert stores login and flags it for upload. An empty id mints a new one.
func (s *PasswordsStore) Upsert(ctx context.Context, login models.Login) (models.Guid, error) {
	if login.Data.Origin == "" || login.Data.Password == "" {
		return "", ErrInvalidLogin
	}
	if login.ID == "" {
		login.ID = models.NewGuid()
	}

	data, err := json.Marshal(login.Data)
	if err != nil {
		return "", fmt.Errorf("encode login: %w", err)
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		existing, found, err := s.findRow(ctx, tx, login.ID)
		if err != nil {
			return err
		}

		row := loginRow{
			guid:       login.ID.String(),
			data:       string(data),
			modified:   s.now().UnixMilli(),
			syncStatus: syncStatusNew,
		}
		if found {
			row.modified = nextModified(existing, row.modified)
			row.serverModified = existing.serverModified
			if existing.syncStatus != syncStatusNew {
				row.syncStatus = syncStatusChanged
			}
		}
		return s.putRow(ctx, tx, row)
	})
	if err != nil {
		return "", err
	}

	return login.ID, nil
}

// Delete removes a login. Logins the server has seen are replaced by a
// tombstone that is uploaded on the next sync.
func (s *PasswordsStore) Delete(ctx context.Context, id models.Guid) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		existing, found, err := s.findRow(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found || existing.deleted {
			return ErrItemNotFound
		}

		if existing.syncStatus == syncStatusNew {
			return s.deleteRow(ctx, tx, id)
		}

		return s.putRow(ctx, tx, loginRow{
			guid:           id.String(),
			data:           "{}",
			modified:       nextModified(existing, s.now().UnixMilli()),
			serverModified: existing.serverModified,
			syncStatus:     syncStatusChanged,
			deleted:        true,
		})
	})
}

// Get returns one live login.
func (s *PasswordsStore) Get(ctx context.Context, id models.Guid) (models.Login, error) {
	row, found, err := s.findRow(ctx, s.DB, id)
	if err != nil {
		return models.Login{}, err
	}
	if !found || row.deleted {
		return models.Login{}, ErrItemNotFound
	}
	return row.login()
}

// List returns every live login, oldest change first.
func (s *PasswordsStore) List(ctx context.Context) ([]models.Login, error) {
	rows, err := s.queryRows(ctx, s.DB, buildSelectLiveLoginsQuery)
	if err != nil {
		return nil, err
	}

	logins := make([]models.Login, 0, len(rows))
	for _, row := range rows {
		login, err := row.login()
		if err != nil {
			return nil, err
		}
		logins = append(logins, login)
	}
	return logins, nil
}

// ApplyIncoming implements the sync Store contract. It applies inbound in
// one transaction and returns every pending local change.
func (s *PasswordsStore) ApplyIncoming(ctx context.Context, inbound models.IncomingChangeset, telem *telemetry.Engine) (models.OutgoingChangeset, error) {
	log := logger.FromContextOr(ctx, s.logger)

	var (
		counts   telemetry.EngineIncoming
		outgoing = models.NewOutgoingChangeset(PasswordsCollection)
		uploaded map[models.Guid]int64
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		counts = telemetry.EngineIncoming{}
		for _, record := range inbound.Changes {
			if err := s.applyRecord(ctx, tx, record, &counts); err != nil {
				return err
			}
		}

		pending, err := s.queryRows(ctx, tx, buildSelectPendingLoginsQuery)
		if err != nil {
			return err
		}
		outgoing.Changes = make([]models.Payload, 0, len(pending))
		uploaded = make(map[models.Guid]int64, len(pending))
		for _, row := range pending {
			payload, err := row.payload()
			if err != nil {
				return err
			}
			outgoing.Changes = append(outgoing.Changes, payload)
			uploaded[payload.ID] = row.modified
		}
		return nil
	})
	if err != nil {
		return models.OutgoingChangeset{}, err
	}

	s.mu.Lock()
	s.uploaded = uploaded
	s.mu.Unlock()

	telem.AddIncoming(counts)
	log.Debug().
		Int("applied", counts.Applied).
		Int("reconciled", counts.Reconciled).
		Int("failed", counts.Failed).
		Int("outgoing", len(outgoing.Changes)).
		Msg("applied incoming logins")

	return outgoing, nil
}

func (s *PasswordsStore) applyRecord(ctx context.Context, tx *sql.Tx, record models.IncomingRecord, counts *telemetry.EngineIncoming) error {
	id := record.Payload.ID
	local, found, err := s.findRow(ctx, tx, id)
	if err != nil {
		return err
	}
	pending := found && local.syncStatus != syncStatusSynced
	localWins := pending && local.modified > record.Modified.Millis()

	if record.Payload.Deleted {
		switch {
		case !found:
			counts.Applied++
			return nil
		case localWins:
			counts.Reconciled++
			return nil
		case pending:
			counts.Reconciled++
		default:
			counts.Applied++
		}
		return s.deleteRow(ctx, tx, id)
	}

	var data models.LoginData
	if err = record.Payload.Into(&data); err != nil {
		counts.Failed++
		if !found {
			counts.NewFailed++
		}
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode login: %w", err)
	}

	if pending {
		counts.Reconciled++
		if localWins {
			return nil
		}
	} else {
		counts.Applied++
	}

	return s.putRow(ctx, tx, loginRow{
		guid:           id.String(),
		data:           string(raw),
		modified:       record.Modified.Millis(),
		serverModified: record.Modified.Millis(),
		syncStatus:     syncStatusSynced,
	})
}

// SyncFinished implements the sync Store contract. Only rows unchanged since
// ApplyIncoming handed them out are marked as synced.
func (s *PasswordsStore) SyncFinished(ctx context.Context, newTimestamp models.ServerTimestamp, recordsSynced []models.Guid) error {
	synced := s.takeUploaded(recordsSynced)
	if skipped := len(recordsSynced) - len(synced); skipped > 0 {
		logger.FromContextOr(ctx, s.logger).Debug().
			Int("skipped", skipped).
			Msg("synced logins were not part of the last upload")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.putMeta(ctx, tx, metaLastSync, strconv.FormatInt(newTimestamp.Millis(), 10)); err != nil {
			return err
		}
		if len(synced) == 0 {
			return nil
		}

		query, args, err := buildPurgeTombstonesQuery(ctx, synced)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		query, args, err = buildMarkSyncedQuery(ctx, synced, newTimestamp)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

// takeUploaded returns the uploaded versions of ids and forgets the snapshot.
func (s *PasswordsStore) takeUploaded(ids []models.Guid) []uploadedLogin {
	s.mu.Lock()
	snapshot := s.uploaded
	s.uploaded = nil
	s.mu.Unlock()

	synced := make([]uploadedLogin, 0, len(ids))
	for _, id := range ids {
		if modified, ok := snapshot[id]; ok {
			synced = append(synced, uploadedLogin{id: id, modified: modified})
		}
	}
	return synced
}

// GetCollectionRequest asks for full records newer than the last sync.
func (s *PasswordsStore) GetCollectionRequest(ctx context.Context) (models.CollectionRequest, error) {
	meta, err := s.getMeta(ctx, s.DB, metaLastSync)
	if err != nil {
		return models.CollectionRequest{}, err
	}

	var since int64
	if raw, ok := meta[metaLastSync]; ok {
		if since, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return models.CollectionRequest{}, fmt.Errorf("parse %s: %w", metaLastSync, err)
		}
	}

	return models.NewCollectionRequest(PasswordsCollection).NewerThan(models.ServerTimestamp(since)), nil
}

func (s *PasswordsStore) GetSyncAssoc(ctx context.Context) (models.StoreSyncAssociation, error) {
	meta, err := s.getMeta(ctx, s.DB, metaGlobalSyncID, metaCollSyncID)
	if err != nil {
		return models.StoreSyncAssociation{}, err
	}

	global, okGlobal := meta[metaGlobalSyncID]
	coll, okColl := meta[metaCollSyncID]
	if !okGlobal || !okColl {
		return models.Disconnected(), nil
	}
	return models.Connected(models.CollSyncIDs{Global: global, Coll: coll}), nil
}

// Reset forgets the last sync time and flags every login for upload.
// Local data is kept.
func (s *PasswordsStore) Reset(ctx context.Context, assoc models.StoreSyncAssociation) error {
	s.forgetUploaded()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.deleteMeta(ctx, tx, metaLastSync, metaGlobalSyncID, metaCollSyncID); err != nil {
			return err
		}
		if assoc.IsConnected() {
			if err := s.putMeta(ctx, tx, metaGlobalSyncID, assoc.IDs.Global); err != nil {
				return err
			}
			if err := s.putMeta(ctx, tx, metaCollSyncID, assoc.IDs.Coll); err != nil {
				return err
			}
		}

		query, args, err := buildResetLoginsQuery(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

// Wipe deletes every login, tombstones included.
func (s *PasswordsStore) Wipe(ctx context.Context) error {
	s.forgetUploaded()
	query, args, err := buildWipeLoginsQuery(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *PasswordsStore) forgetUploaded() {
	s.mu.Lock()
	s.uploaded = nil
	s.mu.Unlock()
}

// nextModified keeps a row's modification time strictly increasing.
func nextModified(existing loginRow, now int64) int64 {
	if now <= existing.modified {
		return existing.modified + 1
	}
	return now
}

func (s *PasswordsStore) findRow(ctx context.Context, db sqlExecutor, id models.Guid) (loginRow, bool, error) {
	query, args, err := buildSelectLoginQuery(ctx, id)
	if err != nil {
		return loginRow{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row, err := scanLoginRow(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return loginRow{}, false, nil
	}
	if err != nil {
		return loginRow{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return row, true, nil
}

func (s *PasswordsStore) queryRows(ctx context.Context, db sqlExecutor, build func(context.Context) (string, []any, error)) ([]loginRow, error) {
	query, args, err := build(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var result []loginRow
	for rows.Next() {
		row, err := scanLoginRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return result, nil
}

func (s *PasswordsStore) putRow(ctx context.Context, db sqlExecutor, row loginRow) error {
	query, args, err := buildUpsertLoginQuery(ctx, row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *PasswordsStore) deleteRow(ctx context.Context, db sqlExecutor, id models.Guid) error {
	query, args, err := buildDeleteLoginQuery(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *PasswordsStore) getMeta(ctx context.Context, db sqlExecutor, keys ...string) (map[string]string, error) {
	query, args, err := buildGetMetaQuery(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	meta := make(map[string]string, len(keys))
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		meta[key] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return meta, nil
}

func (s *PasswordsStore) putMeta(ctx context.Context, db sqlExecutor, key, value string) error {
	query, args, err := buildPutMetaQuery(ctx, key, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *PasswordsStore) deleteMeta(ctx context.Context, db sqlExecutor, keys ...string) error {
	query, args, err := buildDeleteMetaQuery(ctx, keys...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func scanLoginRow(row rowScanner) (loginRow, error) {
	var r loginRow
	err := row.Scan(&r.guid, &r.data, &r.modified, &r.serverModified, &r.syncStatus, &r.deleted)
	return r, err
}
