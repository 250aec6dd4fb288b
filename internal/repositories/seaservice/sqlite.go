package seaservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/seabook/internal/common"
	"github.com/dmitrijs2005/seabook/internal/logging"
	"github.com/dmitrijs2005/seabook/internal/metrics"
	"github.com/dmitrijs2005/seabook/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const selectColumns = `id, ship_name, imo_number, payload_json, status, remote_id, sync_state, created_at, updated_at`

// SQLiteRepository implements Repository on an SQLite database.
type SQLiteRepository struct {
	db      *sql.DB
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewSQLiteRepository returns a repository bound to db. m may be nil.
func NewSQLiteRepository(db *sql.DB, logger logging.Logger, m *metrics.Metrics) *SQLiteRepository {
	return &SQLiteRepository{db: db, logger: logger, metrics: m}
}

// Insert stores a new draft. The record's sync state is set to DIRTY.
func (r *SQLiteRepository) Insert(ctx context.Context, rec *models.SeaServiceRecord) error {
	if rec.Status != models.StatusDraft {
		return fmt.Errorf("%w: only drafts can be created", common.ErrRecordFinal)
	}
	payload, err := models.EncodePayload(rec.Payload)
	if err != nil {
		return err
	}
	rec.SyncState = models.SyncDirty

	query := `INSERT INTO sea_service_records
		(id, ship_name, imo_number, payload_json, status, last_updated_at, remote_id, sync_state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID, nullable(rec.ShipName), nullable(rec.IMONumber), string(payload), string(rec.Status),
		rec.Payload.LastUpdatedAt, nullable(rec.RemoteID), string(rec.SyncState),
		rec.CreatedAt.UnixMilli(), rec.UpdatedAt.UnixMilli())
	if err != nil {
		if isDraftUniqueViolation(err) {
			return common.ErrDraftExists
		}
		r.metrics.StorageFailure("insert")
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// UpdateDraft rewrites a draft's payload and listing columns.
func (r *SQLiteRepository) UpdateDraft(ctx context.Context, rec *models.SeaServiceRecord) error {
	return r.writeDraft(ctx, "update", rec, models.StatusDraft)
}

// Finalize writes the payload and flips the status to FINAL in one statement.
func (r *SQLiteRepository) Finalize(ctx context.Context, rec *models.SeaServiceRecord) error {
	return r.writeDraft(ctx, "finalize", rec, models.StatusFinal)
}

func (r *SQLiteRepository) writeDraft(ctx context.Context, op string, rec *models.SeaServiceRecord, status models.RecordStatus) error {
	payload, err := models.EncodePayload(rec.Payload)
	if err != nil {
		return err
	}

	query := `UPDATE sea_service_records
		SET ship_name = ?, imo_number = ?, payload_json = ?, status = ?, last_updated_at = ?,
			sync_state = ?, updated_at = ?
		WHERE id = ? AND status = 'DRAFT'`
	res, err := r.db.ExecContext(ctx, query,
		nullable(rec.ShipName), nullable(rec.IMONumber), string(payload), string(status),
		rec.Payload.LastUpdatedAt, string(models.SyncDirty), rec.UpdatedAt.UnixMilli(), rec.ID)
	if err != nil {
		r.metrics.StorageFailure(op)
		return fmt.Errorf("failed to %s record: %w", op, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		r.metrics.StorageFailure(op)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return r.refusal(ctx, rec.ID)
	}
	rec.Status = status
	rec.SyncState = models.SyncDirty
	return nil
}

// DeleteDraft removes a draft. FINAL records are refused.
func (r *SQLiteRepository) DeleteDraft(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sea_service_records WHERE id = ? AND status = 'DRAFT'`, id)
	if err != nil {
		r.metrics.StorageFailure("delete")
		return fmt.Errorf("failed to delete record: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		r.metrics.StorageFailure("delete")
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return r.refusal(ctx, id)
	}
	return nil
}

// refusal explains why a guarded write touched no row.
func (r *SQLiteRepository) refusal(ctx context.Context, id string) error {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM sea_service_records WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read record status: %w", err)
	}
	if models.RecordStatus(status) == models.StatusFinal {
		return fmt.Errorf("record %s: %w", id, common.ErrRecordFinal)
	}
	return fmt.Errorf("record %s has unexpected status %q", id, status)
}

// GetByID returns a record of any status.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.SeaServiceRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM sea_service_records WHERE id = ?`, id)
	rec, err := r.scan(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		r.metrics.StorageFailure("get")
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	return rec, nil
}

// GetActiveDraft returns the draft. Should several exist (a database that
// predates the single-draft index) the most recently updated one wins.
func (r *SQLiteRepository) GetActiveDraft(ctx context.Context) (*models.SeaServiceRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM sea_service_records
		WHERE status = 'DRAFT' ORDER BY updated_at DESC, created_at DESC LIMIT 1`)
	rec, err := r.scan(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.metrics.StorageFailure("get_draft")
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	return rec, nil
}

// ListFinal returns finalized records, most recent first.
func (r *SQLiteRepository) ListFinal(ctx context.Context) ([]models.SeaServiceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM sea_service_records
		WHERE status = 'FINAL' ORDER BY updated_at DESC, created_at DESC, id`)
	if err != nil {
		r.metrics.StorageFailure("list_final")
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []models.SeaServiceRecord
	for rows.Next() {
		rec, err := r.scan(ctx, rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepository) scan(ctx context.Context, s scanner) (*models.SeaServiceRecord, error) {
	var (
		rec                          models.SeaServiceRecord
		shipName, imo, remoteID, raw sql.NullString
		status, syncState            string
		createdAt, updatedAt         int64
	)
	if err := s.Scan(&rec.ID, &shipName, &imo, &raw, &status, &remoteID, &syncState, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.ShipName = shipName.String
	rec.IMONumber = imo.String
	rec.RemoteID = remoteID.String
	rec.Status = models.RecordStatus(status)
	rec.SyncState = models.SyncState(syncState)
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	rec.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	payload, err := models.DecodePayload([]byte(raw.String))
	if err != nil {
		r.logger.Warn(ctx, "recovered corrupt payload with default", "id", rec.ID, "error", err)
		r.metrics.PayloadRecovered()
	}
	rec.Payload = payload
	return &rec, nil
}

func nullable(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// isDraftUniqueViolation matches the single-draft index, which SQLite reports
// either by column or by index name.
func isDraftUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return false
	}
	msg := se.Error()
	return strings.Contains(msg, tableName+".status") || strings.Contains(msg, singleDraftIndex)
}
