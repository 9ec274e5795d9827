package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"recruitment-metrics-service/internal/querylog/core/domain"
	"recruitment-metrics-service/internal/querylog/core/ports"
)

type QueryRecordRepository struct {
	db DB
}

func NewQueryRecordRepository(db DB) *QueryRecordRepository {
	return &QueryRecordRepository{db: db}
}

var _ ports.QueryRecordRepositoryPort = (*QueryRecordRepository)(nil)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS query_log (
    id              UUID PRIMARY KEY,
    metric          TEXT        NOT NULL,
    shape           TEXT        NOT NULL DEFAULT '',
    dimensions      TEXT[]      NOT NULL DEFAULT '{}',
    filters         JSONB       NOT NULL DEFAULT '{}',
    date_from       TIMESTAMPTZ,
    date_to         TIMESTAMPTZ,
    target          TEXT        NOT NULL DEFAULT '',
    row_count       INTEGER     NOT NULL DEFAULT 0,
    skipped_records INTEGER     NOT NULL DEFAULT 0,
    status          TEXT        NOT NULL,
    error_code      TEXT        NOT NULL DEFAULT '',
    error_message   TEXT        NOT NULL DEFAULT '',
    duration_ms     BIGINT      NOT NULL DEFAULT 0,
    executed_at     TIMESTAMPTZ NOT NULL,
    dedupe_key      TEXT        NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS query_log_executed_at_idx ON query_log (executed_at DESC);
`

const insertRecordSQL = `
INSERT INTO query_log (
    id,
    metric,
    shape,
    dimensions,
    filters,
    date_from,
    date_to,
    target,
    row_count,
    skipped_records,
    status,
    error_code,
    error_message,
    duration_ms,
    executed_at,
    dedupe_key
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8,
    $9, $10, $11, $12, $13, $14, $15, $16
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

const listRecentSQL = `
SELECT
    id,
    metric,
    shape,
    dimensions,
    filters,
    date_from,
    date_to,
    target,
    row_count,
    skipped_records,
    status,
    error_code,
    error_message,
    duration_ms,
    executed_at,
    dedupe_key
FROM query_log
ORDER BY executed_at DESC
LIMIT $1`

// EnsureSchema creates the query_log table when it does not exist.
func (r *QueryRecordRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create query_log: %w", err)
	}
	return nil
}

func (r *QueryRecordRepository) InsertRecord(ctx context.Context, rec *domain.QueryRecord) (bool, error) {
	filtersJSON, err := json.Marshal(rec.Filters)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, insertRecordSQL,
		rec.ID,
		rec.Metric,
		rec.Shape,
		pq.Array(rec.Dimensions),
		filtersJSON,
		nullTime(rec.DateFrom),
		nullTime(rec.DateTo),
		rec.Target,
		rec.Rows,
		rec.SkippedRecords,
		string(rec.Status),
		rec.ErrorCode,
		rec.ErrorMessage,
		rec.Duration.Milliseconds(),
		rec.ExecutedAt,
		rec.DedupeKey,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func (r *QueryRecordRepository) ListRecent(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	rows, err := r.db.QueryContext(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.QueryRecord{}
	for rows.Next() {
		var (
			rec         domain.QueryRecord
			filtersJSON []byte
			from, to    sql.NullTime
			status      string
			durationMS  int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Metric,
			&rec.Shape,
			pq.Array(&rec.Dimensions),
			&filtersJSON,
			&from,
			&to,
			&rec.Target,
			&rec.Rows,
			&rec.SkippedRecords,
			&status,
			&rec.ErrorCode,
			&rec.ErrorMessage,
			&durationMS,
			&rec.ExecutedAt,
			&rec.DedupeKey,
		); err != nil {
			return nil, err
		}

		if len(filtersJSON) > 0 {
			if err := json.Unmarshal(filtersJSON, &rec.Filters); err != nil {
				return nil, fmt.Errorf("decode filters of %s: %w", rec.ID, err)
			}
		}
		if from.Valid {
			t := from.Time.UTC()
			rec.DateFrom = &t
		}
		if to.Valid {
			t := to.Time.UTC()
			rec.DateTo = &t
		}
		rec.Status = domain.Status(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.ExecutedAt = rec.ExecutedAt.UTC()

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
