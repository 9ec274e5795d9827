package ports

import (
	"context"

	"recruitment-metrics-service/internal/querylog/core/domain"
)

type QueryRecordRepositoryPort interface {
	// InsertRecord:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate (idempotent)
	//   created = false, err != nil -> DB error
	InsertRecord(ctx context.Context, r *domain.QueryRecord) (created bool, err error)

	// ListRecent returns at most limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.QueryRecord, error)
}
