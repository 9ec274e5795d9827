package ports

import (
	"context"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

// QueryOutcome describes one executed metric query. Query is nil when normalization failed.
type QueryOutcome struct {
	Request        domain.MetricRequest
	Query          *domain.CanonicalQuery
	Target         domain.Target
	Rows           int
	SkippedRecords int
	Err            error
	StartedAt      time.Time
	Duration       time.Duration
}

type QueryRecorder interface {
	RecordQuery(ctx context.Context, o QueryOutcome) error
}
