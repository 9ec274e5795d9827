package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	metricsdomain "recruitment-metrics-service/internal/metrics/core/domain"
	metricsports "recruitment-metrics-service/internal/metrics/core/ports"
	"recruitment-metrics-service/internal/querylog/core/domain"
	"recruitment-metrics-service/internal/querylog/core/ports"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500

	maxErrorMessage = 500
)

var ErrInvalidLimit = errors.New("invalid limit")

type RecordQueryUseCase struct {
	repo  ports.QueryRecordRepositoryPort
	newID func() uuid.UUID
}

func NewRecordQueryUseCase(repo ports.QueryRecordRepositoryPort) *RecordQueryUseCase {
	return &RecordQueryUseCase{repo: repo, newID: uuid.New}
}

var _ metricsports.QueryRecorder = (*RecordQueryUseCase)(nil)

// RecordQuery stores one query outcome. Recording the same outcome twice keeps a single row.
func (uc *RecordQueryUseCase) RecordQuery(ctx context.Context, o metricsports.QueryOutcome) error {
	r := buildRecord(o)
	r.ID = uc.newID()

	if _, err := uc.repo.InsertRecord(ctx, r); err != nil {
		return fmt.Errorf("insert query record: %w", err)
	}
	return nil
}

// ListRecent returns the latest records; limit 0 means DefaultListLimit.
func (uc *RecordQueryUseCase) ListRecent(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 0 || limit > MaxListLimit {
		return nil, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidLimit, MaxListLimit)
	}
	return uc.repo.ListRecent(ctx, limit)
}

func buildRecord(o metricsports.QueryOutcome) *domain.QueryRecord {
	r := &domain.QueryRecord{
		Metric:         o.Request.Metric,
		Target:         string(o.Target),
		Rows:           o.Rows,
		SkippedRecords: o.SkippedRecords,
		Status:         domain.StatusSucceeded,
		Duration:       o.Duration,
		ExecutedAt:     o.StartedAt.UTC(),
		Dimensions:     []string{},
		Filters:        map[string][]string{},
	}

	primary, secondary := o.Request.PrimaryGroup, o.Request.SecondaryGroup
	if q := o.Query; q != nil {
		r.Metric = q.Metric
		r.Shape = string(q.Shape)
		primary, secondary = q.PrimaryGroup, q.SecondaryGroup
		for _, f := range q.Filters {
			r.Filters[f.Field] = resolvedValues(f)
		}
		if !q.DateRange.From.IsZero() {
			from := q.DateRange.From.UTC()
			r.DateFrom = &from
		}
		if !q.DateRange.To.IsZero() {
			to := q.DateRange.To.UTC()
			r.DateTo = &to
		}
	} else {
		for field, v := range o.Request.Filters {
			if v.Range != nil {
				r.Filters[field] = []string{v.Range.From + ".." + v.Range.To}
				continue
			}
			r.Filters[field] = append([]string{}, v.Values...)
		}
	}
	for _, d := range []metricsdomain.Dimension{primary, secondary} {
		if d != metricsdomain.DimensionNone {
			r.Dimensions = append(r.Dimensions, string(d))
		}
	}

	if o.Err != nil {
		r.Status = domain.StatusFailed
		r.ErrorCode = metricsdomain.ErrorCode(o.Err)
		msg := o.Err.Error()
		if len(msg) > maxErrorMessage {
			msg = msg[:maxErrorMessage] + "..."
		}
		r.ErrorMessage = msg
	}

	r.DedupeKey = buildDedupeKey(r)
	return r
}

func resolvedValues(f metricsdomain.ResolvedFilter) []string {
	if f.Range == nil {
		return append([]string{}, f.Values...)
	}
	var from, to string
	if !f.Range.From.IsZero() {
		from = f.Range.From.UTC().Format(time.RFC3339)
	}
	if !f.Range.To.IsZero() {
		to = f.Range.To.UTC().Format(time.RFC3339)
	}
	return []string{from + ".." + to}
}

func buildDedupeKey(r *domain.QueryRecord) string {
	// metric + target + status + dimensions + started_at (unix nanos)
	return fmt.Sprintf("%s|%s|%s|%v|%d",
		r.Metric,
		r.Target,
		r.Status,
		r.Dimensions,
		r.ExecutedAt.UnixNano(),
	)
}
