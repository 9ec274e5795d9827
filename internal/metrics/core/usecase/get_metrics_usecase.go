package usecase

import (
	"context"
	"log/slog"
	"time"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

type GetMetricsInput struct {
	Request domain.MetricRequest
	Target  domain.Target // table when empty
}

type GetMetricsOutput struct {
	Query  domain.CanonicalQuery
	Table  *domain.ResultTable
	Result *domain.FormattedResult
}

// GetMetricsUseCase runs normalize, aggregate and format for one request.
type GetMetricsUseCase struct {
	normalizer *Normalizer
	aggregator *Aggregator
	formatter  *Formatter
	recorder   ports.QueryRecorder
	logger     *slog.Logger
	now        func() time.Time
}

// NewGetMetricsUseCase wires the pipeline. recorder may be nil.
func NewGetMetricsUseCase(
	normalizer *Normalizer,
	aggregator *Aggregator,
	formatter *Formatter,
	recorder ports.QueryRecorder,
	logger *slog.Logger,
) *GetMetricsUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GetMetricsUseCase{
		normalizer: normalizer,
		aggregator: aggregator,
		formatter:  formatter,
		recorder:   recorder,
		logger:     logger.With("component", "get_metrics"),
		now:        time.Now,
	}
}

// Execute validates the request, computes the table and formats it for the target.
// The target is checked before any upstream call.
func (uc *GetMetricsUseCase) Execute(ctx context.Context, in GetMetricsInput) (out *GetMetricsOutput, err error) {
	started := uc.now()
	outcome := ports.QueryOutcome{Request: in.Request, Target: in.Target, StartedAt: started}
	defer func() {
		outcome.Err = err
		outcome.Duration = uc.now().Sub(started)
		uc.record(ctx, outcome)
	}()

	target := in.Target
	if target == "" {
		target = domain.TargetTable
	}
	outcome.Target = target
	if !target.Valid() {
		return nil, &domain.UnsupportedTargetError{Target: target, Reason: "expected table, bar, column, line or sankey"}
	}

	lk := newLookups(uc.normalizer.resources)
	q, err := uc.normalizer.normalize(ctx, in.Request, lk)
	if err != nil {
		return nil, err
	}
	outcome.Query = &q

	if err := CheckTarget(target, q.SecondaryGroup); err != nil {
		return nil, err
	}

	table, err := uc.aggregator.aggregate(ctx, q, lk)
	if err != nil {
		return nil, err
	}
	outcome.Rows = len(table.Rows)
	outcome.SkippedRecords = table.Meta.SkippedRecords

	result, err := uc.formatter.Format(table, target)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("metric query executed",
		"metric", q.Metric,
		"primary_group", q.PrimaryGroup,
		"secondary_group", q.SecondaryGroup,
		"rows", len(table.Rows),
		"skipped_records", table.Meta.SkippedRecords,
		"duration_ms", uc.now().Sub(started).Milliseconds(),
	)
	return &GetMetricsOutput{Query: q, Table: table, Result: result}, nil
}

// record stores the outcome; an audit failure never fails the query.
func (uc *GetMetricsUseCase) record(ctx context.Context, o ports.QueryOutcome) {
	if o.Err != nil {
		level := slog.LevelError
		if isInputError(o.Err) {
			level = slog.LevelInfo
		}
		uc.logger.Log(ctx, level, "metric query failed", "metric", o.Request.Metric, "error", o.Err)
	}
	if uc.recorder == nil {
		return
	}
	if err := uc.recorder.RecordQuery(context.WithoutCancel(ctx), o); err != nil {
		uc.logger.Error("record metric query", "metric", o.Request.Metric, "error", err)
	}
}
