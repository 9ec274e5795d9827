package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

const (
	defaultFetchConcurrency = 4
	defaultMaxPages         = 10_000
)

type AggregatorConfig struct {
	FetchConcurrency int
	MaxPages         int
}

// Aggregator executes canonical queries. It keeps no state between calls.
type Aggregator struct {
	catalog     *catalog.Catalog
	resources   ports.ResourcePort
	logger      *slog.Logger
	concurrency int
	maxPages    int
}

func NewAggregator(c *catalog.Catalog, resources ports.ResourcePort, logger *slog.Logger, cfg AggregatorConfig) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = defaultFetchConcurrency
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	return &Aggregator{
		catalog:     c,
		resources:   resources,
		logger:      logger.With("component", "aggregator"),
		concurrency: cfg.FetchConcurrency,
		maxPages:    cfg.MaxPages,
	}
}

// Aggregate computes the result table of q. A query matching nothing yields an empty table.
func (a *Aggregator) Aggregate(ctx context.Context, q domain.CanonicalQuery) (*domain.ResultTable, error) {
	return a.aggregate(ctx, q, newLookups(a.resources))
}

func (a *Aggregator) aggregate(ctx context.Context, q domain.CanonicalQuery, lk *lookups) (*domain.ResultTable, error) {
	desc, err := a.catalog.Describe(q.Metric)
	if err != nil {
		return nil, &domain.InvalidMetricError{Metric: q.Metric}
	}

	fetched, err := a.fetchEvents(ctx, q, lk)
	if err != nil {
		return nil, err
	}
	placements := buildPlacements(fetched.events)
	sc := newScope(q)

	table := newTable(desc, q)
	table.Meta.SkippedRecords = fetched.skipped

	var (
		rows     []domain.AggregationRow
		excluded int
	)
	switch desc.Shape {
	case domain.ShapeSingle:
		if fetched.skipped > 0 {
			return nil, &domain.MalformedDataError{Metric: q.Metric, Skipped: fetched.skipped}
		}
		var row domain.AggregationRow
		row, excluded = single(desc, q, sc, placements)
		rows = []domain.AggregationRow{row}

	case domain.ShapeBreakdown:
		dims, err := newDimensions(ctx, lk, q, fetched.offerIDs)
		if err != nil {
			return nil, err
		}
		rows = breakdown(desc, q, sc, dims, placements)

	case domain.ShapeTrend:
		dims, err := newDimensions(ctx, lk, q, fetched.offerIDs)
		if err != nil {
			return nil, err
		}
		rows, excluded = trend(desc, q, sc, dims, placements)

	case domain.ShapeFunnel:
		if len(fetched.offerIDs) != 1 {
			return nil, &domain.InvalidFilterError{Field: domain.FilterOffer, Reason: "funnel metrics need exactly one offer"}
		}
		dims, err := newDimensions(ctx, lk, q, fetched.offerIDs)
		if err != nil {
			return nil, err
		}
		stages, err := lk.stagesOf(ctx, fetched.offerIDs[0])
		if err != nil {
			return nil, err
		}
		rows, excluded = funnel(q, sc, dims, stages, placements)
		table.Meta.Assumptions = append(table.Meta.Assumptions,
			"latest entry into a stage is authoritative when a candidate re-enters it",
			"time_to_reach_stage measures the first entry into a stage",
			"candidates still in a stage are excluded from time_spent_in_stage",
		)
	}

	if excluded > 0 {
		table.Meta.ExcludedFromTiming = excluded
		table.Meta.Assumptions = append(table.Meta.Assumptions,
			fmt.Sprintf("%d record(s) without a usable timestamp excluded from timing", excluded))
	}

	rows = projectRows(rows, desc.Columns)
	sortRows(rows, desc.ValueColumn, q.SortOrder)
	table.Rows = limitRows(rows, q.Limit)
	return table, nil
}

func newTable(desc catalog.Descriptor, q domain.CanonicalQuery) *domain.ResultTable {
	t := &domain.ResultTable{
		Metric:         q.Metric,
		Shape:          desc.Shape,
		PrimaryGroup:   q.PrimaryGroup,
		SecondaryGroup: q.SecondaryGroup,
		ValueColumn:    desc.ValueColumn,
		Columns:        append([]domain.MetricColumn(nil), desc.Columns...),
		Rows:           []domain.AggregationRow{},
		Meta: domain.ResultMeta{
			Units:     make(map[string]domain.Unit, len(desc.Columns)),
			Formulas:  map[string]string{},
			DateRange: q.DateRange,
		},
	}
	for _, c := range desc.Columns {
		t.Meta.Units[c.Name] = c.Unit
		if c.Formula != "" {
			t.Meta.Formulas[c.Name] = c.Formula
		}
	}
	switch {
	case desc.Shape == domain.ShapeBreakdown && !groupedByOffer(q):
		t.Meta.Assumptions = append(t.Meta.Assumptions, "each candidate counts once per group, even across offers")
	case desc.Shape != domain.ShapeSingle || !desc.IsTimeBased():
		t.Meta.Assumptions = append(t.Meta.Assumptions, "each candidate counts once per offer")
	}
	return t
}
