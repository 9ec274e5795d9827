package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/usecase"
)

var fixedNow = time.Date(2025, 5, 14, 15, 30, 0, 0, time.UTC)

func newNormalizer(t *testing.T, f *fakeResources) *usecase.Normalizer {
	t.Helper()
	c, err := catalog.Embedded()
	require.NoError(t, err)
	return usecase.NewNormalizer(c, f, func() time.Time { return fixedNow })
}

// ------------------------------------------------------------
// CATALOG VALIDATION
// ------------------------------------------------------------

func TestNormalize_UnknownMetric_NoUpstreamCalls(t *testing.T) {
	f := recruitingFixture()
	n := newNormalizer(t, f)

	_, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric:  "foo_bar",
		Filters: map[string]domain.FilterValue{"offer": {Values: []string{"Backend Engineer"}}},
	})

	var invalid *domain.InvalidMetricError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "foo_bar", invalid.Metric)
	assert.Contains(t, err.Error(), "foo_bar")
	assert.True(t, errors.Is(err, domain.ErrInvalidMetric))
	assert.Zero(t, f.upstreamCalls())
}

func TestNormalize_InvalidGrouping(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	_, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric:       "hires",
		PrimaryGroup: domain.DimensionStage,
	})

	var grouping *domain.InvalidGroupingError
	require.ErrorAs(t, err, &grouping)
	assert.Equal(t, "primary_group", grouping.Field)
	assert.Equal(t, domain.DimensionStage, grouping.Dimension)
}

func TestNormalize_SecondaryEqualToPrimary(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	_, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric:         "candidates",
		PrimaryGroup:   domain.DimensionSource,
		SecondaryGroup: domain.DimensionSource,
	})

	var grouping *domain.InvalidGroupingError
	require.ErrorAs(t, err, &grouping)
	assert.Equal(t, "secondary_group", grouping.Field)
	assert.NotContains(t, grouping.Allowed, domain.DimensionSource)
}

func TestNormalize_FilterNotAcceptedByMetric(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	_, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric:  "hires",
		Filters: map[string]domain.FilterValue{"stage": {Values: []string{"Interview"}}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))
}

// ------------------------------------------------------------
// DEFAULTS
// ------------------------------------------------------------

func TestNormalize_Defaults(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	q, err := n.Normalize(context.Background(), domain.MetricRequest{Metric: "candidates"})
	require.NoError(t, err)

	assert.Equal(t, domain.ShapeBreakdown, q.Shape)
	assert.Equal(t, domain.DimensionOffer, q.PrimaryGroup)
	assert.True(t, q.DateRange.IsUnbounded())
	assert.False(t, q.IncludeArchivedJobs)
	assert.Empty(t, q.Interval)
	assert.Empty(t, q.Filters)
}

func TestNormalize_TrendDefaultsToMonthlyPeriods(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	q, err := n.Normalize(context.Background(), domain.MetricRequest{Metric: "hires_over_time"})
	require.NoError(t, err)
	assert.Equal(t, domain.DimensionPeriod, q.PrimaryGroup)
	assert.Equal(t, domain.IntervalMonth, q.Interval)

	_, err = n.Normalize(context.Background(), domain.MetricRequest{Metric: "hires", Interval: domain.IntervalWeek})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))
}

func TestNormalize_TimeBasedPoints(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	q, err := n.Normalize(context.Background(), domain.MetricRequest{Metric: "time_to_hire"})
	require.NoError(t, err)
	assert.Equal(t, domain.PointCandidateApplied, q.StartPoint)
	assert.Equal(t, domain.PointCandidateHired, q.EndPoint)

	q, err = n.Normalize(context.Background(), domain.MetricRequest{
		Metric:   "custom_time_based",
		EndPoint: domain.PointCandidateDisqualified,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PointCandidateDisqualified, q.EndPoint)

	_, err = n.Normalize(context.Background(), domain.MetricRequest{
		Metric:   "time_to_hire",
		EndPoint: domain.PointCandidateDisqualified,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))
}

func TestNormalize_CustomPointSets(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	for _, start := range []domain.EventPoint{domain.PointCandidateApplied, domain.PointCandidateHired} {
		_, err := n.Normalize(context.Background(), domain.MetricRequest{
			Metric:     "custom_time_based",
			StartPoint: start,
			EndPoint:   domain.PointCandidateDisqualified,
		})
		assert.NoError(t, err, "start %s", start)
	}

	_, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric:     "custom_time_based",
		StartPoint: domain.PointCandidateDisqualified,
		EndPoint:   domain.PointCandidateHired,
	})
	var invalid *domain.InvalidFilterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "start_point", invalid.Field)

	_, err = n.Normalize(context.Background(), domain.MetricRequest{
		Metric:   "custom_time_based",
		EndPoint: domain.PointCandidateApplied,
	})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "end_point", invalid.Field)
}

func TestNormalize_SortAndLimit(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	_, err := n.Normalize(context.Background(), domain.MetricRequest{Metric: "hires_over_time", SortOrder: domain.SortDesc})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter), "trend metrics keep chronological order")

	_, err = n.Normalize(context.Background(), domain.MetricRequest{Metric: "hires", Limit: domain.MaxLimit + 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))

	q, err := n.Normalize(context.Background(), domain.MetricRequest{Metric: "hires", SortOrder: domain.SortAsc, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.SortAsc, q.SortOrder)
	assert.Equal(t, 5, q.Limit)
}

// ------------------------------------------------------------
// DATE RANGES
// ------------------------------------------------------------

func TestNormalize_DatePresets(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		preset string
		want   domain.DateRange
	}{
		{"today", domain.DateRange{From: day(2025, 5, 14), To: day(2025, 5, 15)}},
		{"yesterday", domain.DateRange{From: day(2025, 5, 13), To: day(2025, 5, 14)}},
		{"this_week", domain.DateRange{From: day(2025, 5, 12), To: day(2025, 5, 19)}},
		{"last_week", domain.DateRange{From: day(2025, 5, 5), To: day(2025, 5, 12)}},
		{"last_month", domain.DateRange{From: day(2025, 4, 1), To: day(2025, 5, 1)}},
		{"this_quarter", domain.DateRange{From: day(2025, 4, 1), To: day(2025, 7, 1)}},
		{"last_quarter", domain.DateRange{From: day(2025, 1, 1), To: day(2025, 4, 1)}},
		{"last_year", domain.DateRange{From: day(2024, 1, 1), To: day(2025, 1, 1)}},
		{"last_7_days", domain.DateRange{From: day(2025, 5, 8), To: day(2025, 5, 15)}},
		{"all_time", domain.DateRange{}},
	}

	n := newNormalizer(t, recruitingFixture())
	for _, tc := range tests {
		t.Run(tc.preset, func(t *testing.T) {
			q, err := n.Normalize(context.Background(), domain.MetricRequest{
				Metric:    "hires",
				DateRange: &domain.DateRangeInput{Preset: tc.preset},
			})
			require.NoError(t, err)
			assert.True(t, tc.want.From.Equal(q.DateRange.From), "from: %s", q.DateRange.From)
			assert.True(t, tc.want.To.Equal(q.DateRange.To), "to: %s", q.DateRange.To)
		})
	}
}

func TestNormalize_DateRangeErrors(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	_, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric:    "hires",
		DateRange: &domain.DateRangeInput{Preset: "next_decade"},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))

	_, err = n.Normalize(context.Background(), domain.MetricRequest{
		Metric:    "hires",
		DateRange: &domain.DateRangeInput{From: fixedNow, To: fixedNow.Add(-time.Hour)},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))
}

// ------------------------------------------------------------
// FILTER RESOLUTION
// ------------------------------------------------------------

func TestNormalize_ResolvesNamesToIDs(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	q, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric: "candidates",
		Filters: map[string]domain.FilterValue{
			"offer":  {Values: []string{"backend engineer"}},
			"stage":  {Values: []string{"Interview"}},
			"tag":    {Values: []string{"Remote", "8"}},
			"source": {Values: []string{"Referral", "LinkedIn", "Referral"}},
		},
	})
	require.NoError(t, err)

	offer, ok := q.Filter("offer")
	require.True(t, ok)
	assert.Equal(t, []string{"10"}, offer.Values)

	stage, _ := q.Filter("stage")
	assert.Equal(t, []string{"103"}, stage.Values, "stage names resolve inside the selected offer")

	tag, _ := q.Filter("tag")
	assert.Equal(t, []string{"7", "8"}, tag.Values)

	source, _ := q.Filter("source")
	assert.Equal(t, []string{"LinkedIn", "Referral"}, source.Values)

	var fields []string
	for _, f := range q.Filters {
		fields = append(fields, f.Field)
	}
	assert.IsNonDecreasing(t, fields)
}

func TestNormalize_StageAcrossPipelines(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	q, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric:  "candidates",
		Filters: map[string]domain.FilterValue{"stage": {Values: []string{"Interview"}}},
	})
	require.NoError(t, err)

	stage, _ := q.Filter("stage")
	assert.Equal(t, []string{"103", "203"}, stage.Values, "archived pipelines stay out of scope")
}

func TestNormalize_AmbiguousOffer(t *testing.T) {
	f := recruitingFixture()
	f.offers = append(f.offers, domain.Offer{ID: offerBackend2, Title: "Backend Engineer", Status: "published"})
	f.stages[offerBackend2] = pipeline(301)
	n := newNormalizer(t, f)

	_, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric:  "proceed_rate",
		Filters: map[string]domain.FilterValue{"offer": {Values: []string{"Backend Engineer"}}},
	})

	var ambiguous *domain.AmbiguousFilterError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "offer", ambiguous.Field)
	assert.Equal(t, []int64{offerBackend, offerBackend2}, ambiguous.Candidates)
	assert.Contains(t, err.Error(), "10")
	assert.Contains(t, err.Error(), "30")
	assert.Empty(t, f.eventQuery, "no events are fetched")
}

func TestNormalize_AmbiguousStageWithinPipeline(t *testing.T) {
	f := recruitingFixture()
	f.stages[offerBackend] = append(f.stages[offerBackend], domain.Stage{ID: 199, Name: "interview", Position: 9})
	n := newNormalizer(t, f)

	_, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric: "candidates",
		Filters: map[string]domain.FilterValue{
			"offer": {Values: []string{"10"}},
			"stage": {Values: []string{"Interview"}},
		},
	})
	var ambiguous *domain.AmbiguousFilterError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []int64{103, 199}, ambiguous.Candidates)
}

func TestNormalize_NotFound(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	_, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric:  "candidates",
		Filters: map[string]domain.FilterValue{"tag": {Values: []string{"Golang"}}},
	})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "tag", notFound.Field)
	assert.Equal(t, "Golang", notFound.Value)
}

func TestNormalize_ArchivedOffersNeedOptIn(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())
	req := domain.MetricRequest{
		Metric:  "hires",
		Filters: map[string]domain.FilterValue{"offer": {Values: []string{"Data Analyst"}}},
	}

	_, err := n.Normalize(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	yes := true
	req.IncludeArchivedJobs = &yes
	q, err := n.Normalize(context.Background(), req)
	require.NoError(t, err)
	offer, _ := q.Filter("offer")
	assert.Equal(t, []string{"40"}, offer.Values)
}

func TestNormalize_FunnelNeedsOneOffer(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	_, err := n.Normalize(context.Background(), domain.MetricRequest{Metric: "proceed_rate"})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))

	_, err = n.Normalize(context.Background(), domain.MetricRequest{
		Metric:  "proceed_rate",
		Filters: map[string]domain.FilterValue{"offer": {Values: []string{"10", "20"}}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))
}

func TestNormalize_AppliedAtRange(t *testing.T) {
	n := newNormalizer(t, recruitingFixture())

	q, err := n.Normalize(context.Background(), domain.MetricRequest{
		Metric: "candidates",
		Filters: map[string]domain.FilterValue{
			"applied_at": {Range: &domain.ValueRange{From: "2025-01-01", To: "2025-03-31"}},
		},
	})
	require.NoError(t, err)

	f, ok := q.Filter("applied_at")
	require.True(t, ok)
	require.NotNil(t, f.Range)
	assert.True(t, f.Range.From.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, f.Range.To.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)), "end date is inclusive")

	_, err = n.Normalize(context.Background(), domain.MetricRequest{
		Metric:  "candidates",
		Filters: map[string]domain.FilterValue{"applied_at": {Values: []string{"2025-01-01"}}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilter))
}

// ------------------------------------------------------------
// IDEMPOTENCY
// ------------------------------------------------------------

func TestNormalize_Idempotent(t *testing.T) {
	yes := true
	requests := []domain.MetricRequest{
		{Metric: "candidates"},
		{Metric: "hires", DateRange: &domain.DateRangeInput{Preset: "last_quarter"}, SortOrder: domain.SortDesc, Limit: 3},
		{
			Metric:         "candidates",
			PrimaryGroup:   domain.DimensionStage,
			SecondaryGroup: domain.DimensionSource,
			Filters: map[string]domain.FilterValue{
				"offer":      {Values: []string{"Backend Engineer", "Frontend Engineer"}},
				"stage":      {Values: []string{"interview"}},
				"tag":        {Values: []string{"Remote"}},
				"applied_at": {Range: &domain.ValueRange{From: "2025-01-01", To: "2025-02-15T12:00:00Z"}},
			},
			IncludeArchivedJobs: &yes,
		},
		{
			Metric:    "proceed_rate",
			Filters:   map[string]domain.FilterValue{"offer": {Values: []string{"Backend Engineer"}}},
			DateRange: &domain.DateRangeInput{Preset: "range", From: t0, To: t0.AddDate(0, 1, 0)},
		},
		{Metric: "disqualifications_over_time", Interval: domain.IntervalWeek, Filters: map[string]domain.FilterValue{
			"disqualify_reason": {Values: []string{"salary"}},
		}},
		{Metric: "custom_time_based", StartPoint: domain.PointCandidateHired, EndPoint: domain.PointCandidateDisqualified},
	}

	n := newNormalizer(t, recruitingFixture())
	for _, req := range requests {
		t.Run(req.Metric, func(t *testing.T) {
			first, err := n.Normalize(context.Background(), req)
			require.NoError(t, err)

			second, err := n.Normalize(context.Background(), first.AsRequest())
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}
