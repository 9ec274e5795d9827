package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-metrics-service/internal/metrics/core/catalog"
	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
	"recruitment-metrics-service/internal/metrics/core/usecase"
)

// fakeRecorder, QueryRecorder port'unu test için fake'ler.
type fakeRecorder struct {
	mu       sync.Mutex
	RecordFn func(ctx context.Context, o ports.QueryOutcome) error
	outcomes []ports.QueryOutcome
}

func (f *fakeRecorder) RecordQuery(ctx context.Context, o ports.QueryOutcome) error {
	f.mu.Lock()
	f.outcomes = append(f.outcomes, o)
	f.mu.Unlock()
	if f.RecordFn != nil {
		return f.RecordFn(ctx, o)
	}
	return nil
}

func newGetMetrics(t *testing.T, f *fakeResources, rec ports.QueryRecorder) *usecase.GetMetricsUseCase {
	t.Helper()
	c, err := catalog.Embedded()
	require.NoError(t, err)
	return usecase.NewGetMetricsUseCase(
		usecase.NewNormalizer(c, f, func() time.Time { return fixedNow }),
		usecase.NewAggregator(c, f, nil, usecase.AggregatorConfig{}),
		usecase.NewFormatter(),
		rec,
		nil,
	)
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestGetMetrics_Success(t *testing.T) {
	rec := &fakeRecorder{}
	uc := newGetMetrics(t, funnelFixture(), rec)

	out, err := uc.Execute(context.Background(), usecase.GetMetricsInput{
		Request: domain.MetricRequest{
			Metric:  "proceed_rate",
			Filters: backendFilter(),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "proceed_rate", out.Query.Metric)
	assert.Len(t, out.Table.Rows, 5)
	require.NotNil(t, out.Result.Table)
	assert.Equal(t, domain.TargetTable, out.Result.Target)
	assert.Equal(t, []string{"Applied", "100", "60", "60.0%", "40.0%"}, out.Result.Table.Rows[0])

	require.Len(t, rec.outcomes, 1)
	o := rec.outcomes[0]
	assert.NoError(t, o.Err)
	require.NotNil(t, o.Query)
	assert.Equal(t, 5, o.Rows)
	assert.Equal(t, domain.TargetTable, o.Target)
}

func TestGetMetrics_SankeyBySource(t *testing.T) {
	uc := newGetMetrics(t, breakdownFixture(), nil)

	out, err := uc.Execute(context.Background(), usecase.GetMetricsInput{
		Request: domain.MetricRequest{
			Metric:         "candidates",
			PrimaryGroup:   domain.DimensionOffer,
			SecondaryGroup: domain.DimensionSource,
		},
		Target: domain.TargetSankey,
	})
	require.NoError(t, err)

	total := 0.0
	for _, e := range out.Result.Sankey.Edges {
		total += e.Weight
	}
	assert.Equal(t, 6.0, total)
}

// ------------------------------------------------------------
// VALIDATION: nothing reaches upstream
// ------------------------------------------------------------

func TestGetMetrics_UnknownTarget(t *testing.T) {
	f := funnelFixture()
	rec := &fakeRecorder{}
	uc := newGetMetrics(t, f, rec)

	_, err := uc.Execute(context.Background(), usecase.GetMetricsInput{
		Request: domain.MetricRequest{Metric: "candidates"},
		Target:  "pie",
	})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedTarget))
	assert.Zero(t, f.upstreamCalls())

	require.Len(t, rec.outcomes, 1)
	assert.Error(t, rec.outcomes[0].Err)
	assert.Nil(t, rec.outcomes[0].Query)
}

func TestGetMetrics_SankeyWithoutSecondaryGroup(t *testing.T) {
	f := breakdownFixture()
	uc := newGetMetrics(t, f, nil)

	_, err := uc.Execute(context.Background(), usecase.GetMetricsInput{
		Request: domain.MetricRequest{Metric: "candidates"},
		Target:  domain.TargetSankey,
	})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedTarget))
	assert.Empty(t, f.eventQuery, "no events are fetched")
}

func TestGetMetrics_UnknownMetric(t *testing.T) {
	f := funnelFixture()
	uc := newGetMetrics(t, f, nil)

	_, err := uc.Execute(context.Background(), usecase.GetMetricsInput{
		Request: domain.MetricRequest{Metric: "foo_bar"},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidMetric))
	assert.Zero(t, f.upstreamCalls())
}

// ------------------------------------------------------------
// AUDIT FAILURES
// ------------------------------------------------------------

func TestGetMetrics_RecorderErrorDoesNotFailQuery(t *testing.T) {
	rec := &fakeRecorder{
		RecordFn: func(context.Context, ports.QueryOutcome) error { return errors.New("db down") },
	}
	uc := newGetMetrics(t, breakdownFixture(), rec)

	out, err := uc.Execute(context.Background(), usecase.GetMetricsInput{
		Request: domain.MetricRequest{Metric: "candidates"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Table.Rows)
	assert.Len(t, rec.outcomes, 1)
}

func TestGetMetrics_UpstreamFailureIsRecorded(t *testing.T) {
	f := breakdownFixture()
	f.PageFn = func(int64, int) (ports.EventPage, error) {
		return ports.EventPage{}, &domain.UpstreamUnavailableError{Endpoint: "candidate_events", Attempts: 4}
	}
	rec := &fakeRecorder{}
	uc := newGetMetrics(t, f, rec)

	_, err := uc.Execute(context.Background(), usecase.GetMetricsInput{
		Request: domain.MetricRequest{Metric: "candidates"},
	})
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))

	require.Len(t, rec.outcomes, 1)
	assert.True(t, errors.Is(rec.outcomes[0].Err, domain.ErrUpstreamUnavailable))
	assert.NotNil(t, rec.outcomes[0].Query)
}

// ------------------------------------------------------------
// CATALOG / LOOKUPS
// ------------------------------------------------------------

func TestCatalogUseCase(t *testing.T) {
	c, err := catalog.Embedded()
	require.NoError(t, err)
	uc := usecase.NewCatalogUseCase(c)

	list := uc.ListMetrics()
	assert.NotEmpty(t, list)

	details, err := uc.DescribeMetrics("hires", "proceed_rate")
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "hires", details[0].Kind)

	_, err = uc.DescribeMetrics("hires", "foo_bar")
	assert.True(t, errors.Is(err, domain.ErrInvalidMetric))
}
