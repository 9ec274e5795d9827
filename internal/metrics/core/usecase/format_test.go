package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/usecase"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0.0 hours"},
		{1800, "0.5 hours"},
		{7199, "2.0 hours"},
		{7200, "0.1 days"},
		{172800, "2.0 days"},
		{1209600, "14.0 days"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, usecase.FormatDuration(tc.seconds), "%v seconds", tc.seconds)
	}
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "60.0%", usecase.FormatRatio(0.6))
	assert.Equal(t, "0.0%", usecase.FormatRatio(0))
	assert.Equal(t, "33.3%", usecase.FormatRatio(1.0/3.0))
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "Jane D.", usecase.AbbreviateName("Jane Doe"))
	assert.Equal(t, "Mary S.", usecase.AbbreviateName("Mary Ann smith"))
	assert.Equal(t, "Cher", usecase.AbbreviateName("Cher"))
	assert.Equal(t, "Łukasz Ż.", usecase.AbbreviateName("Łukasz Żak"))
}

func participantTable() *domain.ResultTable {
	linkedin := domain.GroupValue{Key: "linkedin", Label: "LinkedIn"}
	referral := domain.GroupValue{Key: "referral", Label: "Referral"}
	jane := domain.GroupValue{Key: "500", Label: "Jane Doe"}
	john := domain.GroupValue{Key: "501", Label: "John Smith"}
	return &domain.ResultTable{
		Metric:         "hires",
		Shape:          domain.ShapeBreakdown,
		PrimaryGroup:   domain.DimensionParticipant,
		SecondaryGroup: domain.DimensionSource,
		ValueColumn:    "hires",
		Columns:        []domain.MetricColumn{{Name: "hires", Unit: domain.UnitCount}},
		Rows: []domain.AggregationRow{
			{Group: domain.GroupKey{Primary: jane, Secondary: &linkedin}, Metrics: map[string]float64{"hires": 3}},
			{Group: domain.GroupKey{Primary: jane, Secondary: &referral}, Metrics: map[string]float64{"hires": 1}},
			{Group: domain.GroupKey{Primary: john, Secondary: &referral}, Metrics: map[string]float64{"hires": 2}},
		},
		Meta: domain.ResultMeta{Units: map[string]domain.Unit{"hires": domain.UnitCount}},
	}
}

func TestFormat_TableKeepsFullNames(t *testing.T) {
	out, err := usecase.NewFormatter().Format(participantTable(), domain.TargetTable)
	require.NoError(t, err)

	require.NotNil(t, out.Table)
	assert.Nil(t, out.Chart)
	assert.Equal(t, []domain.TableColumn{
		{Key: "participant", Title: "Participant"},
		{Key: "source", Title: "Source"},
		{Key: "hires", Title: "Hires"},
	}, out.Table.Columns)
	assert.Equal(t, []string{"Jane Doe", "LinkedIn", "3"}, out.Table.Rows[0])
}

func TestFormat_ChartAbbreviatesNames(t *testing.T) {
	out, err := usecase.NewFormatter().Format(participantTable(), domain.TargetBar)
	require.NoError(t, err)

	require.NotNil(t, out.Chart)
	assert.Equal(t, []string{"Jane D.", "John S."}, out.Chart.Categories)
	require.Len(t, out.Chart.Series, 2)
	assert.Equal(t, "LinkedIn", out.Chart.Series[0].Name)

	linkedin := out.Chart.Series[0].Values
	require.Len(t, linkedin, 2)
	require.NotNil(t, linkedin[0])
	assert.Equal(t, 3.0, *linkedin[0])
	assert.Nil(t, linkedin[1], "John has no LinkedIn hires")
}

func TestFormat_SankeyRoundTrip(t *testing.T) {
	table := participantTable()
	out, err := usecase.NewFormatter().Format(table, domain.TargetSankey)
	require.NoError(t, err)
	require.NotNil(t, out.Sankey)

	assert.Len(t, out.Sankey.Nodes, 4)
	require.Len(t, out.Sankey.Edges, len(table.Rows))

	labels := map[string]string{}
	for _, n := range out.Sankey.Nodes {
		labels[n.ID] = n.Label
	}
	for i, r := range table.Rows {
		e := out.Sankey.Edges[i]
		assert.Equal(t, "source:"+r.Group.Primary.Key, e.Source)
		assert.Equal(t, "target:"+r.Group.Secondary.Key, e.Target)
		assert.Equal(t, r.Metrics["hires"], e.Weight)
	}
	assert.Equal(t, "Jane D.", labels["source:500"])
}

func TestFormat_SankeyNeedsSecondaryGroup(t *testing.T) {
	table := participantTable()
	table.SecondaryGroup = domain.DimensionNone

	_, err := usecase.NewFormatter().Format(table, domain.TargetSankey)
	var unsupported *domain.UnsupportedTargetError
	require.ErrorAs(t, err, &unsupported)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedTarget))
}

func TestFormat_UnknownTarget(t *testing.T) {
	_, err := usecase.NewFormatter().Format(participantTable(), domain.Target("pie"))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedTarget))
}

func TestFormat_ChartUnits(t *testing.T) {
	stage := func(key string) domain.GroupKey { return domain.GroupKey{Primary: domain.GroupValue{Key: key, Label: key}} }
	durations := &domain.ResultTable{
		Metric:       "time_spent_in_stage",
		Shape:        domain.ShapeFunnel,
		PrimaryGroup: domain.DimensionStage,
		ValueColumn:  "time_spent_in_stage",
		Columns:      []domain.MetricColumn{{Name: "time_spent_in_stage", Unit: domain.UnitSeconds}},
		Rows: []domain.AggregationRow{
			{Group: stage("applied"), Metrics: map[string]float64{"time_spent_in_stage": 3600}},
			{Group: stage("interview"), Metrics: map[string]float64{"time_spent_in_stage": 172800}},
			{Group: stage("offer"), Metrics: map[string]float64{}},
		},
		Meta: domain.ResultMeta{Units: map[string]domain.Unit{"time_spent_in_stage": domain.UnitSeconds}},
	}

	out, err := usecase.NewFormatter().Format(durations, domain.TargetLine)
	require.NoError(t, err)
	assert.Equal(t, "days", out.Chart.Unit, "unit follows the largest value")
	values := out.Chart.Series[0].Values
	assert.InDelta(t, 1.0/24.0, *values[0], 1e-12)
	assert.Equal(t, 2.0, *values[1])
	assert.Nil(t, values[2])

	table, err := usecase.NewFormatter().Format(durations, domain.TargetTable)
	require.NoError(t, err)
	assert.Equal(t, []string{"applied", "1.0 hours"}, table.Table.Rows[0])
	assert.Equal(t, []string{"offer", "n/a"}, table.Table.Rows[2])
}

func TestFormat_RatiosAsPercent(t *testing.T) {
	table := &domain.ResultTable{
		Metric:       "proceed_rate",
		Shape:        domain.ShapeFunnel,
		PrimaryGroup: domain.DimensionStage,
		ValueColumn:  "proceed_rate",
		Columns: []domain.MetricColumn{
			{Name: "entered", Unit: domain.UnitCount},
			{Name: "proceed_rate", Unit: domain.UnitRatio},
		},
		Rows: []domain.AggregationRow{{
			Group:   domain.GroupKey{Primary: domain.GroupValue{Key: "101", Label: "Applied"}},
			Metrics: map[string]float64{"entered": 100, "proceed_rate": 0.6},
		}},
		Meta: domain.ResultMeta{Units: map[string]domain.Unit{"entered": domain.UnitCount, "proceed_rate": domain.UnitRatio}},
	}

	out, err := usecase.NewFormatter().Format(table, domain.TargetTable)
	require.NoError(t, err)
	assert.Equal(t, []string{"Applied", "100", "60.0%"}, out.Table.Rows[0])

	chart, err := usecase.NewFormatter().Format(table, domain.TargetColumn)
	require.NoError(t, err)
	assert.Equal(t, "percent", chart.Chart.Unit)
	assert.InDelta(t, 60.0, *chart.Chart.Series[0].Values[0], 1e-9)
}
