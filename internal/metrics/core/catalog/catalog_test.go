package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

func TestEmbedded_LoadsEveryShape(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)
	assert.NotEmpty(t, c.Version())

	shapes := map[domain.Shape]int{}
	for _, d := range c.List() {
		shapes[d.Shape]++
	}
	assert.Positive(t, shapes[domain.ShapeSingle])
	assert.Positive(t, shapes[domain.ShapeBreakdown])
	assert.Positive(t, shapes[domain.ShapeFunnel])
	assert.Positive(t, shapes[domain.ShapeTrend])
}

func TestEmbedded_ListIsSortedByKind(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	list := c.List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Kind, list[i].Kind)
	}
}

func TestDescribe_Funnel(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	d, err := c.Describe("proceed_rate")
	require.NoError(t, err)

	assert.Equal(t, domain.ShapeFunnel, d.Shape)
	assert.True(t, d.AllowsPrimary(domain.DimensionStage))
	assert.False(t, d.AllowsPrimary(domain.DimensionOffer))
	assert.Equal(t, []string{"offer"}, d.RequiredFilters)
	assert.Equal(t, "proceeded / entered", d.Formula())

	col, ok := d.Column("proceed_rate")
	require.True(t, ok)
	assert.Equal(t, domain.UnitRatio, col.Unit)
}

func TestDescribe_TimeBasedSingle(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	d, err := c.Describe("time_to_hire")
	require.NoError(t, err)
	assert.True(t, d.IsTimeBased())
	assert.Equal(t, domain.PointCandidateApplied, d.StartPoint)
	assert.Equal(t, domain.PointCandidateHired, d.EndPoint)
	assert.False(t, d.CustomPoints)

	rate, err := c.Describe("hire_rate")
	require.NoError(t, err)
	assert.False(t, rate.IsTimeBased())
}

func TestDescribe_Unknown(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	_, err = c.Describe("foo_bar")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMetric))
	assert.Contains(t, err.Error(), "foo_bar")
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing version",
			yaml: "metrics: []",
			want: "missing version",
		},
		{
			name: "duplicate kind",
			yaml: `
version: "1"
metrics:
  - {kind: a, shape: single, value_column: v, columns: [{name: v, unit: count}]}
  - {kind: a, shape: single, value_column: v, columns: [{name: v, unit: count}]}
`,
			want: "duplicate metric",
		},
		{
			name: "undeclared value column",
			yaml: `
version: "1"
metrics:
  - {kind: a, shape: single, value_column: v, columns: [{name: w, unit: count}]}
`,
			want: "value column",
		},
		{
			name: "breakdown without pick",
			yaml: `
version: "1"
metrics:
  - {kind: a, shape: breakdown, event_types: [hired], value_column: v, columns: [{name: v, unit: count}]}
`,
			want: "unknown pick",
		},
		{
			name: "funnel without stage",
			yaml: `
version: "1"
metrics:
  - {kind: a, shape: funnel, primary_groups: [offer], value_column: v, columns: [{name: v, unit: ratio}]}
`,
			want: "group by stage",
		},
		{
			name: "bad unit",
			yaml: `
version: "1"
metrics:
  - {kind: a, shape: single, value_column: v, columns: [{name: v, unit: parsecs}]}
`,
			want: "unknown unit",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
