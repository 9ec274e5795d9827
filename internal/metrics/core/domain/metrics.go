package domain

// Unit of an aggregated value.
type Unit string

const (
	UnitCount   Unit = "count"
	UnitRatio   Unit = "ratio"
	UnitSeconds Unit = "seconds"
)

// MetricColumn describes one value column of a result table.
type MetricColumn struct {
	Name    string `json:"name" yaml:"name"`
	Unit    Unit   `json:"unit" yaml:"unit"`
	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// GroupValue is one bucket of a grouping dimension.
type GroupValue struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// AllGroup is the key of ungrouped rows.
var AllGroup = GroupValue{Key: "all", Label: "All"}

type GroupKey struct {
	Primary   GroupValue  `json:"primary"`
	Secondary *GroupValue `json:"secondary,omitempty"`
}

// AggregationRow holds the values of one group cell. A metric missing from Metrics had no data.
type AggregationRow struct {
	Group   GroupKey           `json:"group"`
	Metrics map[string]float64 `json:"metrics"`
}

// ResultMeta records how a table was produced.
type ResultMeta struct {
	Units              map[string]Unit   `json:"units"`
	Formulas           map[string]string `json:"formulas,omitempty"`
	SkippedRecords     int               `json:"skipped_records"`
	ExcludedFromTiming int               `json:"excluded_from_timing"`
	Assumptions        []string          `json:"assumptions,omitempty"`
	DateRange          DateRange         `json:"date_range"`
}

// ResultTable is the engine output. The caller owns it.
type ResultTable struct {
	Metric         string           `json:"metric"`
	Shape          Shape            `json:"shape"`
	PrimaryGroup   Dimension        `json:"primary_group,omitempty"`
	SecondaryGroup Dimension        `json:"secondary_group,omitempty"`
	ValueColumn    string           `json:"value_column"`
	Columns        []MetricColumn   `json:"columns"`
	Rows           []AggregationRow `json:"rows"`
	Meta           ResultMeta       `json:"meta"`
}
